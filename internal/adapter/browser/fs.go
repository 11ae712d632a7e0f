package browser

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/kvstore"
)

// FileSystem emulates files as keys of the form <prefix><clean path>.
type FileSystem struct {
	store  kvstore.Store
	prefix string
}

var _ adapter.FileSystem = (*FileSystem)(nil)

func (f *FileSystem) key(name string) string {
	return f.prefix + clean(name)
}

// dirPrefix is the key prefix of everything below name.
func (f *FileSystem) dirPrefix(name string) string {
	p := f.key(name)
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func (f *FileSystem) ReadFile(ctx context.Context, name string) (string, error) {
	val, ok, err := f.store.Get(ctx, f.key(name))
	if err != nil {
		return "", errors.Wrapf(err, "read %s", name)
	}
	if !ok {
		return "", errors.Wrapf(adapter.ErrNotFound, "read %s", name)
	}
	return val, nil
}

// WriteFile stores content. Directories are logical, so there is no parent
// to check. Writing where a directory lives, or below a file, is rejected.
func (f *FileSystem) WriteFile(ctx context.Context, name, content string) error {
	isDir, err := f.hasChildren(ctx, name)
	if err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	if isDir {
		return errors.Newf("write %s: is a directory", name)
	}
	for dir := path.Dir(clean(name)); dir != "/"; dir = path.Dir(dir) {
		_, isFile, err := f.store.Get(ctx, f.key(dir))
		if err != nil {
			return errors.Wrapf(err, "write %s", name)
		}
		if isFile {
			return errors.Newf("write %s: %s is not a directory", name, dir)
		}
	}
	if err := f.store.Set(ctx, f.key(name), content); err != nil {
		return errors.Wrapf(err, "write %s", name)
	}
	return nil
}

func (f *FileSystem) Exists(ctx context.Context, name string) (bool, error) {
	if clean(name) == "/" {
		return true, nil
	}
	_, ok, err := f.store.Get(ctx, f.key(name))
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", name)
	}
	if ok {
		return true, nil
	}
	return f.hasChildren(ctx, name)
}

func (f *FileSystem) Delete(ctx context.Context, name string, recursive bool) error {
	_, isFile, err := f.store.Get(ctx, f.key(name))
	if err != nil {
		return errors.Wrapf(err, "delete %s", name)
	}
	children, err := f.store.Keys(ctx, f.dirPrefix(name))
	if err != nil {
		return errors.Wrapf(err, "delete %s", name)
	}

	switch {
	case !isFile && len(children) == 0:
		return errors.Wrapf(adapter.ErrNotFound, "delete %s", name)
	case len(children) > 0 && !recursive:
		return errors.Newf("delete %s: directory not empty", name)
	}

	for _, k := range children {
		if err := f.store.Delete(ctx, k); err != nil {
			return errors.Wrapf(err, "delete %s", name)
		}
	}
	if isFile {
		if err := f.store.Delete(ctx, f.key(name)); err != nil {
			return errors.Wrapf(err, "delete %s", name)
		}
	}
	return nil
}

// Mkdir is a no-op: directories come into being with their first file.
func (f *FileSystem) Mkdir(context.Context, string, bool) error {
	return nil
}

// ReadDir lists the immediate children of name, files and logical
// directories alike, in lexical order.
func (f *FileSystem) ReadDir(ctx context.Context, name string) ([]string, error) {
	prefix := f.dirPrefix(name)
	keys, err := f.store.Keys(ctx, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "read dir %s", name)
	}
	if len(keys) == 0 {
		if clean(name) == "/" {
			return []string{}, nil
		}
		return nil, errors.Wrapf(adapter.ErrNotFound, "read dir %s", name)
	}

	seen := make(map[string]struct{}, len(keys))
	names := []string{}
	for _, k := range keys {
		child, _, _ := strings.Cut(strings.TrimPrefix(k, prefix), "/")
		if _, dup := seen[child]; dup || child == "" {
			continue
		}
		seen[child] = struct{}{}
		names = append(names, child)
	}
	slices.Sort(names)
	return names, nil
}

func (f *FileSystem) hasChildren(ctx context.Context, name string) (bool, error) {
	keys, err := f.store.Keys(ctx, f.dirPrefix(name))
	if err != nil {
		return false, err
	}
	return len(keys) > 0, nil
}

// clean makes name absolute and slash-separated.
func clean(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	return path.Clean("/" + name)
}
