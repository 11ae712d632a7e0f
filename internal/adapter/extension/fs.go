package extension

import (
	"context"
	"io/fs"
	"path"

	"github.com/spf13/afero"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// FileSystem adapts the host's virtual file system.
type FileSystem struct {
	fs afero.Fs
}

var _ adapter.FileSystem = (*FileSystem)(nil)

func (f *FileSystem) ReadFile(_ context.Context, name string) (string, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return "", wrapErr(err, "read", name)
	}
	defer file.Close()

	data, err := fileutil.ReadLimited(file)
	if err != nil {
		return "", wrapErr(err, "read", name)
	}
	return string(data), nil
}

// WriteFile refuses to write when the parent directory is missing, even on
// file systems that would create it implicitly.
func (f *FileSystem) WriteFile(_ context.Context, name, content string) error {
	if err := f.requireDir(path.Dir(name)); err != nil {
		return wrapErr(err, "write", name)
	}
	if err := afero.WriteFile(f.fs, name, []byte(content), 0o644); err != nil {
		return wrapErr(err, "write", name)
	}
	return nil
}

func (f *FileSystem) Exists(_ context.Context, name string) (bool, error) {
	ok, err := afero.Exists(f.fs, name)
	if err != nil {
		return false, errors.Wrapf(err, "stat %s", name)
	}
	return ok, nil
}

func (f *FileSystem) Delete(_ context.Context, name string, recursive bool) error {
	info, err := f.fs.Stat(name)
	if err != nil {
		return wrapErr(err, "delete", name)
	}
	if recursive {
		err = f.fs.RemoveAll(name)
	} else {
		if info.IsDir() {
			empty, derr := afero.IsEmpty(f.fs, name)
			if derr != nil {
				return wrapErr(derr, "delete", name)
			}
			if !empty {
				return errors.Newf("delete %s: directory not empty", name)
			}
		}
		err = f.fs.Remove(name)
	}
	if err != nil {
		return wrapErr(err, "delete", name)
	}
	return nil
}

func (f *FileSystem) Mkdir(_ context.Context, name string, recursive bool) error {
	if recursive {
		if err := f.fs.MkdirAll(name, 0o755); err != nil {
			return wrapErr(err, "mkdir", name)
		}
		return nil
	}
	if err := f.requireDir(path.Dir(name)); err != nil {
		return wrapErr(err, "mkdir", name)
	}
	if err := f.fs.Mkdir(name, 0o755); err != nil {
		return wrapErr(err, "mkdir", name)
	}
	return nil
}

func (f *FileSystem) ReadDir(_ context.Context, name string) ([]string, error) {
	infos, err := afero.ReadDir(f.fs, name)
	if err != nil {
		return nil, wrapErr(err, "read dir", name)
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

func (f *FileSystem) requireDir(dir string) error {
	ok, err := afero.DirExists(f.fs, dir)
	if err != nil {
		return err
	}
	if !ok {
		return fs.ErrNotExist
	}
	return nil
}

func wrapErr(err error, op, name string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(adapter.ErrNotFound, "%s %s", op, name)
	}
	return errors.Wrapf(err, "%s %s", op, name)
}
