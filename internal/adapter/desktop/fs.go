package desktop

import (
	"context"
	"io/fs"
	"os"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

const (
	defaultFilePerm = 0o644
	defaultDirPerm  = 0o755
)

// FileSystem is the real OS file system. Writes are atomic.
type FileSystem struct{}

var _ adapter.FileSystem = (*FileSystem)(nil)

func (f *FileSystem) ReadFile(_ context.Context, path string) (string, error) {
	data, err := fileutil.ReadDocument(path)
	if err != nil {
		return "", notFound(err, "read", path)
	}
	return string(data), nil
}

// WriteFile keeps the mode of an existing file.
func (f *FileSystem) WriteFile(_ context.Context, path, content string) error {
	perm := os.FileMode(defaultFilePerm)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.Newf("write %s: is a directory", path)
		}
		perm = info.Mode().Perm()
	}
	if err := fileutil.AtomicWriteFile(path, []byte(content), perm); err != nil {
		return notFound(err, "write", path)
	}
	return nil
}

func (f *FileSystem) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, "stat %s", path)
}

func (f *FileSystem) Delete(_ context.Context, path string, recursive bool) error {
	if _, err := os.Lstat(path); err != nil {
		return notFound(err, "delete", path)
	}
	var err error
	if recursive {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return errors.Wrapf(err, "delete %s", path)
	}
	return nil
}

func (f *FileSystem) Mkdir(_ context.Context, path string, recursive bool) error {
	var err error
	if recursive {
		err = os.MkdirAll(path, defaultDirPerm)
	} else {
		err = os.Mkdir(path, defaultDirPerm)
	}
	if err != nil {
		return notFound(err, "mkdir", path)
	}
	return nil
}

// ReadDir returns entry names in directory order, which os.ReadDir sorts.
func (f *FileSystem) ReadDir(_ context.Context, path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, notFound(err, "read dir", path)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// notFound maps fs.ErrNotExist onto adapter.ErrNotFound and wraps everything
// else with the operation and path.
func notFound(err error, op, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(adapter.ErrNotFound, "%s %s", op, path)
	}
	return errors.Wrapf(err, "%s %s", op, path)
}
