// Package fileutil provides file system utilities including atomic write
// operations and the document encoders devdeck persists with.
package fileutil

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".devdeck-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true

	return nil
}

// EncodeJSON renders v as 2-space indented JSON with a trailing newline.
// HTML characters are not escaped, so URLs in settings stay readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return buf.Bytes(), nil
}

// EncodeYAML renders v as YAML ending in a newline.
func EncodeYAML(v any) (data []byte, err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err = yaml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling YAML")
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// AtomicWriteYAML writes v as YAML to path atomically with 0644 permissions.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAML(path string, v any) error {
	data, err := EncodeYAML(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, 0o644)
}
