package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// MaxDocumentSize caps reads of the settings, registry and page documents.
const MaxDocumentSize = 1 << 20

// ErrTooLarge is returned for documents over MaxDocumentSize.
var ErrTooLarge = errors.Newf("document exceeds %d bytes", MaxDocumentSize)

// ReadLimited reads r to EOF and fails with ErrTooLarge past MaxDocumentSize.
func ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading document")
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// ReadDocument reads a file from the OS file system with ReadLimited.
// A missing file keeps fs.ErrNotExist in the error chain.
func ReadDocument(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening document")
	}
	defer f.Close()
	return ReadLimited(f)
}
