// Package parser decodes and encodes service registry documents. Besides
// devdeck's own format it reads the "mcpServers" layout used by assistant
// settings files, so existing definitions can be imported.
package parser

import (
	"encoding/json"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/mcp"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// ErrInvalidJSON indicates the input is not a valid registry document.
var ErrInvalidJSON = errors.New("invalid JSON")

// Parse reads a registry document. Empty input is an empty registry.
func Parse(data []byte) (*mcp.File, error) {
	if len(data) == 0 {
		return mcp.NewFile(), nil
	}

	var f mcp.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, wrapSyntax(err)
	}
	return &f, nil
}

// ParseImport reads services from either a registry document or a document
// with a top-level "mcpServers" object. When both keys are present the
// registry's own "services" win on name clashes.
func ParseImport(data []byte) (*mcp.File, error) {
	var probe struct {
		MCPServers map[string]*mcp.Service `json:"mcpServers"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, wrapSyntax(err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	for name, s := range probe.MCPServers {
		if s == nil {
			continue
		}
		if _, exists := f.Services[name]; exists {
			continue
		}
		s.Name = name
		f.Services[name] = s
	}
	return f, nil
}

// Write encodes f with two-space indentation and a trailing newline.
func Write(f *mcp.File) ([]byte, error) {
	if f == nil {
		f = mcp.NewFile()
	}
	data, err := fileutil.EncodeJSON(f)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling service registry")
	}
	return data, nil
}

func wrapSyntax(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errors.Wrapf(ErrInvalidJSON, "%v at offset %d", err, syntaxErr.Offset)
	}
	return errors.Wrapf(ErrInvalidJSON, "%v", err)
}
