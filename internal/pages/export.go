package pages

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// Format is a serialization format for catalogs and page configs.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for an unsupported format name or extension.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat converts a format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (valid: json, yaml, toml)", s)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnknownFormat, "%s has no extension", path)
	}
	return ParseFormat(ext)
}

// document is the top-level shape of an exported catalog. TOML has no
// top-level arrays, so every format nests the list under "pages".
type document struct {
	Pages []PageMeta `json:"pages" yaml:"pages" toml:"pages"`
}

// Export writes pages to w in the given format.
func Export(w io.Writer, format Format, pages []PageMeta) error {
	doc := document{Pages: pages}
	if doc.Pages == nil {
		doc.Pages = []PageMeta{}
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = fileutil.EncodeJSON(doc)
	case FormatYAML:
		data, err = fileutil.EncodeYAML(doc)
	case FormatTOML:
		data, err = toml.Marshal(doc)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s", format)
	}

	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "writing export")
	}
	return nil
}

// DecodeConfig parses a page config in the given format and validates it.
func DecodeConfig(data []byte, format Format) (*Config, error) {
	var cfg Config
	if len(bytes.TrimSpace(data)) == 0 {
		if _, err := ParseFormat(string(format)); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s page config", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads a page config file, choosing the decoder from the
// file extension.
func LoadConfigFile(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadDocument(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := DecodeConfig(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return cfg, nil
}
