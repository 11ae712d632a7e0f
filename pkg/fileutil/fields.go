package fileutil

import (
	"encoding/json"
	"maps"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Fields holds the members of a JSON object undecoded. Types that model
// only part of a document keep the rest here so rewriting the file does
// not drop what another tool stored in it.
type Fields map[string]json.RawMessage

// SplitFields decodes a JSON object into its members.
func SplitFields(data []byte) (Fields, error) {
	var f Fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// Take decodes member key into dst and removes it from f. A missing member
// leaves dst untouched.
func (f Fields) Take(key string, dst any) error {
	v, ok := f[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return errors.Wrapf(err, "decoding %q", key)
	}
	delete(f, key)
	return nil
}

// Rest returns a copy of the members not yet taken, or nil if none remain.
func (f Fields) Rest() Fields {
	if len(f) == 0 {
		return nil
	}
	return maps.Clone(f)
}

// JoinFields encodes one JSON object from extra and known. Known members
// replace extra ones with the same name.
func JoinFields(extra Fields, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = v
	}
	maps.Copy(out, known)
	return json.Marshal(out)
}
