package desktop

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/paths"
)

// Environment is a snapshot of the process environment plus an overlay of
// values set during this run. Set never mutates the real process
// environment; commands spawned by the adapter see the overlay.
type Environment struct {
	mu   sync.RWMutex
	vars map[string]string
}

var _ adapter.Environment = (*Environment)(nil)

func newEnvironment(environ []string) *Environment {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = v
	}
	return &Environment{vars: vars}
}

func (e *Environment) Get(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

func (e *Environment) Set(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\x00") {
		return errors.Newf("invalid environment variable name %q", key)
	}
	e.mu.Lock()
	e.vars[key] = value
	e.mu.Unlock()
	return nil
}

func (e *Environment) All() map[string]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return maps.Clone(e.vars)
}

// UserHomeDir prefers HOME from the environment, then the OS lookup.
func (e *Environment) UserHomeDir() (string, error) {
	if home, ok := e.Get("HOME"); ok && home != "" {
		return home, nil
	}
	return paths.ResolveHome()
}

// AppDataDir returns the XDG config home (or its platform equivalent).
func (e *Environment) AppDataDir() (string, error) {
	if dir, ok := e.Get("XDG_CONFIG_HOME"); ok && dir != "" {
		return dir, nil
	}
	return xdg.ConfigHome, nil
}

func (e *Environment) ProjectDir() (string, error) {
	return "", errors.Wrap(adapter.ErrNotSupported, "project directory")
}

func environ(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		out = append(out, k+"="+vars[k])
	}
	return out
}
