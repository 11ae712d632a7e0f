package extension

import (
	"maps"
	"sync"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
)

// Environment is the environment the extension host exposes plus values set
// during the session.
type Environment struct {
	mu         sync.RWMutex
	vars       map[string]string
	projectDir string
	storageDir string
}

var _ adapter.Environment = (*Environment)(nil)

func (e *Environment) Get(key string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

func (e *Environment) Set(key, value string) error {
	if key == "" {
		return errors.New("environment variable name is required")
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

func (e *Environment) UserHomeDir() (string, error) {
	for _, key := range []string{"HOME", "USERPROFILE"} {
		if v, ok := e.Get(key); ok && v != "" {
			return v, nil
		}
	}
	return "", errors.New("home directory not exposed by host")
}

// AppDataDir returns the extension's global storage directory.
func (e *Environment) AppDataDir() (string, error) {
	if e.storageDir == "" {
		return "", errors.New("storage directory not exposed by host")
	}
	return e.storageDir, nil
}

func (e *Environment) ProjectDir() (string, error) {
	if e.projectDir == "" {
		return "", errors.New("no workspace folder is open")
	}
	return e.projectDir, nil
}
