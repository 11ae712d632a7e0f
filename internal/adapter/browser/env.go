package browser

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thoreinstein/devdeck/internal/adapter"
	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/kvstore"
)

// Environment emulates environment variables as keys of the form
// <prefix><name>. The browser has no process environment, so every value
// was set by devdeck itself.
type Environment struct {
	store  kvstore.Store
	prefix string
	logger *slog.Logger
}

var _ adapter.Environment = (*Environment)(nil)

// Get treats store failures as absence; they are logged at debug level.
func (e *Environment) Get(key string) (string, bool) {
	v, ok, err := e.store.Get(context.Background(), e.prefix+key)
	if err != nil {
		e.logger.Debug("environment lookup failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (e *Environment) Set(key, value string) error {
	if key == "" {
		return errors.New("environment variable name is required")
	}
	if err := e.store.Set(context.Background(), e.prefix+key, value); err != nil {
		return errors.Wrapf(err, "set %s", key)
	}
	return nil
}

func (e *Environment) All() map[string]string {
	ctx := context.Background()
	out := map[string]string{}
	keys, err := e.store.Keys(ctx, e.prefix)
	if err != nil {
		e.logger.Debug("environment listing failed", "error", err)
		return out
	}
	for _, k := range keys {
		if v, ok, err := e.store.Get(ctx, k); err == nil && ok {
			out[strings.TrimPrefix(k, e.prefix)] = v
		}
	}
	return out
}

func (e *Environment) UserHomeDir() (string, error) { return HomeDir, nil }

func (e *Environment) AppDataDir() (string, error) { return AppDataDir, nil }

func (e *Environment) ProjectDir() (string, error) {
	return "", errors.Wrap(adapter.ErrNotSupported, "project directory")
}
