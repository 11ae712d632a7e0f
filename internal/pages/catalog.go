package pages

import (
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/thoreinstein/devdeck/internal/host"
	"github.com/thoreinstein/devdeck/internal/logging"
)

// OverrideFunc observes a registration that replaced an existing id.
type OverrideFunc func(previous, next PageMeta)

// Catalog is the set of known pages in registration order.
// It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	order    []string
	pages    map[string]PageMeta
	onChange OverrideFunc
	logger   *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithOverrideHook sets the function called when a registration replaces
// an existing page.
func WithOverrideHook(fn OverrideFunc) CatalogOption {
	return func(c *Catalog) {
		c.onChange = fn
	}
}

// WithLogger sets the catalog's logger.
func WithLogger(l *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = l
	}
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		pages:  make(map[string]PageMeta),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds pages in order. A page whose id is already registered
// replaces the earlier entry at its original position; the override hook is
// called and a warning logged. Invalid pages are rejected and nothing after
// them is registered.
func (c *Catalog) Register(pages ...PageMeta) error {
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			return err
		}

		c.mu.Lock()
		prev, exists := c.pages[p.ID]
		c.pages[p.ID] = p.clone()
		if !exists {
			c.order = append(c.order, p.ID)
		}
		hook := c.onChange
		c.mu.Unlock()

		if exists {
			c.logger.Warn("page re-registered, previous entry replaced", "id", p.ID)
			if hook != nil {
				hook(prev.clone(), p.clone())
			}
		}
	}
	return nil
}

// Unregister removes id. It reports whether the page was present.
func (c *Catalog) Unregister(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pages[id]; !ok {
		return false
	}
	delete(c.pages, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return true
}

// Get returns a copy of the page registered under id.
func (c *Catalog) Get(id string) (PageMeta, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.pages[id]
	if !ok {
		return PageMeta{}, false
	}
	return p.clone(), true
}

// All returns copies of every page in registration order.
func (c *Catalog) All() []PageMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PageMeta, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.pages[id].clone())
	}
	return out
}

// Len returns the number of registered pages.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Categories returns the distinct non-empty categories, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var cats []string
	for _, id := range c.order {
		if cat := c.pages[id].Category; cat != "" && !slices.Contains(cats, cat) {
			cats = append(cats, cat)
		}
	}
	slices.Sort(cats)
	return cats
}

// Resolve returns the pages visible on h under cfg, narrowed by f and
// stable-sorted by Order. cfg and f may be nil.
func (c *Catalog) Resolve(h host.Host, cfg *Config, f *Filter) []PageMeta {
	var out []PageMeta
	for _, p := range c.All() {
		if p.SupportsHost(h) {
			out = append(out, p)
		}
	}

	if cfg != nil {
		switch {
		case len(cfg.EnabledPages) > 0:
			out = slices.DeleteFunc(out, func(p PageMeta) bool {
				return !slices.Contains(cfg.EnabledPages, p.ID)
			})
		case len(cfg.DisabledPages) > 0:
			out = slices.DeleteFunc(out, func(p PageMeta) bool {
				return slices.Contains(cfg.DisabledPages, p.ID)
			})
		}
		for _, p := range cfg.CustomPages {
			out = append(out, p.clone())
		}
	}

	out = slices.DeleteFunc(out, func(p PageMeta) bool { return !f.Match(p) })
	SortByOrder(out)

	if out == nil {
		return []PageMeta{}
	}
	return out
}

// Visible reports whether id resolves on h under cfg.
func (c *Catalog) Visible(h host.Host, cfg *Config, id string) bool {
	for _, p := range c.Resolve(h, cfg, nil) {
		if p.ID == id {
			return true
		}
	}
	return false
}

// SortByOrder stable-sorts pages by Order ascending.
func SortByOrder(pages []PageMeta) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})
}
