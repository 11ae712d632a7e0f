package pages

import (
	"slices"

	"github.com/thoreinstein/devdeck/internal/errors"
	"github.com/thoreinstein/devdeck/internal/host"
)

// Kind is how a page is presented.
type Kind string

// Page kinds.
const (
	KindPage     Kind = "page"
	KindSettings Kind = "settings"
	KindCard     Kind = "card"
	KindModal    Kind = "modal"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPage, KindSettings, KindCard, KindModal:
		return true
	}
	return false
}

// Sentinel errors for page validation.
var (
	ErrInvalidPage = errors.New("invalid page")
	ErrDuplicateID = errors.New("duplicate page id")
)

// PageMeta describes one functional module.
type PageMeta struct {
	ID                       string      `json:"id" yaml:"id" toml:"id" mapstructure:"id"`
	Name                     string      `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Description              string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" mapstructure:"description"`
	Kind                     Kind        `json:"type" yaml:"type" toml:"type" mapstructure:"type"`
	Platforms                []host.Host `json:"platforms" yaml:"platforms" toml:"platforms" mapstructure:"platforms"`
	Category                 string      `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty" mapstructure:"category"`
	RequiresCommandExecution bool        `json:"requiresCommandExecution,omitempty" yaml:"requires_command_execution,omitempty" toml:"requires_command_execution,omitempty" mapstructure:"requires_command_execution"`
	RequiresFileSystemAccess bool        `json:"requiresFileSystemAccess,omitempty" yaml:"requires_filesystem_access,omitempty" toml:"requires_filesystem_access,omitempty" mapstructure:"requires_filesystem_access"`
	Tags                     []string    `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" mapstructure:"tags"`
	Order                    int         `json:"order" yaml:"order" toml:"order" mapstructure:"order"`
	Icon                     string      `json:"icon,omitempty" yaml:"icon,omitempty" toml:"icon,omitempty" mapstructure:"icon"`
}

// SupportsHost reports whether h is among the page's platforms.
func (p PageMeta) SupportsHost(h host.Host) bool {
	return slices.Contains(p.Platforms, h)
}

// Requirements lists the capabilities the page needs.
func (p PageMeta) Requirements() []host.Requirement {
	var reqs []host.Requirement
	if p.RequiresCommandExecution {
		reqs = append(reqs, host.RequireCommandExecution)
	}
	if p.RequiresFileSystemAccess {
		reqs = append(reqs, host.RequireFileSystemAccess)
	}
	return reqs
}

// Validate checks that a page is usable: a non-empty id and name, a known
// kind and a non-empty set of known platforms.
func (p PageMeta) Validate() error {
	if p.ID == "" {
		return errors.Wrap(ErrInvalidPage, "id is required")
	}
	if p.Name == "" {
		return errors.Wrapf(ErrInvalidPage, "%s: name is required", p.ID)
	}
	if !p.Kind.Valid() {
		return errors.Wrapf(ErrInvalidPage, "%s: unknown type %q", p.ID, p.Kind)
	}
	if len(p.Platforms) == 0 {
		return errors.Wrapf(ErrInvalidPage, "%s: at least one platform is required", p.ID)
	}
	for _, h := range p.Platforms {
		if !h.Valid() {
			return errors.Wrapf(ErrInvalidPage, "%s: unknown platform %q", p.ID, h)
		}
	}
	return nil
}

func (p PageMeta) clone() PageMeta {
	p.Platforms = slices.Clone(p.Platforms)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// Validate checks every page and rejects duplicate ids.
func Validate(pages []PageMeta) error {
	seen := make(map[string]struct{}, len(pages))
	for _, p := range pages {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return errors.Wrap(ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// Config is a per-deployment visibility override.
type Config struct {
	// EnabledPages, when non-empty, is the exact set of catalog ids shown.
	EnabledPages []string `json:"enabledPages,omitempty" yaml:"enabled_pages,omitempty" toml:"enabled_pages,omitempty" mapstructure:"enabled_pages"`

	// DisabledPages hides catalog ids. Ignored when EnabledPages is set.
	DisabledPages []string `json:"disabledPages,omitempty" yaml:"disabled_pages,omitempty" toml:"disabled_pages,omitempty" mapstructure:"disabled_pages"`

	// CustomPages are appended after catalog resolution without host filtering.
	CustomPages []PageMeta `json:"customPages,omitempty" yaml:"custom_pages,omitempty" toml:"custom_pages,omitempty" mapstructure:"custom_pages"`
}

// Validate checks the custom pages.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	return Validate(c.CustomPages)
}
