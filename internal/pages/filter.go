package pages

import (
	"strings"

	"github.com/thoreinstein/devdeck/internal/host"
)

// Filter narrows a resolved page list. Zero-valued fields match everything.
type Filter struct {
	// Category keeps pages with exactly this category.
	Category string

	// RequiresCommandExecution keeps pages whose flag equals the value.
	RequiresCommandExecution *bool

	// RequiresFileSystemAccess keeps pages whose flag equals the value.
	RequiresFileSystemAccess *bool

	// Tags keeps pages carrying every listed tag.
	Tags []string

	// Search keeps pages whose name, description or any tag contains the
	// text, case-insensitively.
	Search string

	// Capabilities keeps pages whose requirements the set satisfies.
	Capabilities *host.Capabilities
}

// Match reports whether p passes the filter. A nil filter matches all pages.
func (f *Filter) Match(p PageMeta) bool {
	if f == nil {
		return true
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.RequiresCommandExecution != nil && p.RequiresCommandExecution != *f.RequiresCommandExecution {
		return false
	}
	if f.RequiresFileSystemAccess != nil && p.RequiresFileSystemAccess != *f.RequiresFileSystemAccess {
		return false
	}
	for _, want := range f.Tags {
		if !hasTag(p.Tags, want) {
			return false
		}
	}
	if f.Capabilities != nil && !f.Capabilities.Satisfies(p.Requirements()...) {
		return false
	}
	if f.Search != "" && !matchesText(p, f.Search) {
		return false
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}

func matchesText(p PageMeta, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
