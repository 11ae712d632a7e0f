// Package redact masks credentials before they reach a terminal or a log.
package redact

import (
	"net/url"
	"strings"
)

// sensitiveKeyParts are substrings that mark a key as holding a credential.
// Matching is case-insensitive.
var sensitiveKeyParts = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes identify credential values regardless of the key they are stored under.
var tokenPrefixes = []string{
	"sk-",  // Anthropic, OpenAI, DeepSeek and compatible gateways
	"ghp_", // GitHub personal access token
	"gho_",
	"ghs_",
	"AKIA", // AWS access key
	"xoxb-",
	"xoxp-",
}

// Placeholder replaces values too short to keep a visible suffix.
const Placeholder = "********"

// SensitiveKey reports whether key names a credential.
func SensitiveKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, part := range sensitiveKeyParts {
		if strings.Contains(upper, part) {
			return true
		}
	}
	return false
}

// LooksLikeToken reports whether value starts with a known credential prefix.
func LooksLikeToken(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// Value masks everything but the last four characters of value.
func Value(value string) string {
	if len(value) <= 4 {
		return Placeholder
	}
	return "****" + value[len(value)-4:]
}

// Pair returns value masked when either the key or the value looks sensitive.
func Pair(key, value string) string {
	if SensitiveKey(key) || LooksLikeToken(value) {
		return Value(value)
	}
	return value
}

// Env returns a copy of env with sensitive entries masked. The input is not modified.
func Env(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = Pair(k, v)
	}
	return out
}

// URL masks the password of a URL with embedded credentials.
// Unparseable URLs and URLs without a password are returned unchanged.
func URL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	pass, ok := u.User.Password()
	if !ok || pass == "" {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), Value(pass))
	return u.String()
}
