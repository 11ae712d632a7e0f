package settings

import (
	"maps"
	"slices"

	"github.com/thoreinstein/devdeck/pkg/fileutil"
)

// Default API settings, applied when the file has none.
const (
	DefaultTimeoutMS     = 600000
	DefaultRetryAttempts = 3
	DefaultRetryDelayMS  = 1000
)

// APISettings tunes the assistant's API client.
type APISettings struct {
	// Timeout is the request timeout in milliseconds.
	Timeout int `json:"timeout"`

	// RetryAttempts is how many times a failed request is retried.
	RetryAttempts int `json:"retryAttempts"`

	// RetryDelay is the delay between retries in milliseconds.
	RetryDelay int `json:"retryDelay"`
}

// DefaultAPISettings returns the built-in API settings.
func DefaultAPISettings() APISettings {
	return APISettings{
		Timeout:       DefaultTimeoutMS,
		RetryAttempts: DefaultRetryAttempts,
		RetryDelay:    DefaultRetryDelayMS,
	}
}

// Settings is the assistant settings file.
type Settings struct {
	// Env holds environment variables the assistant exports to its process.
	Env map[string]string `json:"env"`

	// API holds API client settings. Defaults fill in when the file has
	// none, but the block is only written back once set.
	API APISettings `json:"apiSettings"`

	apiSet bool

	// extra keeps members written by the assistant or other tools.
	extra fileutil.Fields
}

// Default returns the settings used when no file exists or it is unreadable.
func Default() *Settings {
	return &Settings{
		Env: map[string]string{},
		API: DefaultAPISettings(),
	}
}

// Clone returns a deep copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Env = maps.Clone(s.Env)
	c.extra = maps.Clone(s.extra)
	return &c
}

// SetAPI replaces the API settings and marks them for writing.
func (s *Settings) SetAPI(api APISettings) {
	s.API = api
	s.apiSet = true
}

// HasAPI reports whether the API settings were read from the file or set.
func (s *Settings) HasAPI() bool { return s.apiSet }

// UnknownFields returns the names of preserved top-level fields.
func (s *Settings) UnknownFields() []string {
	return slices.Sorted(maps.Keys(s.extra))
}

// MarshalJSON writes env, and apiSettings when present, over the preserved
// members.
func (s *Settings) MarshalJSON() ([]byte, error) {
	env := s.Env
	if env == nil {
		env = map[string]string{}
	}
	known := map[string]any{"env": env}
	if s.apiSet {
		known["apiSettings"] = s.API
	}
	return fileutil.JoinFields(s.extra, known)
}

// UnmarshalJSON starts from Default, so members missing from the file keep
// their default values.
func (s *Settings) UnmarshalJSON(data []byte) error {
	f, err := fileutil.SplitFields(data)
	if err != nil {
		return err
	}
	*s = *Default()
	if err := f.Take("env", &s.Env); err != nil {
		return err
	}
	if s.Env == nil {
		s.Env = map[string]string{}
	}
	if raw, ok := f["apiSettings"]; ok && string(raw) != "null" {
		s.apiSet = true
	}
	if err := f.Take("apiSettings", &s.API); err != nil {
		return err
	}
	s.extra = f.Rest()
	return nil
}
