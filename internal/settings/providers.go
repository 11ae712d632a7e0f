package settings

import (
	"context"
	"net/url"
	"strings"

	"github.com/thoreinstein/devdeck/internal/errors"
)

// Environment variables the assistant reads for provider selection.
const (
	EnvBaseURL        = "ANTHROPIC_BASE_URL"
	EnvAuthToken      = "ANTHROPIC_AUTH_TOKEN"
	EnvAPIKey         = "ANTHROPIC_API_KEY"
	EnvModel          = "ANTHROPIC_MODEL"
	EnvSmallFastModel = "ANTHROPIC_SMALL_FAST_MODEL"
)

// ProviderCustom names a provider with a caller-supplied base URL.
const ProviderCustom = "custom"

// ErrUnknownProvider is returned for a provider name with no preset.
var ErrUnknownProvider = errors.New("unknown provider")

// Provider is an API endpoint compatible with the assistant.
type Provider struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`

	// BaseURL is empty for the assistant's own API.
	BaseURL string `json:"baseUrl,omitempty"`

	Model          string `json:"model,omitempty"`
	SmallFastModel string `json:"smallFastModel,omitempty"`
	KeyURL         string `json:"keyUrl,omitempty"`
}

// Presets returns the built-in providers in display order.
func Presets() []Provider {
	return []Provider{
		{
			Name:        "anthropic",
			DisplayName: "Anthropic",
			KeyURL:      "https://console.anthropic.com/settings/keys",
		},
		{
			Name:           "deepseek",
			DisplayName:    "DeepSeek",
			BaseURL:        "https://api.deepseek.com/anthropic",
			Model:          "deepseek-chat",
			SmallFastModel: "deepseek-chat",
			KeyURL:         "https://platform.deepseek.com/api_keys",
		},
		{
			Name:           "moonshot",
			DisplayName:    "Moonshot (Kimi)",
			BaseURL:        "https://api.moonshot.cn/anthropic",
			Model:          "kimi-k2-0711-preview",
			SmallFastModel: "kimi-k2-0711-preview",
			KeyURL:         "https://platform.moonshot.cn/console/api-keys",
		},
		{
			Name:           "zhipu",
			DisplayName:    "Zhipu (GLM)",
			BaseURL:        "https://open.bigmodel.cn/api/anthropic",
			Model:          "glm-4.5",
			SmallFastModel: "glm-4.5-air",
			KeyURL:         "https://open.bigmodel.cn/usercenter/apikeys",
		},
	}
}

// LookupProvider returns the preset called name.
func LookupProvider(name string) (Provider, bool) {
	for _, p := range Presets() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Provider{}, false
}

// ProviderOptions are the user's choices when applying a provider.
type ProviderOptions struct {
	// APIKey replaces the stored key. Empty keeps the existing one.
	APIKey string

	// BaseURL is required for the custom provider and ignored otherwise.
	BaseURL string

	// Model overrides the preset's model.
	Model string
}

// ApplyProvider switches the settings to a provider and saves them.
//
// The assistant's own API uses ANTHROPIC_API_KEY and no base URL; every
// other provider uses ANTHROPIC_AUTH_TOKEN with its base URL. The key is
// carried over from whichever variable held it when opts.APIKey is empty.
func (s *Store) ApplyProvider(ctx context.Context, name string, opts ProviderOptions) (*Settings, error) {
	p, err := resolveProvider(name, opts)
	if err != nil {
		return nil, err
	}

	return s.Update(ctx, func(st *Settings) error {
		key := opts.APIKey
		if key == "" {
			key = st.Env[EnvAuthToken]
			if key == "" {
				key = st.Env[EnvAPIKey]
			}
		}

		delete(st.Env, EnvBaseURL)
		delete(st.Env, EnvAuthToken)
		delete(st.Env, EnvAPIKey)
		delete(st.Env, EnvModel)
		delete(st.Env, EnvSmallFastModel)

		if p.BaseURL == "" {
			if key != "" {
				st.Env[EnvAPIKey] = key
			}
		} else {
			st.Env[EnvBaseURL] = p.BaseURL
			if key != "" {
				st.Env[EnvAuthToken] = key
			}
		}

		model := p.Model
		if opts.Model != "" {
			model = opts.Model
		}
		if model != "" {
			st.Env[EnvModel] = model
		}
		if p.SmallFastModel != "" {
			st.Env[EnvSmallFastModel] = p.SmallFastModel
		}
		return nil
	})
}

func resolveProvider(name string, opts ProviderOptions) (Provider, error) {
	if strings.EqualFold(name, ProviderCustom) {
		u, err := url.Parse(opts.BaseURL)
		if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			return Provider{}, errors.Wrapf(ErrInvalidSettings, "custom provider needs an http(s) base URL, got %q", opts.BaseURL)
		}
		return Provider{Name: ProviderCustom, DisplayName: "Custom", BaseURL: strings.TrimRight(opts.BaseURL, "/")}, nil
	}
	p, ok := LookupProvider(name)
	if !ok {
		return Provider{}, errors.Wrapf(ErrUnknownProvider, "%q", name)
	}
	return p, nil
}

// CurrentProvider identifies the provider the settings point at. A base
// URL matching no preset is reported as the custom provider.
func (st *Settings) CurrentProvider() Provider {
	base := strings.TrimRight(st.Env[EnvBaseURL], "/")
	for _, p := range Presets() {
		if p.BaseURL == base {
			p.Model = modelOr(st.Env[EnvModel], p.Model)
			return p
		}
	}
	return Provider{
		Name:        ProviderCustom,
		DisplayName: "Custom",
		BaseURL:     base,
		Model:       st.Env[EnvModel],
	}
}

func modelOr(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
