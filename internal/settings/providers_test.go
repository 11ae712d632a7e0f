package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/devdeck/internal/errors"
)

func TestApplyProvider(t *testing.T) {
	ctx := context.Background()
	s, _ := newDesktopStore(t)

	require.NoError(t, s.SetEnv(ctx, EnvAPIKey, "sk-ant-original"))
	require.NoError(t, s.SetEnv(ctx, "EDITOR", "vim"))

	st, err := s.ApplyProvider(ctx, "deepseek", ProviderOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"EDITOR":          "vim",
		EnvBaseURL:        "https://api.deepseek.com/anthropic",
		EnvAuthToken:      "sk-ant-original",
		EnvModel:          "deepseek-chat",
		EnvSmallFastModel: "deepseek-chat",
	}, st.Env)
	assert.Equal(t, "deepseek", st.CurrentProvider().Name)

	st, err = s.ApplyProvider(ctx, "Zhipu", ProviderOptions{APIKey: "zp-key", Model: "glm-4.6"})
	require.NoError(t, err)
	assert.Equal(t, "zp-key", st.Env[EnvAuthToken])
	assert.Equal(t, "glm-4.6", st.Env[EnvModel])
	assert.Equal(t, "zhipu", st.CurrentProvider().Name)
	assert.Equal(t, "glm-4.6", st.CurrentProvider().Model)

	st, err = s.ApplyProvider(ctx, "anthropic", ProviderOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"EDITOR": "vim", EnvAPIKey: "zp-key"}, st.Env)
	assert.Equal(t, "anthropic", st.CurrentProvider().Name)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Env, loaded.Env)
}

func TestApplyProvider_Custom(t *testing.T) {
	ctx := context.Background()
	s, _ := newDesktopStore(t)

	st, err := s.ApplyProvider(ctx, ProviderCustom, ProviderOptions{BaseURL: "https://llm.internal.example/v1/", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "https://llm.internal.example/v1", st.Env[EnvBaseURL])

	cur := st.CurrentProvider()
	assert.Equal(t, ProviderCustom, cur.Name)
	assert.Equal(t, "m", cur.Model)

	_, err = s.ApplyProvider(ctx, ProviderCustom, ProviderOptions{BaseURL: "ftp://nope"})
	assert.True(t, errors.Is(err, ErrInvalidSettings))
	_, err = s.ApplyProvider(ctx, ProviderCustom, ProviderOptions{})
	assert.True(t, errors.Is(err, ErrInvalidSettings))
}

func TestApplyProvider_Unknown(t *testing.T) {
	s, _ := newDesktopStore(t)
	_, err := s.ApplyProvider(context.Background(), "openai", ProviderOptions{})
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestPresets(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Presets() {
		assert.False(t, seen[p.Name], "duplicate preset %s", p.Name)
		seen[p.Name] = true
		assert.NotEmpty(t, p.DisplayName)
	}
	_, ok := LookupProvider("DEEPSEEK")
	assert.True(t, ok)
}
