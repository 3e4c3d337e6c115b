package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("OPENAI_API_KEY", "test-key")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid defaults", func(*Config) {}, nil},
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, ErrInvalidProvider},
		{"empty model", func(c *Config) { c.ModelName = "" }, ErrInvalidModelName},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, ErrInvalidTemperature},
		{"temperature negative", func(c *Config) { c.Temperature = -0.1 }, ErrInvalidTemperature},
		{"zero max steps", func(c *Config) { c.MaxSteps = 0 }, ErrInvalidMaxSteps},
		{"excessive max steps", func(c *Config) { c.MaxSteps = 1000 }, ErrInvalidMaxSteps},
		{"zero summary tokens", func(c *Config) { c.SummaryMaxTokens = 0 }, ErrInvalidSummaryTokens},
		{"bad ollama host", func(c *Config) {
			c.Provider = ProviderOllama
			c.OllamaHost = "localhost:11434"
		}, ErrInvalidOllamaHost},
		{"ollama host ok", func(c *Config) {
			c.Provider = ProviderOllama
			c.OllamaHost = "http://localhost:11434"
		}, nil},
		{"missing listen addr", func(c *Config) { c.ListenAddr = "" }, ErrInvalidListenAddr},
		{"listen addr without port", func(c *Config) { c.ListenAddr = "localhost" }, ErrInvalidListenAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_NilConfig(t *testing.T) {
	t.Parallel()

	var cfg *Config
	require.ErrorIs(t, cfg.Validate(), ErrConfigNil)
}

func TestValidate_MissingGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	cfg := validConfig()
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}

func TestValidate_MissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	cfg := validConfig()
	cfg.Provider = ProviderOpenAI
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)
}
