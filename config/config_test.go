package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HTTPServer: HTTPServerConfig{Port: 8000, Mode: "debug"},
		CORS:       CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		LLM: LLMConfig{
			Providers:     []ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-1.5-pro"}},
			RetryAttempts: 3,
		},
		Search:     SearchConfig{MaxResults: 4, Depth: "basic", RatePerMin: 60},
		Checkpoint: CheckpointConfig{Backend: "memory"},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(validConfig()))

	t.Run("missing api key", func(t *testing.T) {
		cfg := validConfig()
		cfg.LLM.Providers[0].APIKey = ""
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
	})

	t.Run("duplicate priority", func(t *testing.T) {
		cfg := validConfig()
		cfg.LLM.Providers = append(cfg.LLM.Providers, ProviderConfig{Name: "openai", Enabled: true, Priority: 1, APIKey: "k", Model: "gpt-4o-mini"})
		assert.Error(t, Validate(cfg))
	})

	t.Run("redis backend needs addr", func(t *testing.T) {
		cfg := validConfig()
		cfg.Checkpoint.Backend = "redis"
		assert.Error(t, Validate(cfg))
		cfg.Checkpoint.RedisAddr = "localhost:6379"
		assert.NoError(t, Validate(cfg))
	})

	t.Run("unknown search depth", func(t *testing.T) {
		cfg := validConfig()
		cfg.Search.Depth = "deep"
		assert.Error(t, Validate(cfg))
	})
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("EXAM_PREP_TEST_KEY", "secret")
	assert.Equal(t, "secret", expandEnvVar("${EXAM_PREP_TEST_KEY}"))
	assert.Equal(t, "", expandEnvVar("${EXAM_PREP_TEST_UNSET}"))
	assert.Equal(t, "plain", expandEnvVar("plain"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList([]string{"http://a, http://b"}))
	assert.Nil(t, splitList([]string{" "}))
}
