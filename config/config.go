package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	CORS       CORSConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Current-affairs search
	Search SearchConfig

	// Conversation persistence
	Checkpoint CheckpointConfig

	// Turn events
	Events EventsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int    `validate:"min=1,max=65535"`
	Mode string `validate:"oneof=debug release test"`
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type CORSConfig struct {
	AllowedOrigins []string `validate:"min=1"`
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers" validate:"min=1,dive"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts" validate:"min=1"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"` // Global timeout for entire fallback chain
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name        string  `yaml:"name" validate:"required"`
	Enabled     bool    `yaml:"enabled"`
	Priority    int     `yaml:"priority"`
	APIKey      string  `yaml:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Model       string  `yaml:"model" validate:"required"`
	Timeout     string  `yaml:"timeout"`
	Temperature float64 `yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"min=0"`
}

// SearchConfig configures the web search tool. An empty APIKey disables the tool.
type SearchConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int    `validate:"min=1,max=20"`
	Depth      string `validate:"oneof=basic advanced"`
	CacheTTL   time.Duration
	RatePerMin int `validate:"min=1"`
}

// Checkpoint backends
const (
	CheckpointBackendMemory = "memory"
	CheckpointBackendRedis  = "redis"
)

// CheckpointConfig selects where conversation state lives.
type CheckpointConfig struct {
	Backend       string `validate:"oneof=memory redis"`
	RedisAddr     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int
	Prefix        string
}

// EventsConfig configures the turn event publisher. An empty NATSURL disables it.
type EventsConfig struct {
	NATSURL string
	Subject string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.CORS.AllowedOrigins = splitList(viper.GetStringSlice("cors.allowed_origins"))

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	// Load provider configurations
	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:        getStringFromMap(providerMap, "name"),
						Enabled:     getBoolFromMap(providerMap, "enabled"),
						Priority:    getIntFromMap(providerMap, "priority"),
						APIKey:      expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:     getStringFromMap(providerMap, "base_url"),
						Model:       getStringFromMap(providerMap, "model"),
						Timeout:     getStringFromMap(providerMap, "timeout"),
						Temperature: getFloatFromMap(providerMap, "temperature"),
						MaxTokens:   getIntFromMap(providerMap, "max_tokens"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	// GOOGLE_API_KEY alone is enough to run against Gemini
	if len(cfg.LLM.Providers) == 0 {
		cfg.LLM.Providers = []ProviderConfig{defaultGeminiProvider()}
	}

	// Search
	cfg.Search.APIKey = expandEnvVar(viper.GetString("search.api_key"))
	if tavilyKey := viper.GetString("tavily_api_key"); tavilyKey != "" {
		cfg.Search.APIKey = tavilyKey
	}
	cfg.Search.BaseURL = viper.GetString("search.base_url")
	cfg.Search.MaxResults = viper.GetInt("search.max_results")
	cfg.Search.Depth = viper.GetString("search.depth")
	cfg.Search.CacheTTL = viper.GetDuration("search.cache_ttl")
	cfg.Search.RatePerMin = viper.GetInt("search.rate_per_min")

	// Checkpoint
	cfg.Checkpoint.Backend = viper.GetString("checkpoint.backend")
	cfg.Checkpoint.RedisAddr = viper.GetString("checkpoint.redis_addr")
	cfg.Checkpoint.RedisPassword = viper.GetString("checkpoint.redis_password")
	cfg.Checkpoint.RedisDB = viper.GetInt("checkpoint.redis_db")
	cfg.Checkpoint.Prefix = viper.GetString("checkpoint.prefix")

	// Events
	cfg.Events.NATSURL = viper.GetString("events.nats_url")
	cfg.Events.Subject = viper.GetString("events.subject")

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct constraints and the LLM provider set.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return validateLLMConfig(&cfg.LLM)
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8000)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "120s")

	// Search defaults
	viper.SetDefault("search.base_url", "https://api.tavily.com")
	viper.SetDefault("search.max_results", 4)
	viper.SetDefault("search.depth", "basic")
	viper.SetDefault("search.cache_ttl", "5m")
	viper.SetDefault("search.rate_per_min", 60)

	// Checkpoint defaults
	viper.SetDefault("checkpoint.backend", CheckpointBackendMemory)
	viper.SetDefault("checkpoint.prefix", "chat:thread:")

	viper.SetDefault("events.subject", "chat.turn.completed")
}

func defaultGeminiProvider() ProviderConfig {
	return ProviderConfig{
		Name:        "gemini",
		Enabled:     true,
		Priority:    1,
		APIKey:      expandEnvVar("${GOOGLE_API_KEY}"),
		Model:       "gemini-1.5-pro",
		Timeout:     "120s",
		Temperature: 0,
		MaxTokens:   1024,
	}
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured")
	}

	enabledCount := 0
	keyedCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		// Check required fields
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			// Check priority is valid
			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}

			// Check for duplicate priorities
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true

			if provider.APIKey != "" {
				keyedCount++
			}
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}
	if keyedCount == 0 {
		return fmt.Errorf("no enabled LLM provider has an API key (set GOOGLE_API_KEY)")
	}

	return nil
}

// env lists arrive as one comma-separated string
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}

func getFloatFromMap(m map[string]interface{}, key string) float64 {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return 0
}
