package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"exam-prep-assistant/config"
	"exam-prep-assistant/pkg/gemini"
	"exam-prep-assistant/pkg/log"
	"exam-prep-assistant/pkg/openai"
)

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(ctx context.Context, cfg *config.LLMConfig, logger log.Logger) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	if len(cfg.Providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	// Filter enabled providers
	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	if len(enabledProviders) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	// Sort by priority (ascending order)
	sort.SliceStable(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	// Build provider instances - skip failed ones instead of failing entirely
	var providers []Provider
	var initErrors []string

	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			errMsg := fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, errMsg)
			logger.Warnf(ctx, "%s %s", logPrefix, errMsg)
			continue
		}
		logger.Infof(ctx, "%s initialized provider=%s model=%s priority=%d", logPrefix, provider.Name(), provider.Model(), p.Priority)
		providers = append(providers, provider)
	}

	// If no providers were successfully initialized, return error
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProvidersInitialized, strings.Join(initErrors, "; "))
	}

	if len(initErrors) > 0 {
		logger.Warnf(ctx, "%s %d provider(s) failed to initialize, continuing with %d",
			logPrefix, len(initErrors), len(providers))
	}

	return providers, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}

	timeout, err := parseTimeout(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", cfg.Name, err)
	}
	defaults := GenerationDefaults{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

	switch strings.ToLower(cfg.Name) {
	case ProviderGemini:
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: &http.Client{Timeout: timeout},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client, defaults), nil

	// DeepSeek and Qwen expose OpenAI-compatible endpoints
	case ProviderOpenAI, ProviderDeepSeek, ProviderQwen, "alibaba":
		client, err := openai.New(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
		}
		return NewOpenAIAdapter(strings.ToLower(cfg.Name), client, defaults), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

func parseTimeout(raw string) (time.Duration, error) {
	if raw == "" {
		return gemini.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	return d, nil
}

// ManagerConfig converts config durations into a Manager Config.
func ManagerConfig(cfg *config.LLMConfig) (*Config, error) {
	out := &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
	}
	if cfg.RetryDelay != "" {
		d, err := time.ParseDuration(cfg.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid retry_delay %q: %w", cfg.RetryDelay, err)
		}
		out.RetryDelay = d
	}
	if cfg.MaxTotalTimeout != "" {
		d, err := time.ParseDuration(cfg.MaxTotalTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid max_total_timeout %q: %w", cfg.MaxTotalTimeout, err)
		}
		out.MaxTotalTimeout = d
	}
	if out.RetryAttempts <= 0 {
		out.RetryAttempts = 1
	}
	return out, nil
}
