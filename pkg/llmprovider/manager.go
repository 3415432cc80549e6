package llmprovider

import (
	"context"
	"fmt"
	"time"

	"exam-prep-assistant/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // Global timeout for entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent iterates through providers in priority order with fallback logic
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	// Create context with global timeout for entire fallback chain
	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	// Iterate through providers in priority order
	for _, provider := range m.providers {
		// Check if context is already cancelled (timeout exceeded)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
			// Continue
		}

		// Call generateWithRetry for each provider
		resp, err := m.generateWithRetry(ctx, provider, req)
		if err == nil {
			// On success, log metrics and return response
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		// On failure, log error and try next provider
		m.logFailure(ctx, provider, err)
		lastErr = err

		// If fallback is disabled, stop after first provider
		if !m.config.FallbackEnabled {
			break
		}
	}

	// Return error if all providers fail
	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// StreamContent streams from providers in priority order. A provider that fails
// before emitting any chunk is retried and then falls back like GenerateContent;
// once a chunk reached onChunk the error is returned as is.
func (m *Manager) StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	emitted := false
	forward := func(chunk string) {
		if chunk == "" {
			return
		}
		emitted = true
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	var lastErr error
	for _, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w",
				len(m.providers), ctx.Err())
		default:
		}

		for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
			if attempt > 0 {
				if err := m.wait(ctx, attempt); err != nil {
					return nil, err
				}
			}

			resp, err := provider.StreamContent(ctx, req, forward)
			if err == nil {
				m.logSuccess(ctx, provider, resp)
				return resp, nil
			}
			lastErr = err
			if emitted {
				m.logFailure(ctx, provider, err)
				return nil, fmt.Errorf("%w: %v", ErrStreamInterrupted, err)
			}
		}

		m.logFailure(ctx, provider, lastErr)
		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// Name reports the primary provider.
func (m *Manager) Name() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Name()
}

// Model reports the primary provider's model.
func (m *Manager) Model() string {
	if len(m.providers) == 0 {
		return ""
	}
	return m.providers[0].Model()
}

func (m *Manager) wait(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * m.config.RetryDelay
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// generateWithRetry implements retry mechanism with linear backoff
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	var lastErr error

	for attempt := 0; attempt < m.config.RetryAttempts; attempt++ {
		if attempt > 0 {
			if err := m.wait(ctx, attempt); err != nil {
				return nil, err
			}
		}

		// Attempt generation
		resp, err := provider.GenerateContent(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	usage := resp.Usage
	if usage == nil {
		usage = &Usage{}
	}
	m.logger.Info(ctx, "LLM generation successful",
		"provider", provider.Name(),
		"model", provider.Model(),
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warn(ctx, "LLM generation failed",
		"provider", provider.Name(),
		"model", provider.Model(),
		"error", err.Error(),
	)
}

var _ Provider = (*Manager)(nil)
