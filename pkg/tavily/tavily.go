package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// ErrEmptyQuery is returned for blank queries.
var ErrEmptyQuery = errors.New("tavily: query is empty")

// ErrRateLimited is returned once every retry of a 429 response is spent.
var ErrRateLimited = errors.New("tavily: rate limited")

func newTavilyImpl(cfg Config) *tavilyImpl {
	burst := cfg.RatePerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &tavilyImpl{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RatePerMin)/60.0), burst),
		cache:   expirable.NewLRU[string, []Result](cacheSize, nil, cfg.CacheTTL),
		backoff: initialBackoff,
	}
}

// Search posts a query to Tavily. Identical queries within the cache TTL are served locally.
func (t *tavilyImpl) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := strings.ToLower(query)
	if cached, ok := t.cache.Get(key); ok {
		return cached, nil
	}

	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tavily: rate limiter: %w", err)
	}

	payload, err := json.Marshal(searchRequest{
		APIKey:      t.cfg.APIKey,
		Query:       query,
		MaxResults:  t.cfg.MaxResults,
		SearchDepth: t.cfg.Depth,
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: failed to marshal request: %w", err)
	}

	resp, err := t.postWithBackoff(ctx, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tavily: failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		r.Content = truncateRunes(r.Content, maxSnippetRunes)
		results = append(results, r)
		if len(results) >= t.cfg.MaxResults {
			break
		}
	}

	t.cache.Add(key, results)
	return results, nil
}

// Back off and retry on 429, doubling the delay each time up to maxBackoff.
// Gives up with ErrRateLimited after cfg.MaxRetries retries.
func (t *tavilyImpl) postWithBackoff(ctx context.Context, payload []byte) (*http.Response, error) {
	delay := t.backoff
	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(t.cfg.BaseURL, "/")+searchEndpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("tavily: failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+t.cfg.APIKey)

		resp, err := t.cfg.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("tavily: request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()
		if attempt > t.cfg.MaxRetries {
			return nil, fmt.Errorf("%w after %d attempts", ErrRateLimited, attempt)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < maxBackoff {
			delay *= 2
		}
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
