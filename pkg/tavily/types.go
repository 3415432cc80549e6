package tavily

import (
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Config configures the Tavily client.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Depth      string
	CacheTTL   time.Duration
	RatePerMin int
	// MaxRetries bounds how many times a 429 response is retried.
	MaxRetries int
	HTTPClient *http.Client
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("tavily: API key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.Depth == "" {
		c.Depth = DefaultDepth
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.RatePerMin <= 0 {
		c.RatePerMin = DefaultRatePerMin
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// Result is one search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}

type tavilyImpl struct {
	cfg     Config
	limiter *rate.Limiter
	cache   *expirable.LRU[string, []Result]
	backoff time.Duration
}
