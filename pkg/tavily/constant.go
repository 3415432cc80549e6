package tavily

import "time"

const (
	DefaultBaseURL    = "https://api.tavily.com"
	DefaultMaxResults = 4
	DefaultDepth      = "basic"
	DefaultTimeout    = 10 * time.Second
	DefaultCacheTTL   = 5 * time.Minute
	DefaultRatePerMin = 60
	DefaultMaxRetries = 4

	cacheSize       = 256
	initialBackoff  = 1 * time.Second
	maxBackoff      = 30 * time.Second
	searchEndpoint  = "/search"
	maxSnippetRunes = 2000
)
