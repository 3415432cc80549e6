package tavily

import "context"

// ITavily searches the web through the Tavily API.
type ITavily interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// New creates a new Tavily client.
func New(cfg Config) (ITavily, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newTavilyImpl(cfg), nil
}
