package openai

import "context"

// IOpenAI is a chat-completions client. Implementations are safe for concurrent use.
type IOpenAI interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	StreamContent(ctx context.Context, req *Request, onChunk func(string)) (*Response, error)
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IOpenAI, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOpenAIImpl(cfg), nil
}
