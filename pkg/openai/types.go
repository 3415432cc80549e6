package openai

import (
	"fmt"
	"time"

	sdk "github.com/openai/openai-go/v3"
)

// Config holds OpenAI-compatible client configuration.
// BaseURL can point at any compatible endpoint (DeepSeek, Qwen compatible-mode, ...).
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Validate validates the configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("openai: APIKey is required")
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

type openaiImpl struct {
	client  *sdk.Client
	model   string
	timeout time.Duration
}

// Request is a generation request
type Request struct {
	System      string
	Messages    []Message
	Tools       []Tool
	Temperature float64
	MaxTokens   int
}

// Message is one chat message. ToolCalls is set on assistant messages that
// request tools; ToolCallID is set on tool result messages.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// ToolCall is a function invocation requested by the model
type ToolCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// Tool is a function declaration
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Response is the generation result
type Response struct {
	Message Message
	Usage   Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
