package openai

import "time"

const (
	// DefaultModel is the default chat model
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout bounds a single request, streaming included
	DefaultTimeout = 120 * time.Second

	// Roles of the normalized message format
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)
