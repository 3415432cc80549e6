package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-1.5-pro"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout.
	// Streaming responses can stay open for a while, so it is generous.
	DefaultTimeout = 120 * time.Second

	// Roles understood by the Gemini API
	RoleUser     = "user"
	RoleModel    = "model"
	RoleFunction = "function"

	sseDataPrefix   = "data:"
	maxSSELineBytes = 1 << 20
)
