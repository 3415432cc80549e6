package chat

import "errors"

// Domain-specific errors for the chat package.
var (
	ErrEmptyQuery     = errors.New("query is empty")
	ErrEmptyThreadID  = errors.New("thread_id is empty")
	ErrThreadNotFound = errors.New("thread not found")
)
