package checkpoint

import "errors"

var (
	// ErrThreadNotFound is returned by Load when nothing was saved for the thread.
	ErrThreadNotFound = errors.New("thread not found")
	// ErrEmptyThreadID rejects blank thread identifiers.
	ErrEmptyThreadID = errors.New("thread id is empty")
)
