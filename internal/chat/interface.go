package chat

import (
	"context"

	"exam-prep-assistant/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// StreamTurn runs one user turn and hands every client event to sink, ending with
	// stream_end or a single error event.
	StreamTurn(ctx context.Context, input StreamInput, sink func(StreamEvent)) error

	// GetThread returns the stored conversation of a thread.
	GetThread(ctx context.Context, threadID string) (model.Conversation, error)

	// DeleteThread forgets a thread.
	DeleteThread(ctx context.Context, threadID string) error
}
