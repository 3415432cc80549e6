package checkpoint

import (
	"context"

	"exam-prep-assistant/internal/model"
)

// Store persists conversation state per thread.
// Implementations must hand out copies so callers can't mutate stored state.
type Store interface {
	// Load returns ErrThreadNotFound for unknown threads.
	Load(ctx context.Context, threadID string) (model.Conversation, error)
	Save(ctx context.Context, threadID string, conv model.Conversation) error
	Delete(ctx context.Context, threadID string) error
	List(ctx context.Context) ([]string, error)
}
