package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/model"
)

// GetThread returns the stored conversation of a thread.
func (uc *implUseCase) GetThread(ctx context.Context, threadID string) (model.Conversation, error) {
	if strings.TrimSpace(threadID) == "" {
		return model.Conversation{}, chat.ErrEmptyThreadID
	}
	conv, err := uc.store.Load(ctx, threadID)
	if err != nil {
		if errors.Is(err, checkpoint.ErrThreadNotFound) {
			return model.Conversation{}, chat.ErrThreadNotFound
		}
		return model.Conversation{}, fmt.Errorf("load thread: %w", err)
	}
	return conv, nil
}

// DeleteThread forgets a thread. Deleting an unknown thread is not an error.
func (uc *implUseCase) DeleteThread(ctx context.Context, threadID string) error {
	if strings.TrimSpace(threadID) == "" {
		return chat.ErrEmptyThreadID
	}
	if err := uc.store.Delete(ctx, threadID); err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	uc.l.Infof(ctx, "Thread deleted: %s", threadID)
	return nil
}
