package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/model"
)

// Store implements checkpoint.Store in memory for the life of the process.
// Safe for concurrent use.
type Store struct {
	data map[string]model.Conversation
	mu   sync.RWMutex
}

var _ checkpoint.Store = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]model.Conversation),
	}
}

// Save persists a copy of the conversation.
func (s *Store) Save(ctx context.Context, threadID string, conv model.Conversation) error {
	if threadID == "" {
		return checkpoint.ErrEmptyThreadID
	}
	copied := conv.Clone()
	copied.ThreadID = threadID
	copied.UpdatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[threadID] = copied
	return nil
}

// Load retrieves a copy of the conversation.
func (s *Store) Load(ctx context.Context, threadID string) (model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.data[threadID]
	if !ok {
		return model.Conversation{}, checkpoint.ErrThreadNotFound
	}
	return conv.Clone(), nil
}

// Delete removes the conversation.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, threadID)
	return nil
}

// List returns known thread ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threads := make([]string, 0, len(s.data))
	for id := range s.data {
		threads = append(threads, id)
	}
	sort.Strings(threads)
	return threads, nil
}
