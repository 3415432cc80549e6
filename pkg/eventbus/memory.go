package eventbus

import (
	"context"
	"encoding/json"
	"sync"
)

// Message is a published event kept by MemoryPublisher.
type Message struct {
	Subject string
	Data    []byte
}

// MemoryPublisher records events in process. Used when no broker is configured
// and in tests.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	keep     bool
}

// NewNop returns a publisher that discards events.
func NewNop() Publisher {
	return &MemoryPublisher{}
}

// NewMemory returns a publisher that keeps every event.
func NewMemory() *MemoryPublisher {
	return &MemoryPublisher{keep: true}
}

func (p *MemoryPublisher) Publish(_ context.Context, subject string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if !p.keep {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, Message{Subject: subject, Data: body})
	return nil
}

// Messages returns a copy of what was published.
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message(nil), p.messages...)
}

func (p *MemoryPublisher) Close() {}
