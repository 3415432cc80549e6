package eventbus

import "context"

// Publisher sends JSON-encoded events to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
	Close()
}
