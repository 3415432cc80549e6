package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Connect dials a NATS server and returns a publisher on it.
func Connect(url string, opts ...nats.Option) (Publisher, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return NewNATS(nc), nil
}

// NewNATS wraps an existing connection.
func NewNATS(nc *nats.Conn) Publisher {
	return &natsPublisher{nc: nc}
}

type natsPublisher struct {
	nc *nats.Conn
}

func (p *natsPublisher) Publish(_ context.Context, subject string, v any) error {
	if subject == "" {
		return errors.New("subject required")
	}
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.nc.Publish(subject, body)
}

// Close flushes pending messages and closes the connection.
func (p *natsPublisher) Close() {
	_ = p.nc.Drain()
}
