package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPublisher(t *testing.T) {
	p := NewMemory()
	require.NoError(t, p.Publish(context.Background(), "chat.turn.completed", map[string]string{"thread_id": "t1"}))

	msgs := p.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "chat.turn.completed", msgs[0].Subject)
	assert.JSONEq(t, `{"thread_id":"t1"}`, string(msgs[0].Data))
}

func TestNopPublisher(t *testing.T) {
	p := NewNop()
	require.NoError(t, p.Publish(context.Background(), "x", 1))
	assert.Empty(t, p.(*MemoryPublisher).Messages())
	assert.Error(t, p.Publish(context.Background(), "x", make(chan int)))
}
