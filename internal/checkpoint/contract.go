package checkpoint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-assistant/internal/model"
)

// RunStoreContract verifies that a Store implementation adheres to the interface contract.
func RunStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	threadID := "contract-thread-" + time.Now().Format("20060102150405")

	conv := model.Conversation{Messages: []model.Message{
		{Role: model.RoleUser, Content: "latest news on policy X"},
		{Role: model.RoleAssistant, ToolCalls: []model.ToolCall{{ID: "c1", Name: "current_affairs_search", Args: map[string]interface{}{"query": "policy X"}}}},
		{Role: model.RoleTool, ToolCallID: "c1", Name: "current_affairs_search", Content: `{"results":[]}`},
		{Role: model.RoleAssistant, Content: "Summary"},
	}}

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, threadID, conv))

		loaded, err := store.Load(ctx, threadID)
		require.NoError(t, err)
		assert.Equal(t, threadID, loaded.ThreadID)
		require.Len(t, loaded.Messages, 4)
		assert.Equal(t, model.RoleTool, loaded.Messages[2].Role)
		assert.Equal(t, "c1", loaded.Messages[2].ToolCallID)
		assert.Equal(t, "policy X", loaded.Messages[1].ToolCalls[0].Args["query"])
		assert.False(t, loaded.UpdatedAt.IsZero())
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, threadID)
		require.NoError(t, err)
		loaded.Messages[0].Content = "mutated"
		loaded.Messages = append(loaded.Messages, model.Message{Role: model.RoleUser})

		again, err := store.Load(ctx, threadID)
		require.NoError(t, err)
		assert.Equal(t, "latest news on policy X", again.Messages[0].Content)
		assert.Len(t, again.Messages, 4)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+threadID)
		assert.ErrorIs(t, err, ErrThreadNotFound)
	})

	t.Run("Empty thread id", func(t *testing.T) {
		assert.ErrorIs(t, store.Save(ctx, "", conv), ErrEmptyThreadID)
	})

	t.Run("List", func(t *testing.T) {
		id1 := threadID + "-1"
		id2 := threadID + "-2"
		_ = store.Save(ctx, id1, model.Conversation{})
		_ = store.Save(ctx, id2, model.Conversation{})
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		threads, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, threads, id1)
		assert.Contains(t, threads, id2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, threadID))
		_, err := store.Load(ctx, threadID)
		assert.ErrorIs(t, err, ErrThreadNotFound)
	})
}
