package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversation_AppendDoesNotAlias(t *testing.T) {
	base := Conversation{ThreadID: "t1", Messages: []Message{
		{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "search"}}},
	}}

	next := base.Append(Message{Role: RoleUser, Content: "hi"})
	next.Messages[0].ToolCalls[0].Name = "changed"

	assert.Len(t, base.Messages, 1)
	assert.Len(t, next.Messages, 2)
	assert.Equal(t, "search", base.Messages[0].ToolCalls[0].Name)
}

func TestConversation_FirstUserMessage(t *testing.T) {
	c := Conversation{Messages: []Message{
		{Role: RoleUser, Content: "explain federalism"},
		{Role: RoleAssistant, Content: "..."},
		{Role: RoleUser, Content: "now a quiz"},
	}}
	m, ok := c.FirstUserMessage()
	assert.True(t, ok)
	assert.Equal(t, "explain federalism", m.Content)

	_, ok = Conversation{}.FirstUserMessage()
	assert.False(t, ok)
}

func TestConversation_PendingToolCall(t *testing.T) {
	call := Message{Role: RoleAssistant, ToolCalls: []ToolCall{{ID: "c1", Name: "current_affairs_search"}}}

	assert.False(t, Conversation{}.PendingToolCall())
	assert.True(t, Conversation{Messages: []Message{call}}.PendingToolCall())
	assert.True(t, Conversation{Messages: []Message{call, {Role: RoleUser, Content: "hello"}}}.PendingToolCall())
	assert.False(t, Conversation{Messages: []Message{call, {Role: RoleTool, ToolCallID: "c1"}}}.PendingToolCall())
	assert.False(t, Conversation{Messages: []Message{{Role: RoleAssistant, Content: "done"}}}.PendingToolCall())
}
