package model

import "time"

// Role identifies who produced a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

// Message is one entry of a conversation.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"` // tool messages only
	Name       string     `json:"name,omitempty"`         // tool name for tool messages
	CreatedAt  time.Time  `json:"created_at"`
}

// HasToolCalls reports whether the message requests tool invocations.
func (m Message) HasToolCalls() bool {
	return len(m.ToolCalls) > 0
}

// Conversation is the append-only state of one thread.
type Conversation struct {
	ThreadID  string    `json:"thread_id"`
	Messages  []Message `json:"messages"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Append returns a copy of c with msgs added at the end.
func (c Conversation) Append(msgs ...Message) Conversation {
	out := c.Clone()
	out.Messages = append(out.Messages, msgs...)
	return out
}

// Clone deep-copies the message list so callers can't alias stored state.
func (c Conversation) Clone() Conversation {
	out := Conversation{ThreadID: c.ThreadID, UpdatedAt: c.UpdatedAt}
	if c.Messages == nil {
		return out
	}
	out.Messages = make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		if m.ToolCalls != nil {
			calls := make([]ToolCall, len(m.ToolCalls))
			copy(calls, m.ToolCalls)
			m.ToolCalls = calls
		}
		out.Messages[i] = m
	}
	return out
}

// FirstUserMessage returns the message that opened the thread.
func (c Conversation) FirstUserMessage() (Message, bool) {
	for _, m := range c.Messages {
		if m.Role == RoleUser {
			return m, true
		}
	}
	return Message{}, false
}

// LastMessage returns the most recent message.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastOfRole returns the most recent message with the given role and its index.
func (c Conversation) LastOfRole(role Role) (Message, int, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == role {
			return c.Messages[i], i, true
		}
	}
	return Message{}, -1, false
}

// PendingToolCall reports whether the latest assistant turn requested a tool
// that has no result recorded after it.
func (c Conversation) PendingToolCall() bool {
	msg, idx, ok := c.LastOfRole(RoleAssistant)
	if !ok || !msg.HasToolCalls() {
		return false
	}
	for _, m := range c.Messages[idx+1:] {
		if m.Role == RoleTool {
			return false
		}
	}
	return true
}
