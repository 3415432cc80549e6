package http

import (
	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/response"
)

// --- Request DTOs ---

type streamReq struct {
	Query    string `json:"query"     binding:"required"`
	ThreadID string `json:"thread_id" binding:"required"`
}

func (r streamReq) toInput() chat.StreamInput {
	return chat.StreamInput{
		ThreadID: r.ThreadID,
		Query:    r.Query,
	}
}

// --- Response DTOs ---

type toolCallResp struct {
	ID   string                 `json:"id"`
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args,omitempty"`
}

type messageResp struct {
	Role       string             `json:"role"`
	Content    string             `json:"content"`
	ToolCalls  []toolCallResp     `json:"tool_calls,omitempty"`
	ToolCallID string             `json:"tool_call_id,omitempty"`
	Name       string             `json:"name,omitempty"`
	CreatedAt  *response.DateTime `json:"created_at,omitempty"`
}

type threadResp struct {
	ThreadID  string             `json:"thread_id"`
	Messages  []messageResp      `json:"messages"`
	UpdatedAt *response.DateTime `json:"updated_at,omitempty"`
}

func (h *handler) newThreadResp(conv model.Conversation) threadResp {
	msgs := make([]messageResp, 0, len(conv.Messages))
	for _, m := range conv.Messages {
		mr := messageResp{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
			Name:       m.Name,
			CreatedAt:  response.NewDateTime(m.CreatedAt),
		}
		for _, tc := range m.ToolCalls {
			mr.ToolCalls = append(mr.ToolCalls, toolCallResp{ID: tc.ID, Name: tc.Name, Args: tc.Args})
		}
		msgs = append(msgs, mr)
	}
	return threadResp{
		ThreadID:  conv.ThreadID,
		Messages:  msgs,
		UpdatedAt: response.NewDateTime(conv.UpdatedAt),
	}
}
