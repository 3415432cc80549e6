package workflow

import (
	"encoding/json"
	"time"

	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/llmprovider"
)

// toProviderMessages maps conversation history to the provider format. A tool
// call left without a result (a turn interrupted between nodes) gets a synthetic
// error response, since providers reject unanswered function calls.
func toProviderMessages(msgs []model.Message) []llmprovider.Message {
	out := make([]llmprovider.Message, 0, len(msgs))
	var pending []model.ToolCall

	flush := func() {
		for _, tc := range pending {
			out = append(out, llmprovider.Message{
				Role: llmprovider.RoleFunction,
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					ID:       tc.ID,
					Name:     tc.Name,
					Response: map[string]interface{}{"error": "no result was recorded for this call"},
				}}},
			})
		}
		pending = nil
	}

	for _, m := range msgs {
		if m.Role != model.RoleTool {
			flush()
		}
		switch m.Role {
		case model.RoleAssistant:
			var parts []llmprovider.Part
			if m.Content != "" {
				parts = append(parts, llmprovider.Part{Text: m.Content})
			}
			for _, tc := range m.ToolCalls {
				parts = append(parts, llmprovider.Part{FunctionCall: &llmprovider.FunctionCall{
					ID:   tc.ID,
					Name: tc.Name,
					Args: tc.Args,
				}})
			}
			if len(parts) == 0 {
				continue
			}
			out = append(out, llmprovider.Message{Role: llmprovider.RoleModel, Parts: parts})
			pending = append([]model.ToolCall(nil), m.ToolCalls...)
		case model.RoleTool:
			pending = answered(pending, m.ToolCallID)
			out = append(out, llmprovider.Message{
				Role: llmprovider.RoleFunction,
				Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
					ID:       m.ToolCallID,
					Name:     m.Name,
					Response: decodeToolContent(m.Content),
				}}},
			})
		default:
			out = append(out, userMessage(m.Content))
		}
	}
	return out
}

// answered drops the call with the given id from pending.
func answered(pending []model.ToolCall, id string) []model.ToolCall {
	for i, tc := range pending {
		if tc.ID == id {
			return append(pending[:i:i], pending[i+1:]...)
		}
	}
	return pending
}

func userMessage(text string) llmprovider.Message {
	return llmprovider.Message{Role: llmprovider.RoleUser, Parts: []llmprovider.Part{{Text: text}}}
}

// Function responses must be JSON objects.
func decodeToolContent(content string) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(content), &obj); err == nil && obj != nil {
		return obj
	}
	return map[string]interface{}{"content": content}
}

// fromProviderResponse turns a model reply into one assistant message.
func fromProviderResponse(resp *llmprovider.Response) model.Message {
	msg := model.Message{
		Role:      model.RoleAssistant,
		Content:   resp.Text(),
		CreatedAt: time.Now().UTC(),
	}
	for _, fc := range resp.FunctionCalls() {
		msg.ToolCalls = append(msg.ToolCalls, model.ToolCall{ID: fc.ID, Name: fc.Name, Args: fc.Args})
	}
	return msg
}
