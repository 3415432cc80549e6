package chat

import "encoding/json"

// Client event types
const (
	EventToken     = "token"
	EventQuizJSON  = "quiz_json"
	EventStreamEnd = "stream_end"
	EventError     = "error"
)

// DefaultTurnSubject is where finished turns are published.
const DefaultTurnSubject = "chat.turn.completed"

// StreamInput is one user turn.
type StreamInput struct {
	ThreadID string
	Query    string
}

// StreamEvent is the payload of one SSE message.
type StreamEvent struct {
	Type string
	Data string
}

// MarshalJSON writes {type, data}; stream_end carries no data.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	if e.Type == EventStreamEnd {
		return json.Marshal(struct {
			Type string `json:"type"`
		}{e.Type})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}{e.Type, e.Data})
}

// UnmarshalJSON reads {type, data}.
func (e *StreamEvent) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Type, e.Data = raw.Type, raw.Data
	return nil
}
