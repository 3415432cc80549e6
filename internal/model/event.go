package model

import "time"

// TurnStatus is the outcome of one streamed turn.
type TurnStatus string

const (
	TurnCompleted TurnStatus = "completed"
	TurnFailed    TurnStatus = "failed"
)

// TurnEvent describes a finished chat turn for downstream consumers.
type TurnEvent struct {
	ThreadID     string     `json:"thread_id"`
	TraceID      string     `json:"trace_id"`
	Intent       string     `json:"intent"`
	Status       TurnStatus `json:"status"`
	Error        string     `json:"error,omitempty"`
	MessageCount int        `json:"message_count"` // conversation length after the turn
	Nodes        []string   `json:"nodes"`         // executed nodes in order
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
}
