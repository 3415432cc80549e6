package workflow

import (
	"time"

	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/internal/router"
)

// State is what nodes read while a run progresses.
type State struct {
	ThreadID     string
	Conversation model.Conversation
	Intent       router.Intent
}

// NodeOutput is what a node adds to the state.
type NodeOutput struct {
	Messages []model.Message
	Intent   router.Intent
}

// TurnResult summarises one Stream call.
type TurnResult struct {
	ThreadID     string
	Intent       router.Intent
	Nodes        []string
	Conversation model.Conversation
	StartedAt    time.Time
	FinishedAt   time.Time
}
