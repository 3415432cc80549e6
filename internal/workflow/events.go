package workflow

import (
	"context"
	"time"

	"exam-prep-assistant/internal/model"
)

// EventType defines the category of a stream event.
type EventType string

const (
	EventNodeStart  EventType = "node_start"
	EventNodeEnd    EventType = "node_end"
	EventModelChunk EventType = "model_chunk"
	EventToolStart  EventType = "tool_start"
	EventToolEnd    EventType = "tool_end"
)

// Event is emitted to the Stream caller as the run progresses.
type Event struct {
	Type      EventType
	Node      string
	Timestamp time.Time

	// node_end: messages the node appended
	Messages []model.Message

	// model_chunk: streamed text fragment
	Chunk string

	// tool_start / tool_end
	ToolName   string
	ToolInput  map[string]interface{}
	ToolOutput string
}

// EmitFunc receives stream events. It is called from the goroutine running Stream.
type EmitFunc func(Event)

// NodeEvent represents entry or exit from a node.
type NodeEvent struct {
	ThreadID string
	Node     string
	Started  time.Time
	Duration time.Duration // zero on enter
	Err      error
}

// ToolEvent represents a tool execution.
type ToolEvent struct {
	ThreadID string
	Node     string
	ToolName string
	Input    map[string]interface{}
	Duration time.Duration // zero on call
	Err      error
}

// TurnEvent represents a finished Stream call.
type TurnEvent struct {
	ThreadID string
	Intent   string
	Duration time.Duration
	Err      error
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter  func(context.Context, *NodeEvent)
	OnNodeLeave  func(context.Context, *NodeEvent)
	OnToolCall   func(context.Context, *ToolEvent)
	OnToolReturn func(context.Context, *ToolEvent)
	OnTurnEnd    func(context.Context, *TurnEvent)
}

type hookSet []LifecycleHooks

func (hs hookSet) nodeEnter(ctx context.Context, e *NodeEvent) {
	for _, h := range hs {
		if h.OnNodeEnter != nil {
			h.OnNodeEnter(ctx, e)
		}
	}
}

func (hs hookSet) nodeLeave(ctx context.Context, e *NodeEvent) {
	for _, h := range hs {
		if h.OnNodeLeave != nil {
			h.OnNodeLeave(ctx, e)
		}
	}
}

func (hs hookSet) toolCall(ctx context.Context, e *ToolEvent) {
	for _, h := range hs {
		if h.OnToolCall != nil {
			h.OnToolCall(ctx, e)
		}
	}
}

func (hs hookSet) toolReturn(ctx context.Context, e *ToolEvent) {
	for _, h := range hs {
		if h.OnToolReturn != nil {
			h.OnToolReturn(ctx, e)
		}
	}
}

func (hs hookSet) turnEnd(ctx context.Context, e *TurnEvent) {
	for _, h := range hs {
		if h.OnTurnEnd != nil {
			h.OnTurnEnd(ctx, e)
		}
	}
}
