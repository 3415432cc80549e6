package workflow

import "errors"

var (
	ErrNoEntryNode      = errors.New("workflow: entry node not set")
	ErrUnknownNode      = errors.New("workflow: unknown node")
	ErrDuplicateNode    = errors.New("workflow: duplicate node")
	ErrEdgeToEntry      = errors.New("workflow: edge returns to entry node")
	ErrMissingEdges     = errors.New("workflow: node has no outgoing edge")
	ErrCycle            = errors.New("workflow: cycle detected")
	ErrPathTooLong      = errors.New("workflow: path exceeds node execution limit")
	ErrUnreachableNode  = errors.New("workflow: node unreachable from entry")
	ErrUnknownRoute     = errors.New("workflow: router returned unmapped route")
	ErrStepLimit        = errors.New("workflow: node execution limit reached")
	ErrToolNotFound     = errors.New("workflow: tool not registered")
	ErrNoToolCalls      = errors.New("workflow: last message has no tool calls")
	ErrNoUserMessage    = errors.New("workflow: conversation has no user message")
	ErrNoToolResult     = errors.New("workflow: conversation has no tool result")
	ErrEmptyThreadID    = errors.New("workflow: thread id is empty")
	ErrEmptyQuery       = errors.New("workflow: query is empty")
	ErrMissingLLM       = errors.New("workflow: model provider is required")
	ErrMissingStore     = errors.New("workflow: checkpoint store is required")
	ErrMissingRouter    = errors.New("workflow: router is required")
	ErrConflictingEdges = errors.New("workflow: node has both static and conditional edges")
)
