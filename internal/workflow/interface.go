package workflow

import "context"

// Engine runs chat turns through the compiled graph.
type Engine interface {
	// Stream appends query to the thread, runs the graph and emits events as it goes.
	Stream(ctx context.Context, threadID, query string, emit EmitFunc) (TurnResult, error)
	// Topology describes the compiled graph.
	Topology() Topology
	// ToolsEnabled reports whether the tool branch was compiled in.
	ToolsEnabled() bool
}
