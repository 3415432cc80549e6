package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	return NodeOutput{}, nil
}

func TestCompile_Valid(t *testing.T) {
	g := NewGraph().
		SetEntryPoint("a").
		AddNode("a", noop).
		AddNode("b", noop).
		AddEdge("b", END)
	g.AddConditionalEdges("a", func(*State) string { return "x" }, map[string]string{"x": "b", "y": END})

	cg, err := g.Compile()
	require.NoError(t, err)

	top := cg.Topology()
	assert.Equal(t, "a", top.Entry)
	assert.Equal(t, []string{"a", "b", END}, top.Nodes)
	assert.Equal(t, []Edge{
		{From: "a", To: "b", Condition: "x"},
		{From: "a", To: END, Condition: "y"},
		{From: "b", To: END},
	}, top.Edges)

	next, err := cg.next("a", &State{})
	require.NoError(t, err)
	assert.Equal(t, "b", next)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  error
	}{
		{"no entry", func() *Graph {
			return NewGraph().AddNode("a", noop).AddEdge("a", END)
		}, ErrNoEntryNode},
		{"unknown target", func() *Graph {
			return NewGraph().SetEntryPoint("a").AddNode("a", noop).AddEdge("a", "missing")
		}, ErrUnknownNode},
		{"edge to entry", func() *Graph {
			return NewGraph().SetEntryPoint("a").AddNode("a", noop).AddNode("b", noop).AddEdge("a", "b").AddEdge("b", "a")
		}, ErrEdgeToEntry},
		{"cycle", func() *Graph {
			return NewGraph().SetEntryPoint("a").
				AddNode("a", noop).AddNode("b", noop).AddNode("c", noop).
				AddEdge("a", "b").AddEdge("b", "c").AddEdge("c", "b")
		}, ErrCycle},
		{"missing edges", func() *Graph {
			return NewGraph().SetEntryPoint("a").AddNode("a", noop)
		}, ErrMissingEdges},
		{"duplicate node", func() *Graph {
			return NewGraph().SetEntryPoint("a").AddNode("a", noop).AddNode("a", noop).AddEdge("a", END)
		}, ErrDuplicateNode},
		{"unreachable", func() *Graph {
			return NewGraph().SetEntryPoint("a").AddNode("a", noop).AddNode("b", noop).AddEdge("a", END).AddEdge("b", END)
		}, ErrUnreachableNode},
		{"path too long", func() *Graph {
			return NewGraph().SetEntryPoint("a").
				AddNode("a", noop).AddNode("b", noop).AddNode("c", noop).AddNode("d", noop).AddNode("e", noop).
				AddEdge("a", "b").AddEdge("b", "c").AddEdge("c", "d").AddEdge("d", "e").AddEdge("e", END)
		}, ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build().Compile()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNext_UnknownRoute(t *testing.T) {
	g := NewGraph().SetEntryPoint("a").AddNode("a", noop)
	g.AddConditionalEdges("a", func(*State) string { return "nope" }, map[string]string{"yes": END})
	cg, err := g.Compile()
	require.NoError(t, err)

	_, err = cg.next("a", &State{})
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestWorkflowTopology(t *testing.T) {
	withTools, _ := newTestWorkflow(t, &scriptedProvider{}, &fakeTool{})
	top := withTools.Topology()
	assert.Equal(t, NodeClassifyIntent, top.Entry)
	assert.Contains(t, top.Nodes, NodeCallTool)
	assert.Contains(t, top.Edges, Edge{From: NodeCallTool, To: NodeSynthesizeResults})
	assert.Contains(t, top.Edges, Edge{From: NodeClassifyIntent, To: END, Condition: "general"})

	withoutTools, _ := newTestWorkflow(t, &scriptedProvider{}, nil)
	top = withoutTools.Topology()
	assert.NotContains(t, top.Nodes, NodeCallTool)
	assert.NotContains(t, top.Nodes, NodeSynthesizeResults)
	assert.Contains(t, top.Edges, Edge{From: NodeCallAgentModel, To: END})
}

func TestDescribeTopology(t *testing.T) {
	full, err := DescribeTopology(true)
	require.NoError(t, err)
	assert.Equal(t, NodeClassifyIntent, full.Entry)
	assert.Contains(t, full.Nodes, NodeCallTool)
	assert.Contains(t, full.Nodes, NodeSynthesizeResults)

	lean, err := DescribeTopology(false)
	require.NoError(t, err)
	assert.NotContains(t, lean.Nodes, NodeCallTool)
	assert.Contains(t, lean.Edges, Edge{From: NodeCallAgentModel, To: END})
}

func TestPrompts(t *testing.T) {
	assert.Contains(t, NotesPrompt("GST"), `notes on: "GST"`)
	assert.Contains(t, QuizPrompt("GST"), `quiz on: "GST"`)
	s := SynthesisPrompt("GST news", `{"results":[]}`)
	assert.Contains(t, s, `asked: "GST news"`)
	assert.Contains(t, s, `{"results":[]}`)
}
