package workflow

import (
	"context"

	"exam-prep-assistant/internal/agent"
	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/router"
	"exam-prep-assistant/pkg/llmprovider"
	"exam-prep-assistant/pkg/log"
)

// Deps collects the collaborators of a Workflow.
type Deps struct {
	LLM    llmprovider.Provider
	Tools  *agent.ToolRegistry // nil or empty omits the tool branch
	Router router.Router
	Store  checkpoint.Store
	Logger log.Logger
	Hooks  []LifecycleHooks
}

// Workflow is the graph-driven chat engine.
type Workflow struct {
	llm    llmprovider.Provider
	tools  *agent.ToolRegistry
	router router.Router
	store  checkpoint.Store
	l      log.Logger
	hooks  hookSet
	graph  *CompiledGraph
}

var _ Engine = (*Workflow)(nil)

// New builds and compiles the workflow graph.
func New(ctx context.Context, deps Deps) (*Workflow, error) {
	switch {
	case deps.LLM == nil:
		return nil, ErrMissingLLM
	case deps.Store == nil:
		return nil, ErrMissingStore
	case deps.Router == nil:
		return nil, ErrMissingRouter
	}
	if deps.Logger == nil {
		deps.Logger = log.NewNop()
	}

	w := &Workflow{
		llm:    deps.LLM,
		tools:  deps.Tools,
		router: deps.Router,
		store:  deps.Store,
		l:      deps.Logger,
	}
	w.hooks = append(hookSet{loggingHooks(deps.Logger)}, deps.Hooks...)

	graph, err := w.buildGraph(w.ToolsEnabled()).Compile()
	if err != nil {
		return nil, err
	}
	w.graph = graph

	w.l.Infof(ctx, "%s: graph compiled successfully (tools=%t, nodes=%d)", LogPrefixCompile, w.ToolsEnabled(), len(graph.order))
	return w, nil
}

// ToolsEnabled reports whether the tool branch was compiled in.
func (w *Workflow) ToolsEnabled() bool {
	return w.tools.Len() > 0
}

// Topology describes the compiled graph.
func (w *Workflow) Topology() Topology {
	return w.graph.Topology()
}

func (w *Workflow) buildGraph(withTools bool) *Graph {
	g := NewGraph().
		SetEntryPoint(NodeClassifyIntent).
		AddNode(NodeClassifyIntent, w.classifyIntentNode).
		AddNode(NodeCallAgentModel, w.callAgentModelNode).
		AddNode(NodeNotesSpecialist, w.notesNode).
		AddNode(NodeQuizSpecialist, w.quizNode)

	g.AddConditionalEdges(NodeClassifyIntent, routeByIntent, map[string]string{
		string(router.IntentCurrentAffairs): NodeCallAgentModel,
		string(router.IntentQuiz):           NodeQuizSpecialist,
		string(router.IntentNotes):          NodeNotesSpecialist,
		string(router.IntentGeneral):        END,
	})
	g.AddEdge(NodeQuizSpecialist, END)
	g.AddEdge(NodeNotesSpecialist, END)

	if !withTools {
		g.AddEdge(NodeCallAgentModel, END)
		return g
	}

	g.AddNode(NodeCallTool, w.callToolNode).
		AddNode(NodeSynthesizeResults, w.synthesizeNode)
	g.AddConditionalEdges(NodeCallAgentModel, routeToolCalls, map[string]string{
		NodeCallTool: NodeCallTool,
		END:          END,
	})
	g.AddEdge(NodeCallTool, NodeSynthesizeResults)
	g.AddEdge(NodeSynthesizeResults, END)
	return g
}

// DescribeTopology compiles the graph without collaborators so it can be inspected offline.
func DescribeTopology(withTools bool) (Topology, error) {
	graph, err := (&Workflow{}).buildGraph(withTools).Compile()
	if err != nil {
		return Topology{}, err
	}
	return graph.Topology(), nil
}

func routeByIntent(st *State) string {
	return string(st.Intent)
}

func routeToolCalls(st *State) string {
	if last, ok := st.Conversation.LastMessage(); ok && last.HasToolCalls() {
		return NodeCallTool
	}
	return END
}

func loggingHooks(l log.Logger) LifecycleHooks {
	return LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *NodeEvent) {
			l.Debugf(ctx, "%s: --- %s ---", LogPrefixNode, e.Node)
		},
		OnNodeLeave: func(ctx context.Context, e *NodeEvent) {
			if e.Err != nil {
				l.Warnf(ctx, "%s: %s failed after %s: %v", LogPrefixNode, e.Node, e.Duration, e.Err)
			}
		},
		OnToolCall: func(ctx context.Context, e *ToolEvent) {
			l.Infof(ctx, "%s: Tool started: %s with input %v", LogPrefixNode, e.ToolName, e.Input)
		},
		OnToolReturn: func(ctx context.Context, e *ToolEvent) {
			if e.Err != nil {
				l.Warnf(ctx, "%s: Tool failed: %s: %v", LogPrefixNode, e.ToolName, e.Err)
				return
			}
			l.Infof(ctx, "%s: Tool ended: %s", LogPrefixNode, e.ToolName)
		},
	}
}
