package workflow

// Node names
const (
	NodeClassifyIntent    = "classify_intent"
	NodeCallAgentModel    = "call_agent_model"
	NodeNotesSpecialist   = "notes_specialist"
	NodeQuizSpecialist    = "quiz_specialist"
	NodeCallTool          = "call_tool"
	NodeSynthesizeResults = "synthesize_results"

	// END terminates a run.
	END = "END"
)

// maxNodeExecutions bounds any path from the entry node to END.
const maxNodeExecutions = 4

// Log prefixes
const (
	LogPrefixStream  = "internal.workflow.Stream"
	LogPrefixNode    = "internal.workflow.node"
	LogPrefixCompile = "internal.workflow.Compile"
)
