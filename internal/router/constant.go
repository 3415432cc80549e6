package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// Rule names
const (
	RulePendingToolCall = "pending_tool_call"
	RuleQuizKeyword     = "quiz_keyword"
	RuleNotesKeyword    = "notes_keyword"
	RuleNewsKeyword     = "news_keyword"
	RuleFallback        = "fallback"
)

// Fallback reasons
const (
	ReasonPendingToolCall = "latest assistant turn requested a tool"
	ReasonNoUserMessage   = "no user message in conversation"
	ReasonNoKeyword       = "no routing keyword matched"
)
