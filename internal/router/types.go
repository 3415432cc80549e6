package router

// Intent represents user's intention
type Intent string

const (
	IntentNotes          Intent = "notes"
	IntentQuiz           Intent = "quiz"
	IntentCurrentAffairs Intent = "current_affairs"
	IntentGeneral        Intent = "general"
)

// Intents lists every label in a stable order.
func Intents() []Intent {
	return []Intent{IntentNotes, IntentQuiz, IntentCurrentAffairs, IntentGeneral}
}

// Rule is one entry of the ordered routing table.
type Rule struct {
	Name     string   `json:"name" yaml:"name"`
	Intent   Intent   `json:"intent" yaml:"intent"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// RouterOutput is the result of classifying one turn.
type RouterOutput struct {
	Intent    Intent `json:"intent"`
	Rule      string `json:"rule"`                // name of the rule that matched
	Keyword   string `json:"keyword,omitempty"`   // matched keyword, if any
	Reasoning string `json:"reasoning,omitempty"` // set for non-keyword matches
}
