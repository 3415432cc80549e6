package router

import (
	"context"
	"strings"

	"exam-prep-assistant/internal/model"
)

// Rules returns the routing table in evaluation order. The first match wins.
func Rules() []Rule {
	return []Rule{
		{Name: RulePendingToolCall, Intent: IntentCurrentAffairs},
		{Name: RuleQuizKeyword, Intent: IntentQuiz, Keywords: []string{"quiz"}},
		{Name: RuleNotesKeyword, Intent: IntentNotes, Keywords: []string{"notes", "explain", "summarize"}},
		{Name: RuleNewsKeyword, Intent: IntentCurrentAffairs, Keywords: []string{"current affairs", "latest news"}},
		{Name: RuleFallback, Intent: IntentGeneral},
	}
}

// Classify determines user intent from the conversation
// Convention: Method accepts context.Context as first parameter
func (r *KeywordRouter) Classify(ctx context.Context, conv model.Conversation) RouterOutput {
	output := r.classify(conv)
	r.l.Infof(ctx, "%s: Classified as %s (rule: %s)", LogPrefixClassify, output.Intent, output.Rule)
	return output
}

func (r *KeywordRouter) classify(conv model.Conversation) RouterOutput {
	var query string
	if msg, _, ok := conv.LastOfRole(model.RoleUser); ok {
		query = strings.ToLower(msg.Content)
	}

	for _, rule := range r.rules {
		switch rule.Name {
		case RulePendingToolCall:
			if conv.PendingToolCall() {
				return RouterOutput{Intent: rule.Intent, Rule: rule.Name, Reasoning: ReasonPendingToolCall}
			}
		case RuleFallback:
			reason := ReasonNoKeyword
			if query == "" {
				reason = ReasonNoUserMessage
			}
			return RouterOutput{Intent: rule.Intent, Rule: rule.Name, Reasoning: reason}
		default:
			for _, kw := range rule.Keywords {
				if strings.Contains(query, kw) {
					return RouterOutput{Intent: rule.Intent, Rule: rule.Name, Keyword: kw}
				}
			}
		}
	}

	return RouterOutput{Intent: IntentGeneral, Rule: RuleFallback, Reasoning: ReasonNoKeyword}
}
