package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/log"
)

func userTurn(text string) model.Conversation {
	return model.Conversation{Messages: []model.Message{{Role: model.RoleUser, Content: text}}}
}

func TestClassify_Keywords(t *testing.T) {
	r := New(log.NewNop())

	tests := []struct {
		name   string
		query  string
		intent Intent
		rule   string
	}{
		{"quiz", "Give me a quiz on the Indian National Congress", IntentQuiz, RuleQuizKeyword},
		{"quiz case insensitive", "QUIZ me on Mughals", IntentQuiz, RuleQuizKeyword},
		{"notes", "Make notes on the Constitution", IntentNotes, RuleNotesKeyword},
		{"explain", "Explain photosynthesis", IntentNotes, RuleNotesKeyword},
		{"summarize", "summarize the five year plans", IntentNotes, RuleNotesKeyword},
		{"latest news", "What is the latest news on the new education policy?", IntentCurrentAffairs, RuleNewsKeyword},
		{"current affairs", "current affairs for this week", IntentCurrentAffairs, RuleNewsKeyword},
		{"general", "hello there", IntentGeneral, RuleFallback},
		{"quiz beats notes", "quiz and notes on GST", IntentQuiz, RuleQuizKeyword},
		{"notes beats news", "explain the latest news on GST", IntentNotes, RuleNotesKeyword},
		{"quiz beats news", "latest news quiz", IntentQuiz, RuleQuizKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Classify(context.Background(), userTurn(tt.query))
			assert.Equal(t, tt.intent, out.Intent)
			assert.Equal(t, tt.rule, out.Rule)
		})
	}
}

func TestClassify_PendingToolCallWins(t *testing.T) {
	r := New(log.NewNop())
	conv := model.Conversation{Messages: []model.Message{
		{Role: model.RoleUser, Content: "latest news on policy X"},
		{Role: model.RoleAssistant, ToolCalls: []model.ToolCall{{ID: "c1", Name: "current_affairs_search"}}},
		{Role: model.RoleUser, Content: "give me a quiz"},
	}}

	out := r.Classify(context.Background(), conv)
	assert.Equal(t, IntentCurrentAffairs, out.Intent)
	assert.Equal(t, RulePendingToolCall, out.Rule)
}

func TestClassify_UsesLatestUserMessage(t *testing.T) {
	r := New(log.NewNop())
	conv := model.Conversation{Messages: []model.Message{
		{Role: model.RoleUser, Content: "make a quiz"},
		{Role: model.RoleAssistant, Content: "{...}"},
		{Role: model.RoleUser, Content: "thanks"},
	}}

	assert.Equal(t, IntentGeneral, r.Classify(context.Background(), conv).Intent)
}

func TestClassify_EmptyConversation(t *testing.T) {
	out := New(log.NewNop()).Classify(context.Background(), model.Conversation{})
	assert.Equal(t, IntentGeneral, out.Intent)
	assert.Equal(t, ReasonNoUserMessage, out.Reasoning)
}

func TestRules_Order(t *testing.T) {
	rules := Rules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	assert.Equal(t, []string{RulePendingToolCall, RuleQuizKeyword, RuleNotesKeyword, RuleNewsKeyword, RuleFallback}, names)
	assert.Equal(t, IntentGeneral, rules[len(rules)-1].Intent)
}
