package router

import (
	"context"

	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/log"
)

// Router is the interface for intent routing
type Router interface {
	Classify(ctx context.Context, conv model.Conversation) RouterOutput
}

// KeywordRouter classifies user intent with an ordered rule list
type KeywordRouter struct {
	rules []Rule
	l     log.Logger
}

// Ensure KeywordRouter implements Router interface
var _ Router = (*KeywordRouter)(nil)

// New creates a new KeywordRouter
func New(l log.Logger) *KeywordRouter {
	return &KeywordRouter{
		rules: Rules(),
		l:     l,
	}
}
