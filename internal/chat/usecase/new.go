package usecase

import (
	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/workflow"
	"exam-prep-assistant/pkg/eventbus"
	pkgLog "exam-prep-assistant/pkg/log"
)

type implUseCase struct {
	l         pkgLog.Logger
	engine    workflow.Engine
	store     checkpoint.Store
	publisher eventbus.Publisher
	subject   string
}

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	engine workflow.Engine,
	store checkpoint.Store,
	publisher eventbus.Publisher,
	subject string,
) chat.UseCase {
	if publisher == nil {
		publisher = eventbus.NewNop()
	}
	if subject == "" {
		subject = chat.DefaultTurnSubject
	}
	return &implUseCase{
		l:         l,
		engine:    engine,
		store:     store,
		publisher: publisher,
		subject:   subject,
	}
}
