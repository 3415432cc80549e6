package usecase

import (
	"context"
	"strings"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/internal/workflow"
	pkgLog "exam-prep-assistant/pkg/log"
)

// StreamTurn runs the workflow and translates its events for the client.
func (uc *implUseCase) StreamTurn(ctx context.Context, input chat.StreamInput, sink func(chat.StreamEvent)) error {
	if strings.TrimSpace(input.ThreadID) == "" {
		sink(chat.StreamEvent{Type: chat.EventError, Data: chat.ErrEmptyThreadID.Error()})
		return chat.ErrEmptyThreadID
	}
	if strings.TrimSpace(input.Query) == "" {
		sink(chat.StreamEvent{Type: chat.EventError, Data: chat.ErrEmptyQuery.Error()})
		return chat.ErrEmptyQuery
	}

	uc.l.Infof(ctx, "Received new stream request for thread_id: %s", input.ThreadID)

	result, err := uc.engine.Stream(ctx, input.ThreadID, input.Query, func(e workflow.Event) {
		switch {
		case e.Type == workflow.EventModelChunk && e.Chunk != "":
			sink(chat.StreamEvent{Type: chat.EventToken, Data: e.Chunk})
		case e.Type == workflow.EventNodeEnd && e.Node == workflow.NodeQuizSpecialist && len(e.Messages) > 0:
			uc.l.Infof(ctx, "Sending special 'quiz_json' event")
			sink(chat.StreamEvent{Type: chat.EventQuizJSON, Data: e.Messages[len(e.Messages)-1].Content})
		}
	})

	uc.publishTurn(ctx, result, err)

	if err != nil {
		uc.l.Errorf(ctx, "Error in stream for thread_id %s: %v", input.ThreadID, err)
		sink(chat.StreamEvent{Type: chat.EventError, Data: err.Error()})
		return err
	}

	uc.l.Infof(ctx, "Stream ended for thread_id: %s", input.ThreadID)
	sink(chat.StreamEvent{Type: chat.EventStreamEnd})
	return nil
}

// publishTurn is best effort; a broker outage never fails the turn.
func (uc *implUseCase) publishTurn(ctx context.Context, result workflow.TurnResult, turnErr error) {
	event := model.TurnEvent{
		ThreadID:     result.ThreadID,
		TraceID:      pkgLog.TraceID(ctx),
		Intent:       string(result.Intent),
		Status:       model.TurnCompleted,
		MessageCount: len(result.Conversation.Messages),
		Nodes:        result.Nodes,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
	}
	if turnErr != nil {
		event.Status = model.TurnFailed
		event.Error = turnErr.Error()
	}
	if err := uc.publisher.Publish(ctx, uc.subject, event); err != nil {
		uc.l.Warnf(ctx, "failed to publish turn event for thread_id %s: %v", result.ThreadID, err)
	}
}
