package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/model"
)

// Stream runs one user turn. State is saved after every node, so a failing
// turn keeps whatever it appended before the failure.
func (w *Workflow) Stream(ctx context.Context, threadID, query string, emit EmitFunc) (TurnResult, error) {
	result := TurnResult{ThreadID: threadID, StartedAt: time.Now().UTC()}
	if emit == nil {
		emit = func(Event) {}
	}

	err := w.run(ctx, threadID, query, emit, &result)
	result.FinishedAt = time.Now().UTC()

	w.hooks.turnEnd(ctx, &TurnEvent{
		ThreadID: threadID,
		Intent:   string(result.Intent),
		Duration: result.FinishedAt.Sub(result.StartedAt),
		Err:      err,
	})
	if err != nil {
		w.l.Errorf(ctx, "%s: thread %s failed: %v", LogPrefixStream, threadID, err)
		return result, err
	}
	return result, nil
}

func (w *Workflow) run(ctx context.Context, threadID, query string, emit EmitFunc, result *TurnResult) error {
	if strings.TrimSpace(threadID) == "" {
		return ErrEmptyThreadID
	}
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}

	conv, err := w.store.Load(ctx, threadID)
	if err != nil {
		if !errors.Is(err, checkpoint.ErrThreadNotFound) {
			return fmt.Errorf("load thread: %w", err)
		}
		conv = model.Conversation{ThreadID: threadID}
	}

	st := &State{
		ThreadID: threadID,
		Conversation: conv.Append(model.Message{
			Role:      model.RoleUser,
			Content:   query,
			CreatedAt: time.Now().UTC(),
		}),
	}
	if err := w.save(ctx, st); err != nil {
		return err
	}
	result.Conversation = st.Conversation

	node := w.graph.Entry()
	for steps := 0; node != END; steps++ {
		if steps >= maxNodeExecutions {
			return fmt.Errorf("%w: stopped before %s", ErrStepLimit, node)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		out, err := w.execNode(ctx, node, st, emit)
		result.Nodes = append(result.Nodes, node)
		if err != nil {
			return err
		}

		if out.Intent != "" {
			st.Intent = out.Intent
			result.Intent = out.Intent
		}
		if len(out.Messages) > 0 {
			st.Conversation = st.Conversation.Append(out.Messages...)
			if err := w.save(ctx, st); err != nil {
				return err
			}
			result.Conversation = st.Conversation
		}

		emit(Event{Type: EventNodeEnd, Node: node, Timestamp: time.Now(), Messages: out.Messages})

		node, err = w.graph.next(node, st)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workflow) execNode(ctx context.Context, node string, st *State, emit EmitFunc) (NodeOutput, error) {
	start := time.Now()
	w.hooks.nodeEnter(ctx, &NodeEvent{ThreadID: st.ThreadID, Node: node, Started: start})
	emit(Event{Type: EventNodeStart, Node: node, Timestamp: start})

	out, err := w.graph.nodes[node](ctx, st, emit)

	w.hooks.nodeLeave(ctx, &NodeEvent{
		ThreadID: st.ThreadID,
		Node:     node,
		Started:  start,
		Duration: time.Since(start),
		Err:      err,
	})
	return out, err
}

func (w *Workflow) save(ctx context.Context, st *State) error {
	if err := w.store.Save(ctx, st.ThreadID, st.Conversation); err != nil {
		return fmt.Errorf("save thread: %w", err)
	}
	return nil
}
