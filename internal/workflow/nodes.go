package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/llmprovider"
)

func (w *Workflow) classifyIntentNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	out := w.router.Classify(ctx, st.Conversation)
	return NodeOutput{Intent: out.Intent}, nil
}

// callAgentModelNode sends the whole thread to the tool-enabled model.
func (w *Workflow) callAgentModelNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	req := &llmprovider.Request{
		Messages: toProviderMessages(st.Conversation.Messages),
		Tools:    w.tools.ToFunctionDefinitions(),
	}
	msg, err := w.streamModel(ctx, NodeCallAgentModel, req, emit)
	if err != nil {
		return NodeOutput{}, err
	}
	return NodeOutput{Messages: []model.Message{msg}}, nil
}

func (w *Workflow) notesNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	return w.specialist(ctx, NodeNotesSpecialist, st, emit, NotesPrompt)
}

func (w *Workflow) quizNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	return w.specialist(ctx, NodeQuizSpecialist, st, emit, QuizPrompt)
}

// specialist fills a template with the thread's opening question and makes one call.
func (w *Workflow) specialist(ctx context.Context, node string, st *State, emit EmitFunc, prompt func(string) string) (NodeOutput, error) {
	first, ok := st.Conversation.FirstUserMessage()
	if !ok {
		return NodeOutput{}, ErrNoUserMessage
	}
	req := &llmprovider.Request{Messages: []llmprovider.Message{userMessage(prompt(first.Content))}}
	msg, err := w.streamModel(ctx, node, req, emit)
	if err != nil {
		return NodeOutput{}, err
	}
	return NodeOutput{Messages: []model.Message{msg}}, nil
}

// callToolNode executes every tool call of the last assistant message. A failing
// tool still answers its call: the error text becomes the tool result so the
// thread never keeps an unanswered call.
func (w *Workflow) callToolNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	last, ok := st.Conversation.LastMessage()
	if !ok || !last.HasToolCalls() {
		return NodeOutput{}, ErrNoToolCalls
	}

	var out NodeOutput
	for _, call := range last.ToolCalls {
		emit(Event{Type: EventToolStart, Node: NodeCallTool, Timestamp: time.Now(), ToolName: call.Name, ToolInput: call.Args})
		w.hooks.toolCall(ctx, &ToolEvent{ThreadID: st.ThreadID, Node: NodeCallTool, ToolName: call.Name, Input: call.Args})

		start := time.Now()
		content, err := w.executeTool(ctx, call)
		w.hooks.toolReturn(ctx, &ToolEvent{
			ThreadID: st.ThreadID,
			Node:     NodeCallTool,
			ToolName: call.Name,
			Input:    call.Args,
			Duration: time.Since(start),
			Err:      err,
		})
		if err != nil {
			w.l.Warnf(ctx, "%s: tool %s failed: %v", LogPrefixNode, call.Name, err)
			content = toolErrorContent(call.Name, err)
		}

		emit(Event{Type: EventToolEnd, Node: NodeCallTool, Timestamp: time.Now(), ToolName: call.Name, ToolOutput: content})
		out.Messages = append(out.Messages, model.Message{
			Role:       model.RoleTool,
			Content:    content,
			ToolCallID: call.ID,
			Name:       call.Name,
			CreatedAt:  time.Now().UTC(),
		})
	}
	return out, nil
}

func (w *Workflow) executeTool(ctx context.Context, call model.ToolCall) (string, error) {
	tool, ok := w.tools.Get(call.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, call.Name)
	}
	result, err := tool.Execute(ctx, call.Args)
	if err != nil {
		return "", err
	}
	content, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}
	return string(content), nil
}

// toolErrorContent is the tool result recorded for a failed call.
func toolErrorContent(name string, err error) string {
	content, _ := json.Marshal(map[string]string{
		"error": fmt.Sprintf("Error: %s failed: %v", name, err),
	})
	return string(content)
}

// synthesizeNode summarises the latest tool result for the opening question.
func (w *Workflow) synthesizeNode(ctx context.Context, st *State, emit EmitFunc) (NodeOutput, error) {
	first, ok := st.Conversation.FirstUserMessage()
	if !ok {
		return NodeOutput{}, ErrNoUserMessage
	}
	last, ok := st.Conversation.LastMessage()
	if !ok || last.Role != model.RoleTool {
		return NodeOutput{}, ErrNoToolResult
	}

	req := &llmprovider.Request{Messages: []llmprovider.Message{userMessage(SynthesisPrompt(first.Content, last.Content))}}
	msg, err := w.streamModel(ctx, NodeSynthesizeResults, req, emit)
	if err != nil {
		return NodeOutput{}, err
	}
	return NodeOutput{Messages: []model.Message{msg}}, nil
}

func (w *Workflow) streamModel(ctx context.Context, node string, req *llmprovider.Request, emit EmitFunc) (model.Message, error) {
	resp, err := w.llm.StreamContent(ctx, req, func(chunk string) {
		emit(Event{Type: EventModelChunk, Node: node, Timestamp: time.Now(), Chunk: chunk})
	})
	if err != nil {
		return model.Message{}, fmt.Errorf("%s: model call failed: %w", node, err)
	}
	return fromProviderResponse(resp), nil
}
