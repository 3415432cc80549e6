package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/internal/router"
	"exam-prep-assistant/internal/workflow"
)

func TestFormatRules(t *testing.T) {
	out, err := formatRules(router.Rules(), formatText)
	require.NoError(t, err)
	assert.Contains(t, out, "1. pending_tool_call")
	assert.Contains(t, out, "-> general")

	out, err = formatRules(router.Rules(), formatYAML)
	require.NoError(t, err)
	var rules []router.Rule
	require.NoError(t, yaml.Unmarshal([]byte(out), &rules))
	assert.Equal(t, router.Rules(), rules)

	_, err = formatRules(router.Rules(), "xml")
	assert.Error(t, err)
}

func TestFormatTopology(t *testing.T) {
	top, err := workflow.DescribeTopology(true)
	require.NoError(t, err)

	out, err := formatTopology(top, formatText)
	require.NoError(t, err)
	assert.Contains(t, out, "entry: classify_intent")
	assert.Contains(t, out, "classify_intent --[quiz]--> quiz_specialist")
	assert.Contains(t, out, "call_tool --> synthesize_results")

	out, err = formatTopology(top, formatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"entry": "classify_intent"`)
}

type scriptedChat struct {
	events []chat.StreamEvent
	err    error
}

func (s scriptedChat) StreamTurn(ctx context.Context, input chat.StreamInput, sink func(chat.StreamEvent)) error {
	for _, e := range s.events {
		sink(e)
	}
	return s.err
}

func (scriptedChat) GetThread(context.Context, string) (model.Conversation, error) {
	return model.Conversation{}, nil
}

func (scriptedChat) DeleteThread(context.Context, string) error { return nil }

func TestRunTurn_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	uc := scriptedChat{events: []chat.StreamEvent{
		{Type: chat.EventToken, Data: "# Notes"},
		{Type: chat.EventToken, Data: "\n- one"},
		{Type: chat.EventStreamEnd},
	}}
	require.NoError(t, runTurn(context.Background(), uc, p, chat.StreamInput{ThreadID: "t", Query: "notes"}))
	assert.Equal(t, "# Notes\n- one\n", buf.String())
}

func TestRunTurn_Error(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	uc := scriptedChat{
		events: []chat.StreamEvent{{Type: chat.EventError, Data: "quota exceeded"}},
		err:    errors.New("quota exceeded"),
	}
	err := runTurn(context.Background(), uc, p, chat.StreamInput{ThreadID: "t", Query: "notes"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "error: quota exceeded")
}

func TestRunTurn_NoAnswer(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf, true)

	require.NoError(t, runTurn(context.Background(), scriptedChat{events: []chat.StreamEvent{{Type: chat.EventStreamEnd}}}, p,
		chat.StreamInput{ThreadID: "t", Query: "hello"}))
	assert.Contains(t, buf.String(), "no answer")
}
