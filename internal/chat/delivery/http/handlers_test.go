package http

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/middleware"
	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/log"
)

type mockUseCase struct {
	events    []chat.StreamEvent
	streamErr error
	threads   map[string]model.Conversation
	lastInput chat.StreamInput
	deleted   []string
}

func (m *mockUseCase) StreamTurn(ctx context.Context, input chat.StreamInput, sink func(chat.StreamEvent)) error {
	m.lastInput = input
	for _, e := range m.events {
		sink(e)
	}
	return m.streamErr
}

func (m *mockUseCase) GetThread(ctx context.Context, threadID string) (model.Conversation, error) {
	conv, ok := m.threads[threadID]
	if !ok {
		return model.Conversation{}, chat.ErrThreadNotFound
	}
	return conv, nil
}

func (m *mockUseCase) DeleteThread(ctx context.Context, threadID string) error {
	m.deleted = append(m.deleted, threadID)
	return nil
}

func setupRouter(uc chat.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/chat"), New(log.NewNop(), uc), middleware.New(log.NewNop(), nil))
	return r
}

// readEvents decodes every "data:" line of an SSE body.
func readEvents(t *testing.T, body string) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &ev))
		out = append(out, ev)
	}
	return out
}

func TestStream_WritesSSE(t *testing.T) {
	uc := &mockUseCase{events: []chat.StreamEvent{
		{Type: chat.EventToken, Data: "Hello"},
		{Type: chat.EventToken, Data: " world"},
		{Type: chat.EventStreamEnd},
	}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"query":"hi","thread_id":"t1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")
	assert.NotEmpty(t, w.Header().Get(middleware.TraceIDHeader))
	assert.Equal(t, chat.StreamInput{ThreadID: "t1", Query: "hi"}, uc.lastInput)

	events := readEvents(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, map[string]any{"type": "token", "data": "Hello"}, events[0])
	assert.Equal(t, map[string]any{"type": "token", "data": " world"}, events[1])
	assert.Equal(t, map[string]any{"type": "stream_end"}, events[2])
}

func TestStream_ErrorEvent(t *testing.T) {
	uc := &mockUseCase{
		events:    []chat.StreamEvent{{Type: chat.EventError, Data: "boom"}},
		streamErr: errors.New("boom"),
	}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(`{"query":"hi","thread_id":"t1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	events := readEvents(t, w.Body.String())
	require.Len(t, events, 1)
	assert.Equal(t, map[string]any{"type": "error", "data": "boom"}, events[0])
}

func TestStream_RejectsMissingFields(t *testing.T) {
	r := setupRouter(&mockUseCase{})

	for _, body := range []string{`{"query":"hi"}`, `{"thread_id":"t1"}`, `not json`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat/stream", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestGetThread(t *testing.T) {
	uc := &mockUseCase{threads: map[string]model.Conversation{
		"t1": {ThreadID: "t1", UpdatedAt: time.Date(2026, 3, 1, 9, 0, 1, 0, time.UTC), Messages: []model.Message{
			{Role: model.RoleUser, Content: "hi", CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
			{Role: model.RoleAssistant, ToolCalls: []model.ToolCall{{ID: "c1", Name: "current_affairs_search"}}},
		}},
	}}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/threads/t1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data threadResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "t1", body.Data.ThreadID)
	require.Len(t, body.Data.Messages, 2)
	assert.Equal(t, "user", body.Data.Messages[0].Role)
	assert.Equal(t, "current_affairs_search", body.Data.Messages[1].ToolCalls[0].Name)
	assert.Contains(t, w.Body.String(), `"created_at":"2026-03-01 09:00:00"`)
	assert.Contains(t, w.Body.String(), `"updated_at":"2026-03-01 09:00:01"`)
	assert.Nil(t, body.Data.Messages[1].CreatedAt)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/threads/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteThread(t *testing.T) {
	uc := &mockUseCase{}
	r := setupRouter(uc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/chat/threads/t1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"t1"}, uc.deleted)
}
