package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-prep-assistant/internal/chat"
	"exam-prep-assistant/internal/model"
	"exam-prep-assistant/pkg/log"
)

type stubUseCase struct{}

func (stubUseCase) StreamTurn(ctx context.Context, input chat.StreamInput, sink func(chat.StreamEvent)) error {
	sink(chat.StreamEvent{Type: chat.EventStreamEnd})
	return nil
}

func (stubUseCase) GetThread(ctx context.Context, threadID string) (model.Conversation, error) {
	return model.Conversation{}, chat.ErrThreadNotFound
}

func (stubUseCase) DeleteThread(ctx context.Context, threadID string) error { return nil }

func newTestServer(t *testing.T, opts ...func(*Config)) *HTTPServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "test_total", Help: "test"}))

	cfg := Config{
		Port:           8000,
		Mode:           gin.TestMode,
		Environment:    string(model.EnvironmentDevelopment),
		AllowedOrigins: []string{"http://localhost:3000"},
		Gatherer:       reg,
		ChatUseCase:    stubUseCase{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	srv, err := New(log.NewNop(), cfg)
	require.NoError(t, err)
	return srv
}

func TestNew_Validation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8000})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode, ChatUseCase: stubUseCase{}})
	assert.Error(t, err)
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"status": RootStatus}, body)
}

func TestHealthRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), ServiceName, path)
	}
}

func TestMetrics(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_total")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/chat/stream", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestChatRoutesMounted(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chat/threads/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReady(t *testing.T) {
	var storeErr error
	srv := newTestServer(t, func(c *Config) {
		c.Readiness = func(ctx context.Context) error { return storeErr }
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)

	storeErr = errors.New("checkpoint store: connection refused")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), `"status":"not ready"`)
}

func TestHealth_ReportsTools(t *testing.T) {
	srv := newTestServer(t, func(c *Config) {
		c.ToolsEnabled = func() bool { return false }
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tools_enabled":false`)
}
