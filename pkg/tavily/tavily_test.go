package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/search", r.URL.Path)

		var body searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "RBI repo rate", body.Query)
		assert.Equal(t, 4, body.MaxResults)
		assert.Equal(t, "basic", body.SearchDepth)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"a","url":"https://a","content":"one"},
			{"title":"b","url":"https://b","content":"two"},
			{"title":"c","url":"https://c","content":"three"},
			{"title":"d","url":"https://d","content":"four"},
			{"title":"e","url":"https://e","content":"five"}]}`))
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	results, err := client.Search(context.Background(), "  RBI repo rate ")
	require.NoError(t, err)
	assert.Len(t, results, 4)
	assert.Equal(t, "https://a", results[0].URL)

	// second identical query is cached
	_, err = client.Search(context.Background(), "rbi repo rate")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSearch_EmptyQuery(t *testing.T) {
	client, err := New(Config{APIKey: "k"})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "news")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSearch_RateLimitedHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, err := New(Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = client.Search(ctx, "news")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearch_RateLimitedGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := Config{APIKey: "k", BaseURL: srv.URL, MaxRetries: 2}
	require.NoError(t, cfg.Validate())
	client := newTavilyImpl(cfg)
	client.backoff = time.Millisecond

	_, err := client.Search(context.Background(), "news")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSearch_RecoversAfterRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Results: []Result{{Title: "ok", URL: "https://x"}}})
	}))
	defer srv.Close()

	cfg := Config{APIKey: "k", BaseURL: srv.URL}
	require.NoError(t, cfg.Validate())
	client := newTavilyImpl(cfg)
	client.backoff = time.Millisecond

	got, err := client.Search(context.Background(), "news")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Title)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestConfig_DefaultMaxRetries(t *testing.T) {
	cfg := Config{APIKey: "k"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héll", truncateRunes("héllo", 4))
	assert.Equal(t, "hi", truncateRunes("hi", 4))
}
