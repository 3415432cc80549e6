package gemini_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"exam-prep-assistant/pkg/gemini"
)

func newTestClient(t *testing.T, url string) gemini.IGemini {
	t.Helper()
	c, err := gemini.New(gemini.Config{APIKey: "test-api-key", APIURL: url})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := gemini.New(gemini.Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !strings.HasSuffix(r.URL.Path, "/models/"+gemini.DefaultModel+":generateContent") {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		contents := body["contents"].([]interface{})
		first := contents[0].(map[string]interface{})["parts"].([]interface{})[0].(map[string]interface{})
		if first["text"] == "cause_500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Declared tools mean the model asks for a function call.
		if _, ok := body["tools"]; ok {
			w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[
				{"functionCall":{"name":"current_affairs_search","args":{"query":"policy X"}}}]}}]}`))
			return
		}

		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "mocked response string"}]}}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
		}`))
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "Hello world"}}}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Content.Parts[0].Text != "mocked response string" {
			t.Errorf("unexpected content response: %s", resp.Content.Parts[0].Text)
		}
		if resp.Usage.TotalTokens != 7 {
			t.Errorf("expected 7 total tokens, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("Function Call Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "latest news"}}}},
			Tools:    []gemini.Tool{{Name: "current_affairs_search", Description: "search"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		fc := resp.Content.Parts[0].FunctionCall
		if fc == nil || fc.Name != "current_affairs_search" || fc.Args["query"] != "policy X" {
			t.Errorf("unexpected function call: %+v", fc)
		}
	})

	t.Run("Server Error Flow", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Parts: []gemini.Part{{Text: "cause_500"}}}},
		})
		if err == nil {
			t.Fatalf("expected error from 500 response")
		}
	})
}

func TestStreamContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") != "sse" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, text := range []string{"Photo", "synthesis ", "is"} {
			fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":%q}]}}]}\n\n", text)
		}
		fmt.Fprint(w, "data: {\"candidates\":[],\"usageMetadata\":{\"totalTokenCount\":12}}\n\n")
	}))
	defer ts.Close()

	client := newTestClient(t, ts.URL)

	var chunks []string
	resp, err := client.StreamContent(context.Background(), &gemini.Request{
		Messages: []gemini.Content{{Role: gemini.RoleUser, Parts: []gemini.Part{{Text: "explain"}}}},
	}, func(s string) { chunks = append(chunks, s) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if got := resp.Content.Parts[0].Text; got != "Photosynthesis is" {
		t.Errorf("unexpected accumulated text %q", got)
	}
	if resp.Usage.TotalTokens != 12 {
		t.Errorf("expected usage from last chunk, got %d", resp.Usage.TotalTokens)
	}
}

func TestStreamContent_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL).StreamContent(context.Background(), &gemini.Request{}, nil)
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected 429 error, got %v", err)
	}
}
