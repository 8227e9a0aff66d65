package groq_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel_reviews/internal/adapters/groq"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func TestClient_Complete_ReturnsTrimmedContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("  {\"summary\":\"ok\"}  "))
	}))
	defer ts.Close()

	cl, err := groq.New(ts.URL, "test-key", "test-model", 0.7, 500, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := cl.Complete(ctx, "prompt")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "{\"summary\":\"ok\"}" {
		t.Fatalf("unexpected content: %q", got)
	}
}

func TestClient_Complete_SingleAttemptOnServerError(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	cl, err := groq.New(ts.URL, "test-key", "test-model", 0.7, 500, 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := cl.Complete(ctx, "prompt"); err == nil {
		t.Fatalf("expected error for 500")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", n)
	}
}

func TestClient_New_RequiresKey(t *testing.T) {
	if _, err := groq.New("https://api.groq.com/openai/v1", "", "test-model", 0.7, 500, 2); err == nil {
		t.Fatalf("expected error for empty API key")
	}
}
