package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ideas-para/internal/service"
)

func TestChatCompletion(t *testing.T) {
	var gotBody chatRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "Hola"}},
			},
			"usage": map[string]int{"prompt_tokens": 9, "completion_tokens": 3, "total_tokens": 12},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	messages := []service.Message{{Role: "user", Content: "Hola"}}
	reply, usage, err := client.ChatCompletion(context.Background(), "sk-test", messages, service.GenerationSettings{})
	if err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}

	if reply != "Hola" {
		t.Errorf("reply = %q", reply)
	}
	if usage.TotalTokens != 12 {
		t.Errorf("total tokens = %d, want 12", usage.TotalTokens)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	// Zero-value settings fall back to the documented defaults.
	if gotBody.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotBody.Model)
	}
	if gotBody.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotBody.Temperature)
	}
	if gotBody.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", gotBody.MaxTokens)
	}
}

func TestChatCompletionForwardsSettings(t *testing.T) {
	var gotBody chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	settings := service.GenerationSettings{Temperature: 0.2, MaxTokens: 256}
	if _, _, err := client.ChatCompletion(context.Background(), "sk-test", nil, settings); err != nil {
		t.Fatalf("ChatCompletion() error = %v", err)
	}

	if gotBody.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", gotBody.Temperature)
	}
	if gotBody.MaxTokens != 256 {
		t.Errorf("max_tokens = %d, want 256", gotBody.MaxTokens)
	}
}

func TestChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.ChatCompletion(context.Background(), "sk-test", nil, service.GenerationSettings{})
	if err == nil {
		t.Fatal("ChatCompletion() error = nil, want error for empty choices")
	}
}

func TestEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req embeddingRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "text-embedding-3-small" {
			t.Errorf("model = %q", req.Model)
		}
		if req.Input != "una idea" {
			t.Errorf("input = %q", req.Input)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data":  []map[string]any{{"embedding": []float64{0.1, 0.2}}},
			"usage": map[string]int{"prompt_tokens": 2, "total_tokens": 2},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	vector, usage, err := client.Embedding(context.Background(), "sk-test", "una idea")
	if err != nil {
		t.Fatalf("Embedding() error = %v", err)
	}
	if len(vector) != 2 {
		t.Errorf("dimensions = %d, want 2", len(vector))
	}
	if usage.TotalTokens != 2 {
		t.Errorf("total tokens = %d, want 2", usage.TotalTokens)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    string
		wantErr error
	}{
		{"invalid api key", http.StatusUnauthorized, "invalid_api_key", service.ErrUnauthorized},
		{"insufficient quota", http.StatusTooManyRequests, "insufficient_quota", service.ErrQuotaExceeded},
		{"rate limit exceeded", http.StatusTooManyRequests, "rate_limit_exceeded", service.ErrUpstreamRateLimited},
		{"plain 401", http.StatusUnauthorized, "", service.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error":{"message":"upstream says no","code":%q}}`, tt.code)
			}))
			defer server.Close()

			client := NewClient(server.URL)
			_, _, err := client.ChatCompletion(context.Background(), "sk-test", nil, service.GenerationSettings{})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChatCompletion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestErrorNormalizationOpaque(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, _, err := client.ChatCompletion(context.Background(), "sk-test", nil, service.GenerationSettings{})
	if err == nil {
		t.Fatal("ChatCompletion() error = nil")
	}
	for _, known := range []error{service.ErrUnauthorized, service.ErrQuotaExceeded, service.ErrUpstreamRateLimited} {
		if errors.Is(err, known) {
			t.Errorf("opaque error matched taxonomy error %v", known)
		}
	}
}

func TestNewClientDefaultBaseURL(t *testing.T) {
	client := NewClient("")
	if client.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", client.BaseURL, DefaultBaseURL)
	}
}
