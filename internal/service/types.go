package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_upstream_client.go -package=mocks ideas-para/internal/service UpstreamClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService ideas-para/internal/service ChatService

import "context"

// Message is a single turn of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage is the upstream provider's token accounting, passed through to the
// caller unchanged.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerationSettings tunes the upstream completion. Zero values fall back to
// the provider defaults (temperature 0.7, 1000 output tokens).
type GenerationSettings struct {
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

// UpstreamClient is the provider the gateway forwards to. The interface is
// defined from the service layer's perspective (consumer-first); errors are
// already normalized to the shared taxonomy by the implementation.
type UpstreamClient interface {
	// ChatCompletion generates a reply for the message list using the
	// caller-supplied credential.
	ChatCompletion(ctx context.Context, apiKey string, messages []Message, settings GenerationSettings) (string, Usage, error)
	// Embedding returns the embedding vector for the given text.
	Embedding(ctx context.Context, apiKey, text string) ([]float64, Usage, error)
}
