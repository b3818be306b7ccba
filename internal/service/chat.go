// Package service validates gateway requests and orchestrates calls to the
// upstream provider. Validation and credential errors short-circuit before
// any upstream call is attempted.
package service

import (
	"context"
	"log/slog"
	"strings"

	"ideas-para/internal/contextutil"
)

// Credential shape limits. Upstream keys start with "sk-" and run ~50+
// characters; anything shorter is rejected before it leaves the gateway.
const (
	keyPrefix    = "sk-"
	minKeyLength = 45
)

// ChatRequest is a chat-completion request in the domain layer.
type ChatRequest struct {
	Messages []Message
	APIKey   string
	Settings GenerationSettings
}

// ChatResponse is the generated reply plus usage accounting.
type ChatResponse struct {
	Response string
	Usage    Usage
}

// ChatService proxies chat-completion requests to the upstream provider.
type ChatService interface {
	// ProcessChat validates the request and forwards it upstream.
	ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

type chatService struct {
	upstream UpstreamClient
	logger   *slog.Logger
}

// NewChatService creates a ChatService backed by the given upstream provider.
func NewChatService(upstream UpstreamClient) ChatService {
	return &chatService{
		upstream: upstream,
		logger:   slog.Default(),
	}
}

// validateKey applies the credential shape checks in their fixed order:
// presence, prefix, length.
func validateKey(apiKey string) *ValidationError {
	if apiKey == "" {
		return &ValidationError{Field: "apiKey", Message: "API key requerida"}
	}
	if !strings.HasPrefix(apiKey, keyPrefix) {
		return &ValidationError{Field: "apiKey", Message: `API key inválida. Debe empezar con "sk-"`}
	}
	if len(apiKey) < minKeyLength {
		return &ValidationError{Field: "apiKey", Message: "API key muy corta. Debe tener ~50+ caracteres"}
	}
	return nil
}

// ProcessChat validates the credential and message list, then forwards the
// request. The validation order is fixed and observable: credential checks
// always run before message checks.
func (s *chatService) ProcessChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.Logger(ctx)

	if err := validateKey(req.APIKey); err != nil {
		logger.WarnContext(ctx, "rejected chat request", "field", err.Field)
		return ChatResponse{}, err
	}

	if len(req.Messages) == 0 {
		logger.WarnContext(ctx, "rejected chat request", "field", "messages")
		return ChatResponse{}, &ValidationError{Field: "messages", Message: "Mensajes requeridos"}
	}
	for _, msg := range req.Messages {
		if msg.Content == "" || !validRole(msg.Role) {
			logger.WarnContext(ctx, "rejected chat request", "field", "messages")
			return ChatResponse{}, &ValidationError{Field: "messages", Message: "Formato de mensajes inválido"}
		}
	}

	response, usage, err := s.upstream.ChatCompletion(ctx, req.APIKey, req.Messages, req.Settings)
	if err != nil {
		logger.ErrorContext(ctx, "upstream chat completion failed", "error", err)
		return ChatResponse{}, err
	}
	if response == "" {
		logger.ErrorContext(ctx, "upstream returned empty completion")
		return ChatResponse{}, WrapError(ErrEmptyCompletion, "upstream chat completion")
	}

	logger.InfoContext(ctx, "chat request processed",
		"messages", len(req.Messages), "total_tokens", usage.TotalTokens)
	return ChatResponse{Response: response, Usage: usage}, nil
}

func validRole(role string) bool {
	switch role {
	case "user", "assistant", "system":
		return true
	}
	return false
}
