// Package conciencia is the companion client: it builds the system prompt
// from the user's journal, talks to the gateway first and falls back to the
// upstream provider directly when the gateway is unreachable, and offers a
// simulated responder for installations without a credential.
package conciencia

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ideas-para/internal/service"
	"ideas-para/internal/store"
)

// Path names which network path produced a result.
type Path string

const (
	PathGateway Path = "gateway"
	PathDirect  Path = "direct"
)

// Result is a typed companion reply: the text, the upstream usage accounting
// and the path that produced it.
type Result struct {
	Reply string
	Usage service.Usage
	Path  Path
}

// Service generates companion replies. The gateway is always attempted
// first; only network-level failures (connect errors, timeouts) fall back to
// the direct upstream client with the locally held key. Application-level
// gateway errors are surfaced as-is so both paths share one error taxonomy.
type Service struct {
	store      *store.Store
	gatewayURL string
	direct     service.UpstreamClient
	httpClient *http.Client
	logger     *slog.Logger
}

// NewService creates a companion Service. gatewayURL is the base URL of the
// proxy gateway (e.g. http://localhost:3001); direct is the upstream client
// used when the gateway is unreachable.
func NewService(st *store.Store, gatewayURL string, direct service.UpstreamClient) *Service {
	return &Service{
		store:      st,
		gatewayURL: gatewayURL,
		direct:     direct,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
	}
}

// Generate produces a reply to userMessage given the prior conversation. The
// system prompt embeds the full journal context and the configured
// personality.
func (s *Service) Generate(ctx context.Context, userMessage string, history []service.Message) (Result, error) {
	settings := s.store.Settings()
	if settings.APIKey == "" {
		return Result{}, &service.ValidationError{
			Field:   "apiKey",
			Message: "OpenAI no está configurado. Por favor configura tu API key en ajustes.",
		}
	}

	messages := make([]service.Message, 0, len(history)+2)
	messages = append(messages, service.Message{
		Role:    "system",
		Content: SystemPrompt(settings, s.store.ContextDocument()),
	})
	messages = append(messages, history...)
	messages = append(messages, service.Message{Role: "user", Content: userMessage})

	generation := service.GenerationSettings{Temperature: 0.7, MaxTokens: 1000}

	result, err := s.callGateway(ctx, settings.APIKey, messages, generation)
	if err == nil {
		s.logger.InfoContext(ctx, "companion reply generated", "path", PathGateway)
		return result, nil
	}
	var netErr *gatewayUnreachableError
	if !errors.As(err, &netErr) {
		// Application-level gateway error: no fallback.
		return Result{}, err
	}

	s.logger.WarnContext(ctx, "gateway unreachable, falling back to direct upstream", "error", netErr.cause)
	reply, usage, err := s.direct.ChatCompletion(ctx, settings.APIKey, messages, generation)
	if err != nil {
		return Result{}, err
	}
	s.logger.InfoContext(ctx, "companion reply generated", "path", PathDirect)
	return Result{Reply: reply, Usage: usage, Path: PathDirect}, nil
}

// Converse appends the user's message to the chat history, generates a reply
// with that history, and appends the reply.
func (s *Service) Converse(ctx context.Context, userMessage string) (Result, error) {
	history := make([]service.Message, 0)
	for _, msg := range s.store.ChatMessages() {
		history = append(history, service.Message{Role: msg.Role, Content: msg.Content})
	}

	s.store.AddChatMessage(store.ChatDraft{Role: "user", Content: userMessage})

	result, err := s.Generate(ctx, userMessage, history)
	if err != nil {
		return Result{}, err
	}

	s.store.AddChatMessage(store.ChatDraft{Role: "assistant", Content: result.Reply})
	return result, nil
}

// gatewayUnreachableError marks a network-level gateway failure, the only
// condition that triggers the direct fallback.
type gatewayUnreachableError struct {
	cause error
}

func (e *gatewayUnreachableError) Error() string {
	return fmt.Sprintf("gateway unreachable: %v", e.cause)
}

func (e *gatewayUnreachableError) Unwrap() error { return e.cause }

type gatewayChatRequest struct {
	Messages []service.Message          `json:"messages"`
	APIKey   string                     `json:"apiKey"`
	Settings service.GenerationSettings `json:"settings"`
}

type gatewayChatResponse struct {
	Response string        `json:"response"`
	Usage    service.Usage `json:"usage"`
	Error    string        `json:"error"`
}

func (s *Service) callGateway(ctx context.Context, apiKey string, messages []service.Message, generation service.GenerationSettings) (Result, error) {
	body, err := json.Marshal(gatewayChatRequest{
		Messages: messages,
		APIKey:   apiKey,
		Settings: generation,
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.gatewayURL+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Result{}, &gatewayUnreachableError{cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var decoded gatewayChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, mapGatewayError(resp.StatusCode, decoded.Error)
	}
	return Result{Reply: decoded.Response, Usage: decoded.Usage, Path: PathGateway}, nil
}

// mapGatewayError converts a gateway error response into the shared
// taxonomy, preserving the gateway's user-facing message.
func mapGatewayError(status int, message string) error {
	if message == "" {
		message = "Error del servidor"
	}
	switch status {
	case http.StatusBadRequest:
		return &service.ValidationError{Field: "request", Message: message}
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, message)
	case http.StatusPaymentRequired:
		return fmt.Errorf("%w: %s", service.ErrQuotaExceeded, message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", service.ErrRateLimited, message)
	default:
		return fmt.Errorf("gateway error: %s", message)
	}
}
