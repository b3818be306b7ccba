// Package openai is a client for the upstream chat-completion and embedding
// API. Upstream failures are normalized into the shared service error
// taxonomy so both the gateway and the direct client path surface the same
// kinds.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ideas-para/internal/service"
)

// DefaultBaseURL is the upstream provider endpoint.
const DefaultBaseURL = "https://api.openai.com"

const (
	chatModel      = "gpt-4o-mini"
	embeddingModel = "text-embedding-3-small"

	defaultTemperature = 0.7
	defaultMaxTokens   = 1000

	// Upstream calls are bounded; expiry surfaces as an internal error.
	requestTimeout = 30 * time.Second
)

// Client talks to an OpenAI-compatible API. The credential is supplied per
// request by the caller, not held by the client.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type chatRequest struct {
	Model       string            `json:"model"`
	Messages    []service.Message `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage service.Usage `json:"usage"`
}

// ChatCompletion generates a reply for the message list. Settings left at
// their zero value fall back to temperature 0.7 and 1000 output tokens.
func (c *Client) ChatCompletion(ctx context.Context, apiKey string, messages []service.Message, settings service.GenerationSettings) (string, service.Usage, error) {
	temperature := settings.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := settings.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	payload := chatRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var resp chatResponse
	if err := c.post(ctx, "/v1/chat/completions", apiKey, payload, &resp); err != nil {
		return "", service.Usage{}, err
	}
	if len(resp.Choices) == 0 {
		return "", service.Usage{}, fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, resp.Usage, nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Usage service.Usage `json:"usage"`
}

// Embedding returns the embedding vector for the given text.
func (c *Client) Embedding(ctx context.Context, apiKey, text string) ([]float64, service.Usage, error) {
	payload := embeddingRequest{
		Model: embeddingModel,
		Input: text,
	}

	var resp embeddingResponse
	if err := c.post(ctx, "/v1/embeddings", apiKey, payload, &resp); err != nil {
		return nil, service.Usage{}, err
	}
	if len(resp.Data) == 0 {
		return nil, service.Usage{}, fmt.Errorf("no embeddings returned")
	}
	return resp.Data[0].Embedding, resp.Usage, nil
}

// post sends a JSON request and decodes the response, normalizing non-200
// statuses into the shared taxonomy.
func (c *Client) post(ctx context.Context, path, apiKey string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return normalizeError(resp.StatusCode, raw)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// normalizeError maps an upstream failure into the shared taxonomy: invalid
// credentials and any other 401 become Unauthorized, exhausted quota becomes
// QuotaExceeded, provider rate limits become UpstreamRateLimited, and
// everything else stays an opaque internal error.
func normalizeError(status int, body []byte) error {
	var apiErr errorResponse
	_ = json.Unmarshal(body, &apiErr)

	switch apiErr.Error.Code {
	case "invalid_api_key":
		return fmt.Errorf("%w: %s", service.ErrUnauthorized, apiErr.Error.Message)
	case "insufficient_quota":
		return fmt.Errorf("%w: %s", service.ErrQuotaExceeded, apiErr.Error.Message)
	case "rate_limit_exceeded":
		return fmt.Errorf("%w: %s", service.ErrUpstreamRateLimited, apiErr.Error.Message)
	}
	if status == http.StatusUnauthorized {
		return fmt.Errorf("%w: bad status %d", service.ErrUnauthorized, status)
	}
	return fmt.Errorf("bad status %d: %s", status, string(body))
}
