package service

import (
	"context"
	"log/slog"

	"ideas-para/internal/contextutil"
)

// EmbeddingRequest is an embedding request in the domain layer.
type EmbeddingRequest struct {
	Text   string
	APIKey string
}

// EmbeddingResponse is the resulting vector plus usage accounting.
type EmbeddingResponse struct {
	Embedding []float64
	Usage     Usage
}

// EmbeddingService proxies embedding requests to the upstream provider.
type EmbeddingService interface {
	// ProcessEmbedding validates the request and forwards it upstream.
	ProcessEmbedding(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error)
}

type embeddingService struct {
	upstream UpstreamClient
	logger   *slog.Logger
}

// NewEmbeddingService creates an EmbeddingService backed by the given
// upstream provider.
func NewEmbeddingService(upstream UpstreamClient) EmbeddingService {
	return &embeddingService{
		upstream: upstream,
		logger:   slog.Default(),
	}
}

// ProcessEmbedding applies the same credential rules as chat, then requires
// non-empty text.
func (s *embeddingService) ProcessEmbedding(ctx context.Context, req EmbeddingRequest) (EmbeddingResponse, error) {
	logger := contextutil.Logger(ctx)

	if err := validateKey(req.APIKey); err != nil {
		logger.WarnContext(ctx, "rejected embedding request", "field", err.Field)
		return EmbeddingResponse{}, err
	}
	if req.Text == "" {
		logger.WarnContext(ctx, "rejected embedding request", "field", "text")
		return EmbeddingResponse{}, &ValidationError{Field: "text", Message: "Texto requerido"}
	}

	vector, usage, err := s.upstream.Embedding(ctx, req.APIKey, req.Text)
	if err != nil {
		logger.ErrorContext(ctx, "upstream embedding failed", "error", err)
		return EmbeddingResponse{}, err
	}

	logger.InfoContext(ctx, "embedding request processed",
		"text_length", len(req.Text), "dimensions", len(vector))
	return EmbeddingResponse{Embedding: vector, Usage: usage}, nil
}
