package handlers

import (
	"encoding/json"
	"net/http"

	"ideas-para/internal/contextutil"
	"ideas-para/internal/service"
)

// EmbeddingsHandler handles POST /api/embeddings.
type EmbeddingsHandler struct {
	embeddingService service.EmbeddingService
	debug            bool
}

// NewEmbeddingsHandler creates an EmbeddingsHandler.
func NewEmbeddingsHandler(embeddingService service.EmbeddingService, debug bool) *EmbeddingsHandler {
	return &EmbeddingsHandler{
		embeddingService: embeddingService,
		debug:            debug,
	}
}

// EmbeddingsRequest is the HTTP request payload for embeddings.
type EmbeddingsRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"apiKey"`
}

// EmbeddingsResponse is the HTTP response payload for embeddings.
type EmbeddingsResponse struct {
	Embedding []float64     `json:"embedding"`
	Usage     service.Usage `json:"usage"`
}

func (h *EmbeddingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.Logger(ctx)

	var req EmbeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	svcResp, err := h.embeddingService.ProcessEmbedding(ctx, service.EmbeddingRequest{
		Text:   req.Text,
		APIKey: req.APIKey,
	})
	if err != nil {
		writeServiceError(w, ctx, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, EmbeddingsResponse{
		Embedding: svcResp.Embedding,
		Usage:     svcResp.Usage,
	})
}
