// Package handlers exposes the gateway's HTTP surface: chat completions,
// embeddings and the health check.
package handlers

import (
	"encoding/json"
	"net/http"

	"ideas-para/internal/contextutil"
	"ideas-para/internal/service"
)

// ChatHandler handles POST /api/chat.
type ChatHandler struct {
	chatService service.ChatService
	debug       bool
}

// NewChatHandler creates a ChatHandler. When debug is true, internal error
// details are included in responses.
func NewChatHandler(chatService service.ChatService, debug bool) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		debug:       debug,
	}
}

// ChatRequest is the HTTP request payload for chat.
type ChatRequest struct {
	Messages []service.Message          `json:"messages"`
	APIKey   string                     `json:"apiKey"`
	Settings service.GenerationSettings `json:"settings"`
}

// ChatResponse is the HTTP response payload for chat.
type ChatResponse struct {
	Response string        `json:"response"`
	Usage    service.Usage `json:"usage"`
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.Logger(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	svcResp, err := h.chatService.ProcessChat(ctx, service.ChatRequest{
		Messages: req.Messages,
		APIKey:   req.APIKey,
		Settings: req.Settings,
	})
	if err != nil {
		writeServiceError(w, ctx, err, h.debug)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Response: svcResp.Response,
		Usage:    svcResp.Usage,
	})
}
