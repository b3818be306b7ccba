package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ideas-para/internal/contextutil"
	"ideas-para/internal/service"
)

// ErrorResponse is the stable error shape every gateway endpoint returns.
// Details is only populated in development mode.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError maps taxonomy errors onto HTTP statuses and their
// user-facing messages. Unrecognized errors collapse to a generic 500 whose
// detail is suppressed outside development mode.
func writeServiceError(w http.ResponseWriter, ctx context.Context, err error, debug bool) {
	logger := contextutil.Logger(ctx)
	logger.ErrorContext(ctx, "request failed", "error", err)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "API key inválida. Verifica tu key en https://platform.openai.com/api-keys")
	case errors.Is(err, service.ErrQuotaExceeded):
		writeError(w, http.StatusPaymentRequired, "Cuota de OpenAI agotada. Revisa tu plan en https://platform.openai.com/usage")
	case errors.Is(err, service.ErrUpstreamRateLimited):
		writeError(w, http.StatusTooManyRequests, "Límite de rate de OpenAI excedido")
	default:
		resp := ErrorResponse{Error: "Error interno del servidor"}
		if debug {
			resp.Details = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
	}
}
