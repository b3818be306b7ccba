// Package http wires the gateway's router: chi, request-scoped logging,
// panic recovery, the CORS allow-list and the per-client rate limit.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ideas-para/internal/handlers"
	"ideas-para/internal/ratelimit"
	"ideas-para/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	ChatService      service.ChatService
	EmbeddingService service.EmbeddingService
	Limiter          *ratelimit.Limiter
	AllowedOrigins   []string
	Debug            bool
}

// NewRouter creates the gateway router. The rate limit applies to the /api
// routes only; the health check stays unmetered.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(CORS(deps.AllowedOrigins))

	chatHandler := handlers.NewChatHandler(deps.ChatService, deps.Debug)
	embeddingsHandler := handlers.NewEmbeddingsHandler(deps.EmbeddingService, deps.Debug)

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimit(deps.Limiter))
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodPost, "/embeddings", embeddingsHandler)
	})

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler())

	return r
}
