package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"influence/internal/config"
	localMiddleware "influence/internal/middleware"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	CustomMiddleware     []func(http.Handler) http.Handler
}

// SetupRouter creates the application router with all routes and middleware
func SetupRouter(h *Handler, cfg *config.ServerConfig, opts *RouterOptions) *chi.Mux {
	if opts == nil {
		opts = &RouterOptions{}
	}

	r := chi.NewRouter()

	// Chi's built-in middleware (conditionally applied)
	if !opts.DisableRequestLogger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Our custom middleware
	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	// Rate limiting (conditionally applied)
	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}

	// Apply custom middleware if provided
	for _, mw := range opts.CustomMiddleware {
		r.Use(mw)
	}

	// JSON API; SSE streams get their own timeout below
	r.Group(func(r chi.Router) {
		if cfg.Server.RequestTimeout > 0 {
			r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		}

		r.Get("/tables", h.ListTables)
		r.Post("/tables", h.CreateTable)
		r.Route("/tables/{code}", func(r chi.Router) {
			r.Get("/", h.GetTable)
			r.Delete("/", h.DeleteTable)
			r.Get("/events", h.Events)

			// Lobby
			r.Post("/players", h.AddPlayer)
			r.Post("/start", h.StartGame)
			r.Post("/reset", h.ResetGame)

			// Turn commands
			r.Post("/actions", h.InitiateAction)
			r.Post("/target", h.SelectTarget)
			r.Post("/block", h.BlockAction)
			r.Post("/challenge", h.ChallengeAction)
			r.Post("/reveal", h.LoseInfluence)
			r.Post("/exchange", h.CompleteExchange)
			r.Post("/complete", h.CompleteAction)
		})
	})

	// SSE routes with validation middleware
	r.Group(func(r chi.Router) {
		if cfg.Server.SSETimeout > 0 {
			r.Use(middleware.Timeout(cfg.Server.SSETimeout))
		}
		r.Use(localMiddleware.NewConnectionLimiter(cfg.Server.MaxSSEConnections).Middleware())
		r.Get("/sse/tables/{code}", ValidateSSERequest(h.StreamTable))
	})

	// Health check endpoints (no auth required)
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if h.store == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Store not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
