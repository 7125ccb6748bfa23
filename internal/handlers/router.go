package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"impostorparty/internal/config"
	localMiddleware "impostorparty/internal/middleware"
)

// RouterOptions allows customization of router setup for tests
type RouterOptions struct {
	DisableRateLimiting  bool
	DisableRequestLogger bool
	Metrics              *localMiddleware.Metrics
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
	r.Use(middleware.Timeout(60 * time.Second))

	// Our custom middleware
	r.Use(localMiddleware.RequestSizeLimiter(cfg.Server.MaxRequestSize))
	r.Use(localMiddleware.SecurityHeaders())

	if !opts.DisableRateLimiting {
		rateLimiter := localMiddleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)
		r.Use(rateLimiter.Middleware())
	}
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
	}
	for _, mw := range opts.CustomMiddleware {
		r.Use(mw)
	}

	// Lobby and game actions
	r.Post("/api/join", h.Join)
	r.Post("/api/leave", h.Leave)
	r.Post("/api/start", h.StartGame)
	r.Post("/api/start-vote", h.StartVote)
	r.Get("/api/start-votes", h.StartVotes)
	r.Post("/api/reveal", h.Reveal)
	r.Post("/api/rejoin", h.Rejoin)
	r.Post("/api/message", h.SendMessage)
	r.Post("/api/voting/open", h.OpenVoting)
	r.Post("/api/vote", h.CastVote)
	r.Post("/api/voting/close", h.CloseVoting)
	r.Post("/api/guess", h.GuessWord)
	r.Post("/api/return-to-lobby", h.ReturnToLobby)

	// Polling surface
	r.Get("/api/status", h.Status)
	r.Get("/api/heartbeat", h.Heartbeat)
	r.Get("/api/kicked", h.Kicked)
	r.Get("/api/leaderboard", h.Leaderboard)
	r.Get("/events", h.StreamEvents)
	r.Get("/qr.png", h.JoinQR)

	// Control surface
	r.Post("/api/control/login", h.ControlLogin)
	r.Get("/api/spicy-mode", h.WordModeGet)
	r.Post("/api/spicy-mode", h.requireControl(h.WordModeSet))
	r.Get("/api/settings", h.SettingsGet)
	r.Post("/api/settings", h.requireControl(h.SettingsSet))
	r.Post("/api/password", h.requireControl(h.ChangePassword))
	r.Post("/api/kick", h.requireControl(h.Kick))
	r.Post("/api/reset", h.requireControl(h.Reset))
	r.Get("/api/control/stats", h.requireControl(h.Stats))
	r.Post("/api/leaderboard/reset", h.requireControl(h.ResetLeaderboard))

	// Health check endpoints (no auth required)
	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
