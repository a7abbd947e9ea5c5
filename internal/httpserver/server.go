// internal/httpserver/server.go
//
// HTTP server wiring for the FootyFeud backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/players/search".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess, GET /game/{id}, GET /stats/me.
//   - Daily endpoints (optional auth): mounted under /daily.
//   - Auth endpoints: /auth/*.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the user when a valid token is present;
//     guests are keyed by an anonymous cookie id.
//   - Errors are JSON objects {"error": "<code>"}.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/trongtricoder/Footy-Feud/internal/auth"
	"github.com/trongtricoder/Footy-Feud/internal/play"
)

type Options struct {
	ClientOrigin string
	CookieName   string
	Secure       bool          // NODE_ENV=production: Secure + SameSite=None cookies
	Timeout      time.Duration // per-request handler bound
}

// Server bundles the router with the services it exposes.
type Server struct {
	r    *chi.Mux
	play *play.Service
	auth *auth.Service
	opts Options
	log  zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(p *play.Service, a *auth.Service, opts Options, logger zerolog.Logger) *Server {
	if opts.CookieName == "" {
		opts.CookieName = "footyfeud_token"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	s := &Server{
		r:    chi.NewRouter(),
		play: p,
		auth: a,
		opts: opts,
		log:  logger.With().Str("component", "http").Logger(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)               // add X-Request-ID
	s.r.Use(chimw.RealIP)                  // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(s.accessLog)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)               // recover from panics
	s.r.Use(chimw.Timeout(s.opts.Timeout)) // bound handler time
	s.r.Use(jsonContentType)               // default JSON responses
	s.r.Use(s.cors)                        // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "footyfeud",
			"endpoints": []string{
				"/health", "/players/search", "POST /game/new", "POST /game/guess",
				"GET /game/{id}", "/stats/me", "/daily/leaderboard", "/auth/*",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "players": s.play.Roster().Len()})
	})
	s.r.Get("/players/search", s.handleSearch)

	// Game endpoints: optional auth (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		s.mountGame(r)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then drains in-flight
// requests for up to five seconds.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
