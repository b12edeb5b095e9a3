package api

import (
	"net/http"
	"time"

	"github.com/saitheninja/svampire-svurvivors/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RoundView is what the router reads from the running engine.
// Keep this minimal; *game.Engine satisfies it.
type RoundView interface {
	// Snapshot returns the latest immutable snapshot, nil before the first tick
	Snapshot() *game.RoundSnapshot
	// Inspect runs fn with exclusive access to the round
	Inspect(fn func(*game.GameRound))
}

// EventStats reports event log health. *game.EventLog satisfies it.
type EventStats interface {
	Stats() game.EventLogStats
}

// RouterConfig contains all dependencies needed to construct the debug router.
//
// Example usage in tests:
//
//	router := api.NewRouter(api.RouterConfig{
//	    Round:          fakeRound,
//	    DisableLogging: true,
//	})
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Round is the engine being observed (required)
	Round RoundView

	// Events is the optional event log whose counters /api/stats reports
	Events EventStats

	// RateLimiter is an optional pre-configured limiter owned by the caller,
	// who stops it on shutdown. If nil, NewRouter creates one from
	// RateLimitConfig that lives as long as the process.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is only used if RateLimiter is nil.
	RateLimitConfig *RateLimitConfig

	// CORSOrigins lists origins allowed to read the JSON endpoints.
	// If nil, loopback origins on any port are allowed.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware.
	DisableLogging bool
}

type routerHandlers struct {
	round  RoundView
	events EventStats
	limit  *IPRateLimiter
}

// NewRouter constructs the ops router: health, metrics, pprof and
// read-only JSON views of the round.
//
// NewRouter starts no goroutines beyond the limiter's cleanup loop and opens
// no listeners, so it is safe under httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(timing)

	limiter := cfg.RateLimiter
	if limiter == nil {
		rlCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rlCfg = *cfg.RateLimitConfig
		}
		limiter = NewIPRateLimiter(rlCfg)
	}

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	corsMW := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	h := &routerHandlers{round: cfg.Round, events: cfg.Events, limit: limiter}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/debug", middleware.Profiler())

	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(corsMW)

		r.Get("/round", h.handleGetRound)
		r.Get("/stats", h.handleGetStats)
		r.Get("/kills", h.handleGetKills)
		r.Get("/logs/{kind}", h.handleGetLogs)
	})

	return r
}

// timing records request latency by route pattern.
func timing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		pattern := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		RecordRequest(r.Method, pattern, time.Since(start))
	})
}
