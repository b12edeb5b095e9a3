package api

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/saitheninja/svampire-svurvivors/internal/game"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality: labels are enum-like values only.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "round_tick_duration_seconds",
		Help:    "Time spent in one round tick, including movement and snapshot",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025},
	})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "render_frame_duration_seconds",
		Help:    "Time spent rendering and encoding a frame",
		Buckets: []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.25},
	})

	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_ticks_total",
		Help: "Ticks simulated",
	})

	killsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_kills_total",
		Help: "Enemies killed",
	})

	enemiesSpawnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_enemies_spawned_total",
		Help: "Enemies released by waves",
	})

	playerHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_player_hits_total",
		Help: "Hits landed on the player",
	})

	pickupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_pickups_collected_total",
		Help: "Pickups collected by the player",
	})

	enemiesAlive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "round_enemies_alive",
		Help: "Enemies currently on the roster",
	})

	pickupsOnGround = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "round_pickups_on_ground",
		Help: "Pickups waiting to be collected",
	})

	playerHealth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "round_player_health",
		Help: "Player current health",
	})

	diagnosticsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "round_diagnostics_total",
		Help: "Non-fatal problems reported by the simulation",
	})

	roundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rounds_finished_total",
		Help: "Rounds that reached game over",
	}, []string{"outcome"}) // Bounded: "won", "lost"

	eventLogTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_log_total",
		Help: "Total events logged",
	})

	eventLogDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "event_log_dropped_total",
		Help: "Events dropped due to rate limiting or buffer full",
	})

	requestRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_rejected_total",
		Help: "Requests rejected before reaching a handler",
	}, []string{"reason"}) // Bounded: "rate_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"}) // endpoint is the route pattern, not the URL
)

// counterSync turns monotonically increasing totals into counter deltas.
// Prometheus counters cannot be Set, so the last seen value is kept.
type counterSync struct {
	mu          sync.Mutex
	diagnostics int
	evTotal     uint64
	evDropped   uint64
}

var synced counterSync

// RecordTick folds one engine tick into the metrics.
func RecordTick(st game.TickStats) {
	tickDuration.Observe(st.Duration.Seconds())
	ticksTotal.Inc()
	killsTotal.Add(float64(st.Result.Kills))
	enemiesSpawnedTotal.Add(float64(st.Released))
	if st.Result.PlayerHit {
		playerHitsTotal.Inc()
	}
	pickupsTotal.Add(float64(st.Result.Collected))
	enemiesAlive.Set(float64(st.Enemies))
	pickupsOnGround.Set(float64(st.Pickups))
	playerHealth.Set(st.PlayerHP)
}

// UpdateDiagnostics advances the diagnostics counter to the round's total.
func UpdateDiagnostics(total int) {
	synced.mu.Lock()
	defer synced.mu.Unlock()
	if total > synced.diagnostics {
		diagnosticsTotal.Add(float64(total - synced.diagnostics))
		synced.diagnostics = total
	}
}

// RecordRoundOver counts a finished round by outcome.
func RecordRoundOver(outcome game.Outcome) {
	roundsFinished.WithLabelValues(outcome.String()).Inc()
}

// RecordRender records render timing.
func RecordRender(duration time.Duration) {
	renderDuration.Observe(duration.Seconds())
}

// UpdateEventLogStats advances the event log counters to the log's totals.
// Called periodically from the tick hook.
func UpdateEventLogStats(stats game.EventLogStats) {
	synced.mu.Lock()
	defer synced.mu.Unlock()
	if stats.Total > synced.evTotal {
		eventLogTotal.Add(float64(stats.Total - synced.evTotal))
		synced.evTotal = stats.Total
	}
	if stats.Dropped > synced.evDropped {
		eventLogDropped.Add(float64(stats.Dropped - synced.evDropped))
		synced.evDropped = stats.Dropped
	}
}

// RecordRequestRejected increments the rejection counter.
func RecordRequestRejected(reason string) {
	requestRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request latency.
func RecordRequest(method, endpoint string, duration time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// ObservabilityConfig configures the debug server.
type ObservabilityConfig struct {
	ListenAddr      string // Empty disables the server
	AllowExternal   bool   // Permit binding beyond loopback
	ShutdownTimeout time.Duration
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		ListenAddr:      "127.0.0.1:6060", // Localhost only
		ShutdownTimeout: 5 * time.Second,
	}
}

// StartDebugServer serves handler until ctx is cancelled. It returns once
// the listener is shut down; run it in its own goroutine.
func StartDebugServer(ctx context.Context, cfg ObservabilityConfig, handler http.Handler) error {
	if cfg.ListenAddr == "" {
		log.Println("📊 Debug server disabled")
		return nil
	}
	if !cfg.AllowExternal && !isLoopback(cfg.ListenAddr) {
		log.Printf("⚠️ Debug server forced to localhost for security (was %s)", cfg.ListenAddr)
		cfg.ListenAddr = DefaultObservabilityConfig().ListenAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultObservabilityConfig().ShutdownTimeout
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("📊 Debug server starting on %s", cfg.ListenAddr)
		log.Printf("   - pprof:   http://%s/debug/pprof/", cfg.ListenAddr)
		log.Printf("   - metrics: http://%s/metrics", cfg.ListenAddr)
		log.Printf("   - round:   http://%s/api/round", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("📊 Debug server stopped")
	return nil
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
