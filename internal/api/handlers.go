package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/saitheninja/svampire-svurvivors/internal/game"

	"github.com/go-chi/chi/v5"
)

// maxLogEntries caps a /api/logs response.
const maxLogEntries = 500

func (h *routerHandlers) handleGetRound(w http.ResponseWriter, r *http.Request) {
	snap := h.round.Snapshot()
	if snap == nil {
		writeError(w, "round has not ticked yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	var resp struct {
		Outcome  string              `json:"outcome"`
		Timer    game.BoundedRange   `json:"timer"`
		Progress game.Progress       `json:"progress"`
		Stats    game.Stats          `json:"stats"`
		Enemies  int                 `json:"enemies"`
		Waves    int                 `json:"wavesRemaining"`
		Events   *game.EventLogStats `json:"events,omitempty"`
		Limiter  map[string]uint64   `json:"rateLimiter"`
	}

	h.round.Inspect(func(round *game.GameRound) {
		resp.Outcome = round.Outcome().String()
		resp.Timer = round.Timer
		resp.Progress = round.Progress
		resp.Stats = round.Stats
		resp.Enemies = len(round.Enemies)
		resp.Waves = round.WavesRemaining()
	})
	if h.events != nil {
		st := h.events.Stats()
		resp.Events = &st
	}
	resp.Limiter = h.limit.Stats()

	writeJSON(w, resp)
}

func (h *routerHandlers) handleGetKills(w http.ResponseWriter, r *http.Request) {
	var tally game.KillTally
	h.round.Inspect(func(round *game.GameRound) {
		tally = game.TallyKills(round.Logs.EnemiesKilled)
	})
	writeJSON(w, tally)
}

// handleGetLogs returns the newest entries of one round log.
// ?limit=N trims to the last N (default and cap: maxLogEntries).
func (h *routerHandlers) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	limit := maxLogEntries
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLogEntries)
	}

	kind := chi.URLParam(r, "kind")
	var out any
	found := true
	h.round.Inspect(func(round *game.GameRound) {
		switch kind {
		case "spawns":
			out = tail(round.Logs.Spawns, limit)
		case "kills":
			out = tail(round.Logs.EnemiesKilled, limit)
		case "pickups":
			out = tail(round.Logs.Pickups, limit)
		case "levelups":
			out = tail(round.Logs.LevelUps, limit)
		default:
			found = false
		}
	})
	if !found {
		writeError(w, "unknown log "+strconv.Quote(kind), http.StatusNotFound)
		return
	}
	writeJSON(w, out)
}

// tail copies the last n entries so the response never aliases round state.
func tail[T any](s []T, n int) []T {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return append(make([]T, 0, len(s)), s...)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("⚠️ JSON encode failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
