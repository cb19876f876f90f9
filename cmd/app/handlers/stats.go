package handlers

import (
	"net/http"

	"github.com/liftbook/liftbook/internal/session"
	"github.com/liftbook/liftbook/internal/stats"
)

// StatsHandler serves derived statistics over the current snapshot.
type StatsHandler struct {
	store *session.Store
}

// NewStatsHandler creates a StatsHandler over the session store.
func NewStatsHandler(store *session.Store) *StatsHandler {
	return &StatsHandler{store: store}
}

// Register mounts the stats routes on mux.
func (h *StatsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/stats", h.handleStats)
	mux.HandleFunc("/api/stats/trend", h.handleTrend)
}

// handleStats handles GET /api/stats: per-exercise personal bests plus
// the push/pull/legs balance.
func (h *StatsHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"units":     snapshot.Units,
		"exercises": stats.Summaries(snapshot),
		"balance":   stats.CategoryBalance(snapshot),
	})
}

// handleTrend handles GET /api/stats/trend?exercise=NAME: the per-date
// estimated one-rep-max series for one exercise.
func (h *StatsHandler) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise query parameter is required"})
		return
	}

	snapshot := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"exercise": exercise,
		"units":    snapshot.Units,
		"trend":    stats.E1RMTrend(snapshot, exercise),
	})
}
