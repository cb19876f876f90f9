package handlers

import (
	"context"
	"net/http"
	"time"

	syncpkg "github.com/liftbook/liftbook/internal/sync"
)

// SyncController is the slice of the orchestrator the API needs.
// A nil controller means the session runs purely offline.
type SyncController interface {
	Status() syncpkg.Status
	LastSync() *time.Time
	LastError() error
	CycleCount() int
	RunCycle(ctx context.Context)
}

// SyncHandler exposes sync status and a manual cycle trigger.
type SyncHandler struct {
	ctrl SyncController
}

// NewSyncHandler creates a SyncHandler. ctrl may be nil when sync is
// not configured.
func NewSyncHandler(ctrl SyncController) *SyncHandler {
	return &SyncHandler{ctrl: ctrl}
}

// Register mounts the sync routes on mux.
func (h *SyncHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/sync/status", h.handleStatus)
	mux.HandleFunc("/api/sync/now", h.handleNow)
}

// handleStatus handles GET /api/sync/status.
func (h *SyncHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	if h.ctrl == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
		return
	}

	payload := map[string]interface{}{
		"configured": true,
		"status":     h.ctrl.Status(),
		"cycles":     h.ctrl.CycleCount(),
	}
	if last := h.ctrl.LastSync(); last != nil {
		payload["last_sync"] = last.UTC().Format(time.RFC3339)
	}
	if err := h.ctrl.LastError(); err != nil {
		payload["last_error"] = err.Error()
	}
	writeJSON(w, http.StatusOK, payload)
}

// handleNow handles POST /api/sync/now: run one cycle outside the
// timer. The response reports only that the cycle ran; per the
// offline-first contract a failed cycle is not an API error.
func (h *SyncHandler) handleNow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if h.ctrl == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
		return
	}

	h.ctrl.RunCycle(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"configured": true,
		"status":     h.ctrl.Status(),
	})
}
