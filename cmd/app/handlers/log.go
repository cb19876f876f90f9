package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	apperrors "github.com/liftbook/liftbook/internal/errors"
	"github.com/liftbook/liftbook/internal/models"
	"github.com/liftbook/liftbook/internal/session"
)

// LogHandler serves the workout log itself: listing, adding and
// deleting entries and changing the display unit.
type LogHandler struct {
	store *session.Store
}

// NewLogHandler creates a LogHandler over the session store.
func NewLogHandler(store *session.Store) *LogHandler {
	return &LogHandler{store: store}
}

// Register mounts the log routes on mux.
func (h *LogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/log", h.handleLog)
	mux.HandleFunc("/api/entries", h.handleEntries)
	mux.HandleFunc("/api/entries/", h.handleEntryByID)
	mux.HandleFunc("/api/units", h.handleUnits)
}

// handleLog handles GET /api/log: the full snapshot, entries sorted by
// date for display.
func (h *LogHandler) handleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	snapshot := h.store.Snapshot()
	sort.SliceStable(snapshot.Sets, func(i, j int) bool {
		return snapshot.Sets[i].Date < snapshot.Sets[j].Date
	})
	writeJSON(w, http.StatusOK, snapshot)
}

// handleEntries handles POST /api/entries: validate and append one
// logged set. The id is assigned server-side.
func (h *LogHandler) handleEntries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var entry models.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrInvalid, "invalid entry payload", err))
		return
	}
	// Ids are assigned at creation, never taken from the client.
	entry.ID = ""

	created, err := h.store.AddEntry(entry)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleEntryByID handles DELETE /api/entries/{id}. The delete is
// local-only: without tombstones it does not propagate through sync.
func (h *LogHandler) handleEntryByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/entries/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrInvalid, "missing entry id"))
		return
	}

	if err := h.store.DeleteEntry(id); err != nil {
		status := http.StatusInternalServerError
		if apperrors.Is(err, apperrors.ErrEntryNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleUnits handles PUT /api/units: switch the display unit label.
// Stored weights are not converted.
func (h *LogHandler) handleUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}

	var payload struct {
		Units models.Units `json:"units"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrInvalid, "invalid units payload", err))
		return
	}

	if err := h.store.SetUnits(payload.Units); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"units": string(payload.Units)})
}
