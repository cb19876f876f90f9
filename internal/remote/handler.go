package remote

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/models"
)

// Handler serves the two-operation sync endpoint over a BlobStore.
//
// GET /sync returns the stored snapshot, or the default empty one when
// the slot has never been written. POST /sync overwrites the slot
// unconditionally: no versioning, no conditional headers, last writer
// wins at this layer.
type Handler struct {
	store BlobStore
}

// NewHandler creates a sync endpoint handler over the given store.
func NewHandler(store BlobStore) *Handler {
	return &Handler{store: store}
}

// Register mounts the handler's routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/sync", h.handleSync)
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPost:
		h.handlePost(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Read(r.Context(), SlotKey)
	if errors.Is(err, os.ErrNotExist) {
		// Never written: serve the default empty snapshot so clients
		// need no special empty-slot handling.
		empty, _ := models.NewLogStore().Marshal()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(empty)
		return
	}
	if err != nil {
		logging.Error("slot read failed", err, logging.Fields{"slot": SlotKey})
		writeError(w, http.StatusInternalServerError, "failed to read snapshot")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}

	// Decode once to reject payloads that are not a log store; the
	// canonical client bytes are what get stored.
	if _, err := models.UnmarshalLogStore(body); err != nil {
		writeError(w, http.StatusBadRequest, "body is not a log store snapshot")
		return
	}

	if err := h.store.Write(r.Context(), SlotKey, body); err != nil {
		logging.Error("slot write failed", err, logging.Fields{"slot": SlotKey})
		writeError(w, http.StatusInternalServerError, "failed to store snapshot")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// writeError writes the structured error payload used by the endpoint.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
