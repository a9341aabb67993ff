package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"ewintr.nl/tldw/storage"
)

type HistoryAPI struct {
	history *storage.HistoryStore
	logger  *slog.Logger
}

func NewHistoryAPI(history *storage.HistoryStore, logger *slog.Logger) *HistoryAPI {
	return &HistoryAPI{
		history: history,
		logger:  logger,
	}
}

func (h *HistoryAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodDelete:
		h.Clear(w, r)
	default:
		Error(w, http.StatusMethodNotAllowed, "method not allowed", fmt.Errorf("method %s was not registered on the history api", r.Method))
	}
}

func (h *HistoryAPI) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.history.Items())
}

// Clear empties the history. The client confirms the destructive operation
// through the confirm query parameter; anything else is a no-op.
func (h *HistoryAPI) Clear(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	cleared, err := h.history.Clear(storage.ConfirmFunc(func(string) bool {
		return confirmed
	}))
	if err != nil {
		h.logger.Error("failed to clear history", slog.String("error", err.Error()))
		Error(w, http.StatusInternalServerError, "could not clear history", err)
		return
	}
	if !cleared {
		Message(w, http.StatusOK, "history kept, confirmation missing")
		return
	}
	Message(w, http.StatusOK, "history cleared")
}
