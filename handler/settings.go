package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ewintr.nl/tldw/storage"
)

type SettingsAPI struct {
	settings *storage.Settings
	logger   *slog.Logger
}

func NewSettingsAPI(settings *storage.Settings, logger *slog.Logger) *SettingsAPI {
	return &SettingsAPI{
		settings: settings,
		logger:   logger,
	}
}

type themeBody struct {
	Theme string `json:"theme"`
}

func (s *SettingsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	head, _ := ShiftPath(r.URL.Path)
	if head != "theme" {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("%q is not a known setting", head))
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, themeBody{Theme: s.settings.Theme()})
	case http.MethodPut:
		var body themeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			Error(w, http.StatusBadRequest, "invalid request body", err)
			return
		}
		if err := s.settings.SetTheme(body.Theme); err != nil {
			Error(w, http.StatusBadRequest, "could not set theme", err)
			return
		}
		Message(w, http.StatusOK, "theme updated")
	default:
		Error(w, http.StatusMethodNotAllowed, "method not allowed", fmt.Errorf("method %s was not registered on the settings api", r.Method))
	}
}
