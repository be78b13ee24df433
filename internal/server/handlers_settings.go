package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) handleListSettings(w http.ResponseWriter, r *http.Request) {
	settings := make(map[string]string)
	for _, s := range a.store.Settings() {
		settings[s.Key] = s.Value
	}
	writeSuccess(w, http.StatusOK, map[string]any{"settings": settings})
}

func (a *App) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := a.store.Setting(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Setting not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"setting": setting})
}

func (a *App) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value *string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Value == nil {
		writeError(w, http.StatusBadRequest, "Value is required")
		return
	}
	if err := a.store.SetSetting(chi.URLParam(r, "key"), *req.Value); err != nil {
		serverError(w, "updating setting", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "Setting updated successfully"})
}

func (a *App) handleBulkSetSettings(w http.ResponseWriter, r *http.Request) {
	var settings map[string]string
	if err := decodeJSON(r, &settings); err != nil || settings == nil {
		writeError(w, http.StatusBadRequest, "Settings object is required")
		return
	}
	for key, value := range settings {
		if err := a.store.SetSetting(key, value); err != nil {
			serverError(w, "updating settings", err)
			return
		}
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "Settings updated successfully"})
}
