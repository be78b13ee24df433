package server

import (
	"encoding/json"
	"net/http"

	"github.com/omargad/userhub/internal/logger"
)

// writeSuccess writes the success envelope with any extra payload fields.
func writeSuccess(w http.ResponseWriter, statusCode int, data map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the failure envelope.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}

// serverError logs the underlying failure and answers with a generic 500;
// details never reach the caller.
func serverError(w http.ResponseWriter, what string, err error) {
	logger.Error("%s: %v", what, err)
	writeError(w, http.StatusInternalServerError, "Server error")
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
