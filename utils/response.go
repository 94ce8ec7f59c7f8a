package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]interface{}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondSuccess wraps data in the conventional {success, data, message}
// envelope.
func RespondSuccess(w http.ResponseWriter, code int, data interface{}, message string) {
	resp := M{"success": true}
	if data != nil {
		resp["data"] = data
	}
	if message != "" {
		resp["message"] = message
	}
	RespondWithJSON(w, code, resp)
}
