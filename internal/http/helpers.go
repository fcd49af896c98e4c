package http

import (
	"encoding/json"
	"net/http"

	"expensetracker/internal/core"
)

// errorResponse is the uniform failure shape: always a status flag and a
// human-readable message, with field detail only for validation problems.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Fields  []core.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Status: "error", Message: message})
}
