// Package response writes JSON bodies and the {"errors": [...]} envelope.
package response

import (
	"encoding/json"
	"net/http"
)

// Errors is the body of every non-2xx JSON response.
type Errors struct {
	Errors []string `json:"errors"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope with the given messages.
func Error(w http.ResponseWriter, status int, messages ...string) {
	if messages == nil {
		messages = []string{}
	}
	JSON(w, status, Errors{Errors: messages})
}
