// Package httputil centralizes JSON response envelopes so handlers stay
// consistent about status codes and error shapes.
package httputil

import (
	"encoding/json"
	"net/http"
)

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError emits the standard error envelope. Internal errors omit the
// description so storage details never leak to clients.
func WriteError(w http.ResponseWriter, status int, code, description string) {
	body := map[string]string{"error": code}
	if description != "" && status < http.StatusInternalServerError {
		body["error_description"] = description
	}
	WriteJSON(w, status, body)
}

// Decode reads a JSON request body into T, reporting a bad_request envelope
// on malformed input.
func Decode[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "malformed JSON body")
		return v, false
	}
	return v, true
}
