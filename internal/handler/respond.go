package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"pokedex-api/internal/domain"
	"pokedex-api/internal/observability"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError is the single boundary between component errors and HTTP.
// Every failure maps to exactly one status plus a short message; store
// detail is logged, never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
		message = "Parameters missing"
	case errors.Is(err, domain.ErrUsernameExists):
		status = http.StatusConflict
		message = "Username already taken"
	case errors.Is(err, domain.ErrEmailExists):
		status = http.StatusConflict
		message = "Email already taken"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusUnauthorized
		message = "Not authenticated"
	case errors.Is(err, domain.ErrUserNotFound):
		// A live session pointing at a vanished account is an auth
		// anomaly, not a 404.
		status = http.StatusUnauthorized
		message = "Not authenticated"
	default:
		status = http.StatusInternalServerError
		message = "An unknown error occurred"
		observability.FromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error())
	}

	writeJSON(w, status, errorBody{Error: message})
}

// NotFound is the JSON catch-all for unmatched routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody{Error: "Endpoint not found"})
}
