package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/resume-builder-be/internal/auth"
	"github.com/isdelr/resume-builder-be/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps a service error onto a status code and a user-facing message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, services.ErrAlreadyRegistered):
		status, msg = http.StatusConflict, services.ErrAlreadyRegistered.Error()
	case errors.Is(err, services.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, services.ErrCodeMismatch):
		status, msg = http.StatusBadRequest, services.ErrCodeMismatch.Error()
	case errors.Is(err, services.ErrCodeExpired):
		status, msg = http.StatusGone, services.ErrCodeExpired.Error()
	case errors.Is(err, services.ErrNotVerified):
		status, msg = http.StatusForbidden, services.ErrNotVerified.Error()
	case errors.Is(err, services.ErrBadCredentials):
		status, msg = http.StatusUnauthorized, services.ErrBadCredentials.Error()
	case errors.Is(err, services.ErrDeliveryFailed):
		status, msg = http.StatusBadGateway, services.ErrDeliveryFailed.Error()
	case errors.Is(err, services.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUnavailable):
		status, msg = http.StatusServiceUnavailable, services.ErrUnavailable.Error()
	}

	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// currentEmail returns the account email from the auth middleware claims.
func currentEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not logged in"})
		return "", false
	}
	return claims.Email, true
}
