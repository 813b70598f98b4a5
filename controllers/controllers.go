package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"matrimony_server/services"
)

// userIDHeader carries the acting identity, set by the fronting auth proxy.
// Operations invoked without an identity fail closed here rather than
// writing with a null actor.
const userIDHeader = "X-User-ID"

func currentUserID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the service sentinels to HTTP statuses. Every
// failure names the attempted action; store failures get the generic
// try-again remediation and no automatic retry.
func writeServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "You must be signed in to "+action+".")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "You are not allowed to "+action+".")
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "Could not "+action+": "+err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "Could not "+action+": already exists.")
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, "Could not "+action+": "+err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "Failed to "+action+". Please try again.")
	}
}

// HealthCheckHandler provides a basic health check
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
