package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"matrimony_server/services"
)

func TestHealthCheckHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheckHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected application/json, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrNotAuthenticated, http.StatusUnauthorized},
		{services.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: no such user", services.ErrNotFound), http.StatusNotFound},
		{services.ErrAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: bad input", services.ErrValidation), http.StatusBadRequest},
		{errors.New("store unavailable"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, "do the thing", tc.err)
		if rec.Code != tc.status {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.status, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "error") {
			t.Fatalf("error %v: expected an error payload, got %q", tc.err, rec.Body.String())
		}
	}
}
