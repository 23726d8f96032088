package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/aloks98/tasktracker"
	"github.com/aloks98/tasktracker/middleware"
)

// Outward error messages.
const (
	detailDuplicate    = "Username or Email already registered"
	detailInvalidLogin = "Invalid Credentials"
	detailNotFound     = "Task not found or unauthorized"
)

// writeError maps a core error to exactly one status and detail message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *tasktracker.AuthError

	switch {
	case tasktracker.IsValidationError(err):
		detail := "invalid request"
		if errors.As(err, &authErr) {
			detail = authErr.Message
		}
		writeDetail(w, http.StatusUnprocessableEntity, detail)
	case errors.Is(err, tasktracker.ErrDuplicateIdentity):
		writeDetail(w, http.StatusBadRequest, detailDuplicate)
	case errors.Is(err, tasktracker.ErrInvalidCredentials):
		writeDetail(w, http.StatusForbidden, detailInvalidLogin)
	case tasktracker.IsAuthenticationError(err):
		middleware.DefaultErrorHandler(w, r, err)
	case errors.Is(err, tasktracker.ErrNotFoundOrUnauthorized):
		writeDetail(w, http.StatusNotFound, detailNotFound)
	default:
		logFor(r).Error().Err(err).Msg("request failed")
		writeDetail(w, http.StatusInternalServerError, middleware.DetailInternal)
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	middleware.WriteDetail(w, code, detail)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func logFor(r *http.Request) *zerolog.Logger {
	return hlog.FromRequest(r)
}
