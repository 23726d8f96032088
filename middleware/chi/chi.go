// Package chi provides Chi helpers for tasktracker authentication.
// Chi uses standard net/http middleware, so this package provides
// aliases and helpers for convenience.
package chi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aloks98/tasktracker/middleware"
	"github.com/aloks98/tasktracker/store"
)

// Config is an alias for middleware.Config.
type Config = middleware.Config

// Authenticator is an alias for middleware.Authenticator.
type Authenticator = middleware.Authenticator

// DefaultConfig returns a default middleware configuration.
func DefaultConfig() *Config {
	return middleware.DefaultConfig()
}

// Authenticate creates a Chi middleware that authenticates bearer tokens.
func Authenticate(auth Authenticator, cfg *Config) func(http.Handler) http.Handler {
	return middleware.Authenticate(auth, cfg)
}

// User retrieves the authenticated user from the request context.
func User(r *http.Request) *store.User {
	return middleware.GetUser(r.Context())
}

// URLParam returns a URL parameter from Chi's route context.
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// URLParamInt64 parses a URL parameter as a base-10 int64.
func URLParamInt64(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}
