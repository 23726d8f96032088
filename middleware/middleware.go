// Package middleware provides net/http middleware that authenticates bearer
// tokens and places the resolved user in the request context.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aloks98/tasktracker/store"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

// UserKey is the context key for storing the authenticated user.
const UserKey contextKey = "tasktracker_user"

// Outward messages for authentication responses.
const (
	DetailUnauthorized = "Could not validate credentials"
	DetailInternal     = "Internal Server Error"
)

// TokenExtractor extracts a token from an HTTP request.
type TokenExtractor func(r *http.Request) string

// ErrorHandler handles authentication errors.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds middleware configuration.
type Config struct {
	// TokenExtractor extracts the token from the request.
	// Defaults to the bearer token of the Authorization header.
	TokenExtractor TokenExtractor

	// ErrorHandler handles authentication errors.
	// Defaults to DefaultErrorHandler.
	ErrorHandler ErrorHandler
}

// DefaultConfig returns a default middleware configuration.
func DefaultConfig() *Config {
	return &Config{
		TokenExtractor: ExtractFromHeader("Authorization", "Bearer"),
		ErrorHandler:   DefaultErrorHandler,
	}
}

// ExtractFromHeader creates a TokenExtractor that extracts from a header.
// The scheme is matched case-insensitively.
func ExtractFromHeader(header, scheme string) TokenExtractor {
	return func(r *http.Request) string {
		auth := r.Header.Get(header)
		if auth == "" {
			return ""
		}

		if scheme != "" {
			prefix := scheme + " "
			if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
				return strings.TrimSpace(auth[len(prefix):])
			}
			return ""
		}

		return auth
	}
}

// DefaultErrorHandler answers 401 with a bearer challenge for every
// authentication problem, and 500 for anything else.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	code := ErrorToHTTPStatus(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteDetail(w, code, DetailUnauthorized)
		return
	}
	WriteDetail(w, code, DetailInternal)
}

// WriteDetail writes a JSON error body of the form {"detail": detail}.
func WriteDetail(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// SetUser stores the authenticated user in the context.
func SetUser(ctx context.Context, u *store.User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

// GetUser retrieves the authenticated user from the context, or nil.
func GetUser(ctx context.Context) *store.User {
	if u, ok := ctx.Value(UserKey).(*store.User); ok {
		return u
	}
	return nil
}
