package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/aloks98/tasktracker"
	"github.com/aloks98/tasktracker/internal/logutil"
	"github.com/aloks98/tasktracker/store"
)

// Authenticator turns a bearer token into a user.
// *tasktracker.Service satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*store.User, error)
}

// ErrMissingToken is passed to the ErrorHandler when the request carries no token.
var ErrMissingToken = errors.New("missing authentication token")

// ErrorToHTTPStatus converts an authentication error to an HTTP status code.
// A missing token and every token or identity failure are 401; anything
// else, such as an unreachable store, is 500.
func ErrorToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrMissingToken), tasktracker.IsAuthenticationError(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Authenticate creates a middleware that resolves the request's bearer token
// to a user. Requests without a usable token never reach next.
func Authenticate(auth Authenticator, cfg *Config) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	extract := cfg.TokenExtractor
	if extract == nil {
		extract = ExtractFromHeader("Authorization", "Bearer")
	}
	onError := cfg.ErrorHandler
	if onError == nil {
		onError = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extract(r)
			if token == "" {
				onError(w, r, ErrMissingToken)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if ErrorToHTTPStatus(err) == http.StatusInternalServerError {
					log := logutil.GetOrDefault(r.Context())
					log.Error().Err(err).Msg("authentication failed")
				}
				onError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUser(r.Context(), user)))
		})
	}
}
