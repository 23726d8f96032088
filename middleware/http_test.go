package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aloks98/tasktracker"
	"github.com/aloks98/tasktracker/store"
)

// mockAuthenticator accepts a single token.
type mockAuthenticator struct {
	token string
	user  *store.User
	err   error
	calls int
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*store.User, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if token != m.token {
		return nil, fmt.Errorf("%w: %w", tasktracker.ErrAuthenticationFailure, tasktracker.ErrTokenInvalidSig)
	}
	return m.user, nil
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := GetUser(r.Context())
		if u == nil {
			t.Error("user should be in context")
			return
		}
		fmt.Fprint(w, u.Username)
	})
}

func TestAuthenticate(t *testing.T) {
	bob := &store.User{ID: 1, Username: "bob"}

	tests := []struct {
		name       string
		header     string
		authErr    error
		wantCode   int
		wantBody   string
		wantCalled bool
	}{
		{"valid token", "Bearer good", nil, http.StatusOK, "bob", true},
		{"lowercase scheme", "bearer good", nil, http.StatusOK, "bob", true},
		{"missing header", "", nil, http.StatusUnauthorized, "", false},
		{"wrong scheme", "Basic good", nil, http.StatusUnauthorized, "", false},
		{"bad token", "Bearer bad", nil, http.StatusUnauthorized, "", true},
		{"expired", "Bearer good", fmt.Errorf("%w: %w", tasktracker.ErrAuthenticationFailure, tasktracker.ErrTokenExpired), http.StatusUnauthorized, "", true},
		{"store down", "Bearer good", tasktracker.ErrStoreUnavailable, http.StatusInternalServerError, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuthenticator{token: "good", user: bob, err: tt.authErr}
			handler := Authenticate(auth, nil)(echoUser(t))

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if (auth.calls > 0) != tt.wantCalled {
				t.Errorf("authenticator called = %v, want %v", auth.calls > 0, tt.wantCalled)
			}
			if tt.wantCode == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Error("401 responses must carry a Bearer challenge")
			}
		})
	}
}

func TestAuthenticate_CustomConfig(t *testing.T) {
	auth := &mockAuthenticator{token: "good", user: &store.User{ID: 1, Username: "bob"}}

	var handled error
	cfg := &Config{
		TokenExtractor: ExtractFromHeader("X-Token", ""),
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			handled = err
			w.WriteHeader(http.StatusTeapot)
		},
	}
	handler := Authenticate(auth, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Token", "good")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	if rec.Code != http.StatusTeapot || !errors.Is(handled, ErrMissingToken) {
		t.Errorf("status = %d, handled = %v", rec.Code, handled)
	}

	// every wrapped path requires a token; exemptions come from route scoping
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("/healthz status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"missing token", ErrMissingToken, http.StatusUnauthorized},
		{"authentication failure", tasktracker.ErrAuthenticationFailure, http.StatusUnauthorized},
		{"wrapped unknown subject", fmt.Errorf("%w: %w", tasktracker.ErrAuthenticationFailure, tasktracker.ErrUnknownSubject), http.StatusUnauthorized},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ErrorToHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
