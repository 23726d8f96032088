package tasktracker

import (
	"errors"
	"fmt"

	"github.com/aloks98/tasktracker/token"
)

// Error codes for categorizing errors.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeDuplicateIdentity      = "DUPLICATE_IDENTITY"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeAuthenticationFailure  = "AUTHENTICATION_FAILURE"
	CodeUnknownSubject         = "UNKNOWN_SUBJECT"
	CodeNotFoundOrUnauthorized = "NOT_FOUND_OR_UNAUTHORIZED"
	CodeStoreRequired          = "STORE_REQUIRED"
	CodeStoreUnavailable       = "STORE_UNAVAILABLE"
	CodeConfigInvalid          = "CONFIG_INVALID"
)

// Sentinel errors for use with errors.Is().
var (
	// Input errors
	ErrValidation = errors.New("invalid input")

	// Account errors
	ErrDuplicateIdentity  = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authentication errors. Every token or identity problem is reported
	// as ErrAuthenticationFailure wrapping the specific cause.
	ErrAuthenticationFailure = errors.New("could not validate credentials")
	ErrUnknownSubject        = errors.New("token subject does not match any user")

	// Ownership errors
	ErrNotFoundOrUnauthorized = errors.New("task not found or unauthorized")

	// Store errors
	ErrStoreRequired    = errors.New("store is required")
	ErrStoreUnavailable = errors.New("store is unavailable")

	// Config errors
	ErrConfigInvalid = errors.New("configuration is invalid")
)

// Token errors re-exported from the token package.
var (
	ErrTokenExpired    = token.ErrTokenExpired
	ErrTokenMalformed  = token.ErrTokenMalformed
	ErrTokenInvalidSig = token.ErrTokenInvalidSig
	ErrMissingSubject  = token.ErrMissingSubject
)

// AuthError is a structured error type that includes an error code and optional wrapped error.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code, message, and optional wrapped error.
func NewAuthError(code, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WrapError wraps an existing error with an AuthError.
func WrapError(code string, err error, message string) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// validationError reports malformed input caught by the core.
func validationError(message string) *AuthError {
	return NewAuthError(CodeValidation, message, ErrValidation)
}

// authenticationFailure wraps cause so that callers see only
// ErrAuthenticationFailure while errors.Is still reaches the cause.
func authenticationFailure(cause error) error {
	return fmt.Errorf("%w: %w", ErrAuthenticationFailure, cause)
}

// IsTokenError returns true if the error is a token-related error.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenInvalidSig) ||
		errors.Is(err, ErrMissingSubject)
}

// IsAuthenticationError returns true if a bearer token could not be turned
// into a user.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrAuthenticationFailure)
}

// IsValidationError returns true if the error is caused by malformed input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfigError returns true if the error is a configuration-related error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}
