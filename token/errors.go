package token

import "errors"

// Token-related errors.
var (
	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenMalformed indicates the token could not be decoded.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenInvalidSig indicates a bad signature or an unexpected algorithm.
	ErrTokenInvalidSig = errors.New("token signature is invalid")

	// ErrMissingSubject indicates the token carries no subject claim.
	ErrMissingSubject = errors.New("token has no subject")

	// ErrSecretRequired indicates no signing secret was configured.
	ErrSecretRequired = errors.New("token signing secret is required")

	// ErrUnsupportedAlgorithm indicates a signing method outside the HMAC family.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing method")
)
