package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the subject username and the expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue signs a token for subject that expires one TTL after issuedAt.
func (s *Service) Issue(subject string, issuedAt time.Time) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks the token against the service clock and returns its subject.
func (s *Service) Verify(tokenString string) (string, error) {
	return s.VerifyAt(tokenString, s.now())
}

// VerifyAt checks the token's signature, algorithm and expiry as of at and
// returns its subject. A token is expired once at reaches its exp claim.
func (s *Service) VerifyAt(tokenString string, at time.Time) (string, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.skew),
		jwt.WithTimeFunc(func() time.Time { return at }),
	)

	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", mapJWTError(err)
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}

// mapJWTError maps JWT library errors to our error types.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenInvalidSig
	default:
		return ErrTokenMalformed
	}
}
