// Package token issues and verifies signed, time-bounded bearer tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the access token lifetime used when none is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// Config holds configuration for the token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string

	// SigningMethod is the JWT signing algorithm: HS256, HS384 or HS512.
	// Defaults to HS256.
	SigningMethod string

	// AccessTokenTTL is the access token lifetime.
	AccessTokenTTL time.Duration

	// ClockSkew allows for clock differences between servers.
	ClockSkew time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Service issues and verifies access tokens. It holds no mutable state
// and is safe for concurrent use.
type Service struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	skew   time.Duration
	now    func() time.Time
}

// NewService creates a new token service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, ErrSecretRequired
	}

	method, err := signingMethod(cfg.SigningMethod)
	if err != nil {
		return nil, err
	}

	svc := &Service{
		secret: []byte(cfg.Secret),
		method: method,
		ttl:    cfg.AccessTokenTTL,
		skew:   cfg.ClockSkew,
		now:    cfg.Now,
	}
	if svc.ttl <= 0 {
		svc.ttl = DefaultAccessTokenTTL
	}
	if svc.now == nil {
		svc.now = time.Now
	}

	return svc, nil
}

func signingMethod(name string) (jwt.SigningMethod, error) {
	switch name {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, name)
	}
}

// Algorithm returns the name of the signing algorithm in use.
func (s *Service) Algorithm() string {
	return s.method.Alg()
}

// TTL returns the access token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}
