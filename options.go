package tasktracker

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/aloks98/tasktracker/cache"
	"github.com/aloks98/tasktracker/password"
	"github.com/aloks98/tasktracker/store"
)

// Option is a function that modifies the configuration.
type Option func(*Config)

// WithSecret sets the secret key for HMAC signing.
// The secret must be at least 32 characters long.
func WithSecret(secret string) Option {
	return func(c *Config) {
		c.Secret = secret
	}
}

// WithSigningMethod sets the JWT signing algorithm.
func WithSigningMethod(method SigningMethod) Option {
	return func(c *Config) {
		c.SigningMethod = method
	}
}

// WithAccessTokenTTL sets the access token time-to-live.
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.AccessTokenTTL = ttl
	}
}

// WithPasswordAlgorithm selects the hash used for new passwords.
func WithPasswordAlgorithm(algorithm string) Option {
	return func(c *Config) {
		c.PasswordAlgorithm = algorithm
	}
}

// WithBcryptCost sets the bcrypt cost factor.
func WithBcryptCost(cost int) Option {
	return func(c *Config) {
		c.BcryptCost = cost
	}
}

// WithAutoMigrate enables or disables automatic database migration.
func WithAutoMigrate(enabled bool) Option {
	return func(c *Config) {
		c.AutoMigrate = enabled
	}
}

// WithStore sets the data store for users and tasks.
// This is a required option.
func WithStore(s store.Store) Option {
	return func(c *Config) {
		c.store = s
	}
}

// WithPasswordHasher overrides the hasher built from PasswordAlgorithm.
func WithPasswordHasher(h password.Hasher) Option {
	return func(c *Config) {
		c.hasher = h
	}
}

// WithIdentityCache sets the cache consulted before resolving a token
// subject against the store.
func WithIdentityCache(u cache.Users) Option {
	return func(c *Config) {
		if u == nil {
			u = cache.Nop{}
		}
		c.identities = u
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithClock sets the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}
