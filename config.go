package tasktracker

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aloks98/tasktracker/cache"
	"github.com/aloks98/tasktracker/password"
	"github.com/aloks98/tasktracker/store"
)

// SigningMethod represents the JWT signing algorithm.
type SigningMethod string

const (
	// SigningMethodHS256 uses HMAC-SHA256 for signing.
	SigningMethodHS256 SigningMethod = "HS256"

	// SigningMethodHS384 uses HMAC-SHA384 for signing.
	SigningMethodHS384 SigningMethod = "HS384"

	// SigningMethodHS512 uses HMAC-SHA512 for signing.
	SigningMethodHS512 SigningMethod = "HS512"
)

// Default configuration values.
const (
	DefaultAccessTokenTTL    = 30 * time.Minute
	DefaultPasswordAlgorithm = password.AlgorithmBcrypt
	DefaultBcryptCost        = 12

	// MinSecretLength is the minimum required length for the secret key.
	MinSecretLength = 32
)

// Config holds all configuration for the Service. It is fixed once New
// returns.
type Config struct {
	// Secret is the key used for signing tokens.
	Secret string

	// SigningMethod is the JWT signing algorithm to use.
	SigningMethod SigningMethod

	// AccessTokenTTL is how long access tokens are valid.
	AccessTokenTTL time.Duration

	// PasswordAlgorithm selects the hash for new passwords: bcrypt or argon2id.
	// Hashes of the other algorithm still verify and are upgraded on login.
	PasswordAlgorithm string

	// BcryptCost is the bcrypt cost factor.
	BcryptCost int

	// AutoMigrate enables automatic database migration on startup.
	AutoMigrate bool

	// collaborators set through options
	store      store.Store
	hasher     password.Hasher
	identities cache.Users
	logger     zerolog.Logger
	now        func() time.Time
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		SigningMethod:     SigningMethodHS256,
		AccessTokenTTL:    DefaultAccessTokenTTL,
		PasswordAlgorithm: DefaultPasswordAlgorithm,
		BcryptCost:        DefaultBcryptCost,
		identities:        cache.Nop{},
		logger:            zerolog.Nop(),
		now:               time.Now,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.SigningMethod {
	case SigningMethodHS256, SigningMethodHS384, SigningMethodHS512:
	default:
		return fmt.Errorf("%w: unsupported signing method: %s", ErrConfigInvalid, c.SigningMethod)
	}

	if c.Secret == "" {
		return fmt.Errorf("%w: secret is required for HMAC signing", ErrConfigInvalid)
	}
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("%w: secret must be at least %d characters", ErrConfigInvalid, MinSecretLength)
	}

	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("%w: access token TTL must be positive", ErrConfigInvalid)
	}

	if c.hasher == nil {
		switch c.PasswordAlgorithm {
		case password.AlgorithmBcrypt, password.AlgorithmArgon2id:
		default:
			return fmt.Errorf("%w: unsupported password algorithm: %s", ErrConfigInvalid, c.PasswordAlgorithm)
		}
	}

	if c.now == nil {
		return fmt.Errorf("%w: clock cannot be nil", ErrConfigInvalid)
	}

	return nil
}
