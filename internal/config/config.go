// Package config loads process configuration from the environment, optionally
// seeded from a dotenv file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity cache kinds.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is loaded once at startup and not modified afterwards.
type Config struct {
	// Server
	Addr string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	TablePrefix    string
	AutoMigrate    bool

	// Tokens
	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	// Passwords
	PasswordAlgorithm string
	BcryptCost        int

	// Identity cache
	IdentityCache    string
	IdentityCacheTTL time.Duration
	RedisURL         string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the dotenv file at envFile, if given, then the environment.
// Variables already set in the environment win over the file. With an empty
// envFile a ".env" in the working directory is used when present.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var errs []error
	cfg := &Config{
		Addr: getEnv("TASKTRACKER_ADDR", ":8000"),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseURL:    getEnv("DATABASE_URL", "file:tasktracker.db?_foreign_keys=on"),
		TablePrefix:    os.Getenv("DATABASE_TABLE_PREFIX"),
		AutoMigrate:    getEnvAsBool("AUTO_MIGRATE", true, &errs),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTAlgorithm:   getEnv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL: time.Duration(getEnvAsInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30, &errs)) * time.Minute,

		PasswordAlgorithm: getEnv("PASSWORD_ALGORITHM", "bcrypt"),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 12, &errs),

		IdentityCache:    strings.ToLower(getEnv("IDENTITY_CACHE", CacheNone)),
		IdentityCacheTTL: getEnvAsDuration("IDENTITY_CACHE_TTL", time.Minute, &errs),
		RedisURL:         os.Getenv("REDIS_URL"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings needed to serve requests.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	switch c.IdentityCache {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required when IDENTITY_CACHE=redis")
		}
	default:
		return fmt.Errorf("IDENTITY_CACHE must be one of none, memory, redis; got %q", c.IdentityCache)
	}

	return nil
}

// getEnv returns the variable or defaultValue when it is unset or empty.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid integer %q", key, valueStr))
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool, errs *[]error) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid boolean %q", key, valueStr))
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, valueStr))
		return defaultValue
	}
	return value
}
