package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aloks98/tasktracker"
	"github.com/aloks98/tasktracker/cache"
	"github.com/aloks98/tasktracker/internal/config"
	"github.com/aloks98/tasktracker/store"
	"github.com/aloks98/tasktracker/store/memory"
	sqlstore "github.com/aloks98/tasktracker/store/sql"
)

// driverMemory keeps all data in process. Useful for demos and tests.
const driverMemory = "memory"

func openStore(cfg *config.Config) (store.Store, error) {
	if strings.EqualFold(strings.TrimSpace(cfg.DatabaseDriver), driverMemory) {
		return memory.New(), nil
	}
	dialect, err := sqlstore.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}
	return sqlstore.New(&sqlstore.Config{
		Dialect:     dialect,
		DSN:         cfg.DatabaseURL,
		TablePrefix: cfg.TablePrefix,
	})
}

func buildCache(ctx context.Context, cfg *config.Config) (cache.Users, error) {
	switch cfg.IdentityCache {
	case config.CacheMemory:
		return cache.NewMemory(ctx, cfg.IdentityCacheTTL)
	case config.CacheRedis:
		return cache.NewRedis(&cache.RedisConfig{URL: cfg.RedisURL, TTL: cfg.IdentityCacheTTL})
	case config.CacheNone, "":
		return cache.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown identity cache %q", cfg.IdentityCache)
	}
}

// buildService wires the store and cache into a Service. On failure every
// resource opened so far is released.
func buildService(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*tasktracker.Service, error) {
	s, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	users, err := buildCache(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, s.Close())
	}

	svc, err := tasktracker.New(
		tasktracker.WithStore(s),
		tasktracker.WithSecret(cfg.JWTSecret),
		tasktracker.WithSigningMethod(tasktracker.SigningMethod(cfg.JWTAlgorithm)),
		tasktracker.WithAccessTokenTTL(cfg.AccessTokenTTL),
		tasktracker.WithPasswordAlgorithm(cfg.PasswordAlgorithm),
		tasktracker.WithBcryptCost(cfg.BcryptCost),
		tasktracker.WithAutoMigrate(cfg.AutoMigrate),
		tasktracker.WithIdentityCache(users),
		tasktracker.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Join(err, users.Close(), s.Close())
	}
	return svc, nil
}
