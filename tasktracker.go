// Package tasktracker is the core of a multi-user task tracker: account
// registration and login, bearer-token authentication and owner-scoped task
// operations.
//
// Basic usage:
//
//	svc, err := tasktracker.New(
//	    tasktracker.WithSecret(os.Getenv("JWT_SECRET")),
//	    tasktracker.WithStore(memory.New()),
//	)
//
//	user, err := svc.Register(ctx, tasktracker.RegisterInput{...})
//	tok, err := svc.Login(ctx, tasktracker.LoginInput{...})
//	user, err = svc.Authenticate(ctx, tok.AccessToken)
//	task, err := svc.CreateTask(ctx, user, tasktracker.TaskInput{Title: "write report"})
package tasktracker

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aloks98/tasktracker/cache"
	"github.com/aloks98/tasktracker/internal/logutil"
	"github.com/aloks98/tasktracker/password"
	"github.com/aloks98/tasktracker/store"
	"github.com/aloks98/tasktracker/token"
)

// dummyPassword is hashed once at startup so logins for unknown users spend
// the same time verifying as logins for known ones.
const dummyPassword = "tasktracker-timing-equalizer"

// Service is the main entry point for tasktracker functionality.
// It is safe for concurrent use; its configuration is read-only.
type Service struct {
	config     *Config
	store      store.Store
	hasher     password.Hasher
	tokens     *token.Service
	identities cache.Users
	log        zerolog.Logger

	dummyHash string

	// mu protects closed
	mu     sync.Mutex
	closed bool
}

// New creates a new Service with the given options.
// At minimum, WithSecret and WithStore must be provided.
func New(opts ...Option) (*Service, error) {
	cfg := NewConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.store == nil {
		return nil, ErrStoreRequired
	}

	hasher := cfg.hasher
	if hasher == nil {
		var err error
		hasher, err = password.New(cfg.PasswordAlgorithm, cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
		}
	}

	tokens, err := token.NewService(&token.Config{
		Secret:         cfg.Secret,
		SigningMethod:  string(cfg.SigningMethod),
		AccessTokenTTL: cfg.AccessTokenTTL,
		Now:            cfg.now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("hash timing equalizer: %w", err)
	}

	svc := &Service{
		config:     cfg,
		store:      cfg.store,
		hasher:     hasher,
		tokens:     tokens,
		identities: cfg.identities,
		log:        cfg.logger,
		dummyHash:  dummyHash,
	}

	if cfg.AutoMigrate {
		if err := svc.store.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return svc, nil
}

// Config returns the current configuration.
// The returned config should not be modified.
func (s *Service) Config() *Config {
	return s.config
}

// Store returns the underlying store.
func (s *Service) Store() store.Store {
	return s.store
}

// Tokens returns the token issuer and verifier.
func (s *Service) Tokens() *token.Service {
	return s.tokens
}

// Close releases the store and the identity cache.
// After Close is called, the Service should not be used.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	cacheErr := s.identities.Close()
	if err := s.store.Close(); err != nil {
		return err
	}
	return cacheErr
}

// Ping verifies the store connection is alive.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// logger returns the request logger carried by ctx, or the service logger.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	l := logutil.GetOr(ctx, s.log)
	return &l
}
