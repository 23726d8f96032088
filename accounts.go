package tasktracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aloks98/tasktracker/password"
	"github.com/aloks98/tasktracker/store"
)

// TokenTypeBearer is the token_type returned by Login.
const TokenTypeBearer = "bearer"

// RegisterInput holds the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput holds the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// AccessToken is the result of a successful login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a user. A username or email already held by another
// user yields ErrDuplicateIdentity and no row is written.
// The returned user carries no password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*store.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, validationError("username, email and password are required")
	}

	// Hashing is slow; keep it outside the session.
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrPasswordTooLong) {
			return nil, WrapError(CodeValidation, errors.Join(ErrValidation, err), "password is too long")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return withSession(ctx, s, func(sess store.Session) (*store.User, error) {
		existing, err := sess.FindUserByUsernameOrEmail(ctx, in.Username, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrDuplicateIdentity
		}

		u := &store.User{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: hash,
		}
		if err := sess.InsertUser(ctx, u); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return nil, ErrDuplicateIdentity
			}
			return nil, err
		}

		s.logger(ctx).Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user registered")
		return u.Public(), nil
	})
}

// Login checks the credentials and issues an access token for the user.
// An unknown username and a wrong password both yield ErrInvalidCredentials.
// A stored hash that no longer matches the configured algorithm or cost is
// replaced after a successful check.
//
// Verification runs between two short sessions so the store is never held
// for the duration of a hash.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AccessToken, error) {
	u, err := withSession(ctx, s, func(sess store.Session) (*store.User, error) {
		return sess.FindUserByUsername(ctx, in.Username)
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Spend the same verification time as for a known user.
		s.hasher.Verify(in.Password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(u.PasswordHash) {
		if err := s.upgradeHash(ctx, u, in.Password); err != nil {
			return nil, err
		}
	}

	signed, err := s.tokens.Issue(u.Username, s.config.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AccessToken{AccessToken: signed, TokenType: TokenTypeBearer}, nil
}

func (s *Service) upgradeHash(ctx context.Context, u *store.User, plain string) error {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("rehash password: %w", err)
	}
	_, err = withSession(ctx, s, func(sess store.Session) (struct{}, error) {
		return struct{}{}, sess.UpdateUserPasswordHash(ctx, u.ID, hash)
	})
	if err != nil {
		return err
	}
	s.logger(ctx).Info().Int64("user_id", u.ID).Msg("password hash upgraded")
	return nil
}
