package tasktracker

import (
	"context"
	"errors"

	"github.com/aloks98/tasktracker/store"
)

// Resolve maps a verified token subject to its user, consulting the identity
// cache before the session. A subject with no user yields ErrUnknownSubject.
func (s *Service) Resolve(ctx context.Context, sess store.Session, subject string) (*store.User, error) {
	if u := s.cachedIdentity(ctx, subject); u != nil {
		return u, nil
	}
	return s.lookupIdentity(ctx, sess, subject)
}

// Authenticate verifies token and resolves its subject in a session of its
// own. Every token or identity problem is returned as
// ErrAuthenticationFailure wrapping the cause; the cause is logged, the token
// never is.
func (s *Service) Authenticate(ctx context.Context, token string) (*store.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("token rejected")
		return nil, authenticationFailure(err)
	}

	if u := s.cachedIdentity(ctx, subject); u != nil {
		return u, nil
	}

	u, err := withSession(ctx, s, func(sess store.Session) (*store.User, error) {
		return s.lookupIdentity(ctx, sess, subject)
	})
	if errors.Is(err, ErrUnknownSubject) {
		s.logger(ctx).Warn().Err(err).Str("subject", subject).Msg("token rejected")
		return nil, authenticationFailure(err)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// cachedIdentity returns the cached user for subject, or nil. Cache faults
// are logged and treated as misses.
func (s *Service) cachedIdentity(ctx context.Context, subject string) *store.User {
	u, err := s.identities.Get(ctx, subject)
	if err != nil {
		s.logger(ctx).Warn().Err(err).Msg("identity cache read failed")
		return nil
	}
	return u
}

func (s *Service) lookupIdentity(ctx context.Context, sess store.Session, subject string) (*store.User, error) {
	u, err := sess.FindUserByUsername(ctx, subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownSubject
	}

	u = u.Public()
	if err := s.identities.Set(ctx, u); err != nil {
		s.logger(ctx).Warn().Err(err).Msg("identity cache write failed")
	}
	return u, nil
}
