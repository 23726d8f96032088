package tasktracker

import (
	"context"
	"fmt"

	"github.com/aloks98/tasktracker/store"
)

// withSession runs fn inside one store session. The session is committed
// when fn succeeds and rolled back on every other exit path, panics included.
func withSession[T any](ctx context.Context, s *Service, fn func(sess store.Session) (T, error)) (T, error) {
	var zero T

	sess, err := s.store.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := sess.Rollback(); err != nil {
			s.logger(ctx).Error().Err(err).Msg("session rollback failed")
		}
	}()

	result, err := fn(sess)
	if err != nil {
		return zero, err
	}

	if err := sess.Commit(); err != nil {
		return zero, fmt.Errorf("commit session: %w", err)
	}
	committed = true

	return result, nil
}
