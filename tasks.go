package tasktracker

import (
	"context"
	"strings"

	"github.com/aloks98/tasktracker/store"
)

// TaskInput holds the writable fields of a task. Nil Description and Status
// take their defaults: no description and DefaultTaskStatus.
type TaskInput struct {
	Title       string
	Description *string
	Status      *string
}

// apply writes the input onto t as a full replacement.
func (in TaskInput) apply(t *store.Task) {
	t.Title = in.Title
	t.Description = nil
	if in.Description != nil {
		d := *in.Description
		t.Description = &d
	}
	t.Status = store.DefaultTaskStatus
	if in.Status != nil {
		t.Status = *in.Status
	}
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return validationError("title is required")
	}
	return nil
}

// Authorize returns the task only when it belongs to user. The lookup is
// scoped by owner, so a task held by someone else is indistinguishable from
// a missing one: both yield ErrNotFoundOrUnauthorized.
func (s *Service) Authorize(ctx context.Context, sess store.Session, user *store.User, taskID int64) (*store.Task, error) {
	t, err := sess.FindTaskByIDAndOwner(ctx, taskID, user.ID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFoundOrUnauthorized
	}
	return t, nil
}

// CreateTask stores a new task owned by user.
func (s *Service) CreateTask(ctx context.Context, user *store.User, in TaskInput) (*store.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	return withSession(ctx, s, func(sess store.Session) (*store.Task, error) {
		t := &store.Task{UserID: user.ID}
		in.apply(t)
		if err := sess.InsertTask(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	})
}

// ListTasks returns the tasks owned by user, oldest first.
func (s *Service) ListTasks(ctx context.Context, user *store.User) ([]*store.Task, error) {
	return withSession(ctx, s, func(sess store.Session) ([]*store.Task, error) {
		return sess.ListTasksByOwner(ctx, user.ID)
	})
}

// UpdateTask replaces the title, description and status of a task owned by user.
func (s *Service) UpdateTask(ctx context.Context, user *store.User, taskID int64, in TaskInput) (*store.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	return withSession(ctx, s, func(sess store.Session) (*store.Task, error) {
		t, err := s.Authorize(ctx, sess, user, taskID)
		if err != nil {
			return nil, err
		}

		in.apply(t)
		ok, err := sess.UpdateTask(ctx, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotFoundOrUnauthorized
		}
		return t, nil
	})
}

// DeleteTask removes a task owned by user.
func (s *Service) DeleteTask(ctx context.Context, user *store.User, taskID int64) error {
	_, err := withSession(ctx, s, func(sess store.Session) (struct{}, error) {
		if _, err := s.Authorize(ctx, sess, user, taskID); err != nil {
			return struct{}{}, err
		}

		ok, err := sess.DeleteTask(ctx, taskID, user.ID)
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, ErrNotFoundOrUnauthorized
		}
		return struct{}{}, nil
	})
	return err
}
