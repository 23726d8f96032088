// Package store defines the storage contracts for tasktracker.
package store

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by inserts that collide with a uniqueness constraint.
var ErrDuplicate = errors.New("store: duplicate key")

// Store defines the interface for tasktracker data persistence.
// All methods should be safe for concurrent use.
type Store interface {
	// Close releases any resources held by the store.
	Close() error

	// Ping verifies the store connection is alive.
	Ping(ctx context.Context) error

	// Migrate creates or updates the database schema.
	Migrate(ctx context.Context) error

	// Begin opens a session scoped to one unit of work. The caller must end
	// it with Commit or Rollback.
	Begin(ctx context.Context) (Session, error)
}

// Session is a transactional view of the store. A session belongs to a
// single unit of work and must not be shared across goroutines.
//
// Lookups return (nil, nil) when no row matches.
type Session interface {
	// User methods

	// FindUserByUsernameOrEmail returns any user holding either the username or the email.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*User, error)

	// FindUserByUsername returns the user with the given username.
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// InsertUser persists a new user and sets its ID.
	// Returns ErrDuplicate if the username or email is taken.
	InsertUser(ctx context.Context, user *User) error

	// UpdateUserPasswordHash replaces the stored password hash of a user.
	UpdateUserPasswordHash(ctx context.Context, userID int64, hash string) error

	// Task methods

	// FindTaskByIDAndOwner returns the task only if it belongs to ownerID.
	FindTaskByIDAndOwner(ctx context.Context, taskID, ownerID int64) (*Task, error)

	// ListTasksByOwner returns the tasks of ownerID ordered by ID.
	ListTasksByOwner(ctx context.Context, ownerID int64) ([]*Task, error)

	// InsertTask persists a new task and sets its ID.
	InsertTask(ctx context.Context, task *Task) error

	// UpdateTask writes title, description and status of a task owned by
	// task.UserID. Reports whether a row matched.
	UpdateTask(ctx context.Context, task *Task) (bool, error)

	// DeleteTask removes a task owned by ownerID. Reports whether a row was deleted.
	DeleteTask(ctx context.Context, taskID, ownerID int64) (bool, error)

	// Lifecycle

	// Commit makes the session's writes durable and ends the session.
	Commit() error

	// Rollback discards the session's writes and ends the session.
	// Calling Rollback after Commit is a no-op.
	Rollback() error
}
