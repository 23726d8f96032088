// Package memory provides an in-memory store implementation for testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aloks98/tasktracker/store"
)

var (
	// ErrClosed is returned by Begin after Close.
	ErrClosed = errors.New("memory store: closed")

	// ErrSessionDone is returned by session methods after Commit or Rollback.
	ErrSessionDone = errors.New("memory store: session already ended")
)

// Store is an in-memory implementation of the store.Store interface.
// It is intended for testing and development purposes.
//
// Sessions are serialized: a session holds the store lock from Begin until
// Commit or Rollback.
type Store struct {
	mu sync.Mutex

	users  map[int64]*store.User
	tasks  map[int64]*store.Task
	nextID struct{ user, task int64 }

	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		users: make(map[int64]*store.User),
		tasks: make(map[int64]*store.Task),
	}
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Ping checks if the store is available.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Migrate is a no-op for the memory store.
func (s *Store) Migrate(ctx context.Context) error {
	return nil
}

// Begin locks the store and returns a session over it.
func (s *Store) Begin(ctx context.Context) (store.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	return &session{s: s}, nil
}

// session records an undo step for every mutation so Rollback can restore
// the state seen at Begin.
type session struct {
	s    *Store
	undo []func()
	done bool
}

func (tx *session) end() {
	tx.done = true
	tx.undo = nil
	tx.s.mu.Unlock()
}

// Commit keeps the session's writes and releases the store.
func (tx *session) Commit() error {
	if tx.done {
		return ErrSessionDone
	}
	tx.end()
	return nil
}

// Rollback undoes the session's writes and releases the store.
func (tx *session) Rollback() error {
	if tx.done {
		return nil
	}
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.end()
	return nil
}

func (tx *session) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*store.User, error) {
	if tx.done {
		return nil, ErrSessionDone
	}
	for _, id := range tx.s.sortedUserIDs() {
		u := tx.s.users[id]
		if u.Username == username || u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (tx *session) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	if tx.done {
		return nil, ErrSessionDone
	}
	for _, u := range tx.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (tx *session) InsertUser(ctx context.Context, user *store.User) error {
	if tx.done {
		return ErrSessionDone
	}
	for _, u := range tx.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return store.ErrDuplicate
		}
	}

	prevID := tx.s.nextID.user
	tx.s.nextID.user++
	user.ID = tx.s.nextID.user
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	c := *user
	tx.s.users[user.ID] = &c

	id := user.ID
	tx.undo = append(tx.undo, func() {
		delete(tx.s.users, id)
		tx.s.nextID.user = prevID
	})
	return nil
}

func (tx *session) UpdateUserPasswordHash(ctx context.Context, userID int64, hash string) error {
	if tx.done {
		return ErrSessionDone
	}
	u, ok := tx.s.users[userID]
	if !ok {
		return nil
	}
	prev := u.PasswordHash
	u.PasswordHash = hash
	tx.undo = append(tx.undo, func() { u.PasswordHash = prev })
	return nil
}

func (tx *session) FindTaskByIDAndOwner(ctx context.Context, taskID, ownerID int64) (*store.Task, error) {
	if tx.done {
		return nil, ErrSessionDone
	}
	t, ok := tx.s.tasks[taskID]
	if !ok || !t.OwnedBy(ownerID) {
		return nil, nil
	}
	return t.Clone(), nil
}

func (tx *session) ListTasksByOwner(ctx context.Context, ownerID int64) ([]*store.Task, error) {
	if tx.done {
		return nil, ErrSessionDone
	}
	out := make([]*store.Task, 0)
	for _, t := range tx.s.tasks {
		if t.OwnedBy(ownerID) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (tx *session) InsertTask(ctx context.Context, task *store.Task) error {
	if tx.done {
		return ErrSessionDone
	}
	if _, ok := tx.s.users[task.UserID]; !ok {
		return errors.New("memory store: task owner does not exist")
	}

	prevID := tx.s.nextID.task
	tx.s.nextID.task++
	task.ID = tx.s.nextID.task
	tx.s.tasks[task.ID] = task.Clone()

	id := task.ID
	tx.undo = append(tx.undo, func() {
		delete(tx.s.tasks, id)
		tx.s.nextID.task = prevID
	})
	return nil
}

func (tx *session) UpdateTask(ctx context.Context, task *store.Task) (bool, error) {
	if tx.done {
		return false, ErrSessionDone
	}
	cur, ok := tx.s.tasks[task.ID]
	if !ok || !cur.OwnedBy(task.UserID) {
		return false, nil
	}

	prev := cur.Clone()
	tx.s.tasks[task.ID] = task.Clone()
	tx.undo = append(tx.undo, func() { tx.s.tasks[prev.ID] = prev })
	return true, nil
}

func (tx *session) DeleteTask(ctx context.Context, taskID, ownerID int64) (bool, error) {
	if tx.done {
		return false, ErrSessionDone
	}
	cur, ok := tx.s.tasks[taskID]
	if !ok || !cur.OwnedBy(ownerID) {
		return false, nil
	}

	delete(tx.s.tasks, taskID)
	tx.undo = append(tx.undo, func() { tx.s.tasks[cur.ID] = cur })
	return true, nil
}

// sortedUserIDs returns user ids in insertion order. Caller holds the lock.
func (s *Store) sortedUserIDs() []int64 {
	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)
