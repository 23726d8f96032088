// Package storetest provides a conformance suite for store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aloks98/tasktracker/store"
)

var seq atomic.Int64

// unique returns a name that does not collide across subtests sharing a store.
func unique(base string) string {
	return fmt.Sprintf("%s%d", base, seq.Add(1))
}

// Run exercises the session contract against s. The store must be migrated.
// Subtests create their own users, so s may be shared with other tests.
func Run(t *testing.T, s store.Store) {
	t.Helper()

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, s.Ping(context.Background()))
	})
	t.Run("Users", func(t *testing.T) { testUsers(t, s) })
	t.Run("DuplicateUser", func(t *testing.T) { testDuplicateUser(t, s) })
	t.Run("PasswordHashUpdate", func(t *testing.T) { testPasswordHashUpdate(t, s) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, s) })
	t.Run("OwnershipScoping", func(t *testing.T) { testOwnershipScoping(t, s) })
	t.Run("Rollback", func(t *testing.T) { testRollback(t, s) })
	t.Run("ConcurrentRegistration", func(t *testing.T) { testConcurrentRegistration(t, s) })
}

// WithSession runs fn in a session and commits it.
func WithSession(t *testing.T, s store.Store, fn func(sess store.Session)) {
	t.Helper()
	sess, err := s.Begin(context.Background())
	require.NoError(t, err)
	defer sess.Rollback() //nolint:errcheck
	fn(sess)
	require.NoError(t, sess.Commit())
}

// CreateUser inserts a user with a unique username and email.
func CreateUser(t *testing.T, s store.Store, base string) *store.User {
	t.Helper()
	name := unique(base)
	u := &store.User{Username: name, Email: name + "@example.com", PasswordHash: "hash-" + name}
	WithSession(t, s, func(sess store.Session) {
		require.NoError(t, sess.InsertUser(context.Background(), u))
	})
	require.NotZero(t, u.ID)
	return u
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := CreateUser(t, s, "bob")

	WithSession(t, s, func(sess store.Session) {
		got, err := sess.FindUserByUsername(ctx, u.Username)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.Email, got.Email)
		require.Equal(t, u.PasswordHash, got.PasswordHash)

		got, err = sess.FindUserByUsernameOrEmail(ctx, "nobody-"+u.Username, u.Email)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, u.ID, got.ID)

		got, err = sess.FindUserByUsernameOrEmail(ctx, u.Username, "nobody@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)

		got, err = sess.FindUserByUsername(ctx, unique("missing"))
		require.NoError(t, err)
		require.Nil(t, got)

		got, err = sess.FindUserByUsernameOrEmail(ctx, unique("missing"), unique("missing")+"@example.com")
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func testDuplicateUser(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := CreateUser(t, s, "dup")

	for name, candidate := range map[string]*store.User{
		"username": {Username: u.Username, Email: unique("other") + "@example.com", PasswordHash: "h"},
		"email":    {Username: unique("other"), Email: u.Email, PasswordHash: "h"},
	} {
		t.Run(name, func(t *testing.T) {
			sess, err := s.Begin(ctx)
			require.NoError(t, err)
			defer sess.Rollback() //nolint:errcheck

			err = sess.InsertUser(ctx, candidate)
			require.True(t, errors.Is(err, store.ErrDuplicate), "got %v", err)
		})
	}
}

func testPasswordHashUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := CreateUser(t, s, "rehash")

	WithSession(t, s, func(sess store.Session) {
		require.NoError(t, sess.UpdateUserPasswordHash(ctx, u.ID, "upgraded"))
	})
	WithSession(t, s, func(sess store.Session) {
		got, err := sess.FindUserByUsername(ctx, u.Username)
		require.NoError(t, err)
		require.Equal(t, "upgraded", got.PasswordHash)
	})
}

func testTasks(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := CreateUser(t, s, "owner")
	desc := "details"

	first := &store.Task{Title: "first", Status: store.DefaultTaskStatus, UserID: u.ID}
	second := &store.Task{Title: "second", Description: &desc, Status: "done", UserID: u.ID}

	WithSession(t, s, func(sess store.Session) {
		require.NoError(t, sess.InsertTask(ctx, first))
		require.NoError(t, sess.InsertTask(ctx, second))
	})
	require.NotZero(t, first.ID)
	require.Greater(t, second.ID, first.ID)

	WithSession(t, s, func(sess store.Session) {
		list, err := sess.ListTasksByOwner(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "first", list[0].Title)
		require.Nil(t, list[0].Description)
		require.Equal(t, "pending", list[0].Status)
		require.NotNil(t, list[1].Description)
		require.Equal(t, "details", *list[1].Description)

		updated := &store.Task{ID: first.ID, Title: "renamed", Description: &desc, Status: "done", UserID: u.ID}
		ok, err := sess.UpdateTask(ctx, updated)
		require.NoError(t, err)
		require.True(t, ok)

		// an update that changes nothing still matches the row
		ok, err = sess.UpdateTask(ctx, updated)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := sess.FindTaskByIDAndOwner(ctx, first.ID, u.ID)
		require.NoError(t, err)
		require.Equal(t, "renamed", got.Title)
		require.Equal(t, "done", got.Status)

		ok, err = sess.DeleteTask(ctx, second.ID, u.ID)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = sess.DeleteTask(ctx, second.ID, u.ID)
		require.NoError(t, err)
		require.False(t, ok)

		got, err = sess.FindTaskByIDAndOwner(ctx, second.ID, u.ID)
		require.NoError(t, err)
		require.Nil(t, got)
	})
}

func testOwnershipScoping(t *testing.T, s store.Store) {
	ctx := context.Background()
	alice := CreateUser(t, s, "alice")
	mallory := CreateUser(t, s, "mallory")

	task := &store.Task{Title: "alice only", Status: "pending", UserID: alice.ID}
	WithSession(t, s, func(sess store.Session) {
		require.NoError(t, sess.InsertTask(ctx, task))
	})

	WithSession(t, s, func(sess store.Session) {
		got, err := sess.FindTaskByIDAndOwner(ctx, task.ID, mallory.ID)
		require.NoError(t, err)
		require.Nil(t, got)

		list, err := sess.ListTasksByOwner(ctx, mallory.ID)
		require.NoError(t, err)
		require.Empty(t, list)

		ok, err := sess.UpdateTask(ctx, &store.Task{ID: task.ID, Title: "hijacked", Status: "x", UserID: mallory.ID})
		require.NoError(t, err)
		require.False(t, ok)

		ok, err = sess.DeleteTask(ctx, task.ID, mallory.ID)
		require.NoError(t, err)
		require.False(t, ok)

		got, err = sess.FindTaskByIDAndOwner(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "alice only", got.Title)
	})
}

func testRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	owner := CreateUser(t, s, "rb")
	ghost := unique("ghost")

	sess, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, sess.InsertUser(ctx, &store.User{Username: ghost, Email: ghost + "@example.com", PasswordHash: "h"}))
	require.NoError(t, sess.InsertTask(ctx, &store.Task{Title: "ghost task", Status: "pending", UserID: owner.ID}))
	require.NoError(t, sess.Rollback())
	require.NoError(t, sess.Rollback(), "second rollback should be a no-op")

	WithSession(t, s, func(sess store.Session) {
		got, err := sess.FindUserByUsername(ctx, ghost)
		require.NoError(t, err)
		require.Nil(t, got)

		list, err := sess.ListTasksByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func testConcurrentRegistration(t *testing.T, s store.Store) {
	ctx := context.Background()
	name := unique("race")

	var wg sync.WaitGroup
	var created, duplicates atomic.Int64
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := s.Begin(ctx)
			if err != nil {
				t.Errorf("Begin() error = %v", err)
				return
			}
			defer sess.Rollback() //nolint:errcheck

			err = sess.InsertUser(ctx, &store.User{
				Username:     name,
				Email:        fmt.Sprintf("%s-%d@example.com", name, i),
				PasswordHash: "h",
			})
			switch {
			case errors.Is(err, store.ErrDuplicate):
				duplicates.Add(1)
				return
			case err != nil:
				t.Errorf("InsertUser() error = %v", err)
				return
			}
			if err := sess.Commit(); err != nil {
				if errors.Is(err, store.ErrDuplicate) {
					duplicates.Add(1)
					return
				}
				t.Errorf("Commit() error = %v", err)
				return
			}
			created.Add(1)
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, created.Load())
	require.EqualValues(t, 7, duplicates.Load())
}
