// Package cache provides identity caches for resolving token subjects to users
// without a store lookup on every request.
package cache

import (
	"context"
	"encoding/json"

	"github.com/aloks98/tasktracker/store"
)

// Users caches user identities by username.
//
// Cached entries carry only the id, username and email. The password hash
// never leaves the store.
type Users interface {
	// Get returns the cached user, or (nil, nil) on a miss.
	Get(ctx context.Context, username string) (*store.User, error)

	// Set caches the identity fields of u.
	Set(ctx context.Context, u *store.User) error

	// Close releases any resources held by the cache.
	Close() error
}

// entry is the serialized form of a cached user.
type entry struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func encode(u *store.User) ([]byte, error) {
	return json.Marshal(entry{ID: u.ID, Username: u.Username, Email: u.Email})
}

func decode(data []byte) (*store.User, error) {
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &store.User{ID: e.ID, Username: e.Username, Email: e.Email}, nil
}

// Nop is a Users cache that never holds anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string) (*store.User, error) { return nil, nil }

// Set discards the user.
func (Nop) Set(context.Context, *store.User) error { return nil }

// Close is a no-op.
func (Nop) Close() error { return nil }

var _ Users = Nop{}
