package store

import (
	"time"
)

// DefaultTaskStatus is the status given to tasks created without one.
const DefaultTaskStatus = "pending"

// User represents a registered account.
type User struct {
	// ID is the unique numeric identifier.
	ID int64 `db:"id" json:"id"`

	// Username is unique among users and is the token subject.
	Username string `db:"username" json:"username"`

	// Email is unique among users.
	Email string `db:"email" json:"email"`

	// PasswordHash is the encoded password hash. Never serialized.
	PasswordHash string `db:"hashed_password" json:"-"`

	// CreatedAt is when the user registered.
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// Public returns a copy of the user without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Task represents a to-do item owned by a single user.
type Task struct {
	ID          int64   `db:"id" json:"id"`
	Title       string  `db:"title" json:"title"`
	Description *string `db:"description" json:"description"`
	Status      string  `db:"status" json:"status"`
	UserID      int64   `db:"user_id" json:"user_id"`
}

// OwnedBy reports whether the task belongs to the user.
func (t *Task) OwnedBy(userID int64) bool {
	return t != nil && t.UserID == userID
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}
