package store

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUser_JSONHidesPasswordHash(t *testing.T) {
	u := &User{ID: 1, Username: "bob", Email: "b@x.com", PasswordHash: "$2a$12$secret"}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Errorf("password hash leaked: %s", data)
	}
	if string(data) != `{"id":1,"username":"bob","email":"b@x.com"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestUser_Public(t *testing.T) {
	u := &User{ID: 1, Username: "bob", Email: "b@x.com", PasswordHash: "hash"}

	p := u.Public()
	if p.PasswordHash != "" {
		t.Error("Public should drop the password hash")
	}
	if p.ID != 1 || p.Username != "bob" || p.Email != "b@x.com" {
		t.Errorf("unexpected public user: %+v", p)
	}
	if u.PasswordHash != "hash" {
		t.Error("Public should not modify the receiver")
	}

	var nilUser *User
	if nilUser.Public() != nil {
		t.Error("Public of nil should be nil")
	}
}

func TestTask_JSON(t *testing.T) {
	desc := "draft it"
	tests := []struct {
		name string
		task *Task
		want string
	}{
		{
			name: "null description",
			task: &Task{ID: 3, Title: "write report", Status: DefaultTaskStatus, UserID: 1},
			want: `{"id":3,"title":"write report","description":null,"status":"pending","user_id":1}`,
		},
		{
			name: "with description",
			task: &Task{ID: 4, Title: "t", Description: &desc, Status: "done", UserID: 2},
			want: `{"id":4,"title":"t","description":"draft it","status":"done","user_id":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.task)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("got %s, want %s", data, tt.want)
			}
		})
	}
}

func TestTask_OwnedBy(t *testing.T) {
	tests := []struct {
		name   string
		task   *Task
		userID int64
		want   bool
	}{
		{"owner", &Task{UserID: 1}, 1, true},
		{"other user", &Task{UserID: 1}, 2, false},
		{"nil task", nil, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.OwnedBy(tt.userID); got != tt.want {
				t.Errorf("OwnedBy(%d) = %v, want %v", tt.userID, got, tt.want)
			}
		})
	}
}

func TestTask_Clone(t *testing.T) {
	desc := "a"
	orig := &Task{ID: 1, Title: "t", Description: &desc, Status: "pending", UserID: 1}

	c := orig.Clone()
	*c.Description = "b"
	c.Title = "changed"

	if *orig.Description != "a" || orig.Title != "t" {
		t.Error("Clone should not share state with the original")
	}
}
