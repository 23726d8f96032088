package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aloks98/tasktracker/store"
	"github.com/aloks98/tasktracker/store/sql/queries"
)

// session implements store.Session over a single transaction.
type session struct {
	tx      *sql.Tx
	q       *queries.Queries
	dialect Dialect
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*store.User, error) {
	u := &store.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanTask(row rowScanner) (*store.Task, error) {
	t := &store.Task{}
	var description sql.NullString
	err := row.Scan(&t.ID, &t.Title, &description, &t.Status, &t.UserID)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	return t, nil
}

// insert runs an INSERT and returns the generated id.
func (s *session) insert(ctx context.Context, query string, args ...any) (int64, error) {
	if s.dialect.returningID() {
		var id int64
		if err := s.tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := s.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *session) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*store.User, error) {
	u, err := scanUser(s.tx.QueryRowContext(ctx, s.q.FindUserByUsernameOrEmail, username, email))
	if err != nil {
		return nil, fmt.Errorf("find user by username or email: %w", err)
	}
	return u, nil
}

func (s *session) FindUserByUsername(ctx context.Context, username string) (*store.User, error) {
	u, err := scanUser(s.tx.QueryRowContext(ctx, s.q.FindUserByUsername, username))
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (s *session) InsertUser(ctx context.Context, user *store.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	id, err := s.insert(ctx, s.q.InsertUser, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", mapInsertError(err))
	}
	user.ID = id
	return nil
}

func (s *session) UpdateUserPasswordHash(ctx context.Context, userID int64, hash string) error {
	if _, err := s.tx.ExecContext(ctx, s.q.UpdateUserPasswordHash, hash, userID); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}

func (s *session) FindTaskByIDAndOwner(ctx context.Context, taskID, ownerID int64) (*store.Task, error) {
	t, err := scanTask(s.tx.QueryRowContext(ctx, s.q.FindTaskByIDAndOwner, taskID, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task: %w", err)
	}
	return t, nil
}

func (s *session) ListTasksByOwner(ctx context.Context, ownerID int64) ([]*store.Task, error) {
	rows, err := s.tx.QueryContext(ctx, s.q.ListTasksByOwner, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*store.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *session) InsertTask(ctx context.Context, task *store.Task) error {
	id, err := s.insert(ctx, s.q.InsertTask, task.Title, task.Description, task.Status, task.UserID)
	if err != nil {
		return fmt.Errorf("insert task: %w", mapInsertError(err))
	}
	task.ID = id
	return nil
}

func (s *session) UpdateTask(ctx context.Context, task *store.Task) (bool, error) {
	res, err := s.tx.ExecContext(ctx, s.q.UpdateTask,
		task.Title, task.Description, task.Status, task.ID, task.UserID)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	return n > 0, nil
}

func (s *session) DeleteTask(ctx context.Context, taskID, ownerID int64) (bool, error) {
	res, err := s.tx.ExecContext(ctx, s.q.DeleteTask, taskID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return n > 0, nil
}

// Commit commits the transaction.
func (s *session) Commit() error {
	return s.tx.Commit()
}

// Rollback aborts the transaction. It is a no-op once the transaction has ended.
func (s *session) Rollback() error {
	if err := s.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
