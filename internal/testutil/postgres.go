// Package testutil provides testing utilities for tasktracker.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	sqlstore "github.com/aloks98/tasktracker/store/sql"
)

// SetupPostgres starts a PostgreSQL testcontainer and returns a migrated store.
// The container is automatically cleaned up when the test finishes.
func SetupPostgres(t testing.TB) *sqlstore.Store {
	t.Helper()
	return SetupPostgresWithPrefix(t, "test_")
}

// SetupPostgresWithPrefix is SetupPostgres with a custom table prefix.
func SetupPostgresWithPrefix(t testing.TB, tablePrefix string) *sqlstore.Store {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("tasktracker_test"),
		postgres.WithUsername("tasktracker"),
		postgres.WithPassword("tasktracker"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	return open(t, &sqlstore.Config{
		Dialect:      sqlstore.PostgreSQL,
		DSN:          dsn,
		TablePrefix:  tablePrefix,
		MaxOpenConns: 10,
	})
}

// open creates, migrates and registers cleanup for a SQL store.
func open(t testing.TB, cfg *sqlstore.Config) *sqlstore.Store {
	t.Helper()

	s, err := sqlstore.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create SQL store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("Failed to close store: %v", err)
		}
	})

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return s
}
