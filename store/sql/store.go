package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	// PostgreSQL driver
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aloks98/tasktracker/store"
	"github.com/aloks98/tasktracker/store/sql/queries"
)

// Store implements store.Store using a SQL database.
type Store struct {
	db      *sql.DB
	dialect Dialect
	queries *queries.Queries
}

// Config holds SQL store configuration.
type Config struct {
	// Dialect specifies the database type (postgres, mysql, sqlite).
	Dialect Dialect

	// DB is an existing database connection.
	// If provided, DSN is ignored.
	DB *sql.DB

	// DSN is the data source name for connecting to the database.
	DSN string

	// TablePrefix is the prefix for all table names.
	// Example: "app_" creates tables "app_users" and "app_tasks".
	TablePrefix string

	// MaxOpenConns sets the maximum number of open connections.
	// SQLite defaults to 1.
	MaxOpenConns int

	// MaxIdleConns sets the maximum number of idle connections.
	MaxIdleConns int

	// ConnMaxLifetime sets the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration
}

// New creates a new SQL store.
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("sql store: config is required")
	}
	if !validTablePrefix(cfg.TablePrefix) {
		return nil, fmt.Errorf("sql store: invalid table prefix %q", cfg.TablePrefix)
	}

	dialect := cfg.Dialect
	if dialect == "" {
		dialect = PostgreSQL
	}

	q, err := queries.Load(dialect.queryDir(), cfg.TablePrefix)
	if err != nil {
		return nil, err
	}

	db := cfg.DB
	if db == nil {
		dsn, err := normalizeDSN(dialect, cfg.DSN)
		if err != nil {
			return nil, err
		}

		db, err = sql.Open(dialect.driverName(), dsn)
		if err != nil {
			return nil, err
		}

		maxOpen := cfg.MaxOpenConns
		if maxOpen == 0 && dialect == SQLite {
			maxOpen = 1
		}
		if maxOpen > 0 {
			db.SetMaxOpenConns(maxOpen)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	return &Store{
		db:      db,
		dialect: dialect,
		queries: q,
	}, nil
}

// normalizeDSN applies driver options the store relies on.
func normalizeDSN(d Dialect, dsn string) (string, error) {
	if d != MySQL {
		return dsn, nil
	}

	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("sql store: %w", err)
	}
	// scan DATETIME into time.Time
	mc.ParseTime = true
	// RowsAffected counts matched rows so an unchanged UPDATE still reports a hit
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// DB returns the underlying connection pool.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate creates the database schema.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range queries.Statements(s.queries.Schema) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sql store: migrate: %w", err)
		}
	}
	return nil
}

// Begin starts a transaction and wraps it in a session.
func (s *Store) Begin(ctx context.Context) (store.Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sql store: begin: %w", err)
	}
	return &session{tx: tx, q: s.queries, dialect: s.dialect}, nil
}

// Ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)
