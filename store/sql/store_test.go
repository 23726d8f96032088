package sql

import (
	"context"
	"strings"
	"testing"
)

func TestNew_PostgresEmptyDSN(t *testing.T) {
	// sql.Open doesn't validate the DSN until the first connection attempt
	s, err := New(&Config{Dialect: PostgreSQL, DSN: ""})
	if err != nil {
		return
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err == nil {
		t.Error("expected error when pinging with empty DSN")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"prefix with quote", &Config{Dialect: SQLite, TablePrefix: "x'; DROP TABLE users; --"}},
		{"prefix with space", &Config{Dialect: SQLite, TablePrefix: "my app"}},
		{"bad mysql dsn", &Config{Dialect: MySQL, DSN: "not a dsn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDialect_DriverName(t *testing.T) {
	tests := []struct {
		dialect  Dialect
		expected string
	}{
		{PostgreSQL, "pgx"},
		{MySQL, "mysql"},
		{SQLite, "sqlite3"},
		{Dialect("unknown"), "pgx"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			if got := tt.dialect.driverName(); got != tt.expected {
				t.Errorf("driverName() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name    string
		want    Dialect
		wantErr bool
	}{
		{"postgres", PostgreSQL, false},
		{"PostgreSQL", PostgreSQL, false},
		{"pgx", PostgreSQL, false},
		{"mysql", MySQL, false},
		{"mariadb", MySQL, false},
		{"sqlite", SQLite, false},
		{" sqlite3 ", SQLite, false},
		{"oracle", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDialect(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func TestReturningID(t *testing.T) {
	if !PostgreSQL.returningID() {
		t.Error("postgres should use RETURNING")
	}
	if MySQL.returningID() || SQLite.returningID() {
		t.Error("mysql and sqlite should use LastInsertId")
	}
}

func TestNormalizeDSN(t *testing.T) {
	dsn, err := normalizeDSN(MySQL, "user:pw@tcp(localhost:3306)/tasks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("expected parseTime=true in %s", dsn)
	}
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("expected clientFoundRows=true in %s", dsn)
	}

	pg := "postgres://u:p@localhost/db?sslmode=disable"
	if got, _ := normalizeDSN(PostgreSQL, pg); got != pg {
		t.Errorf("postgres DSN should be unchanged, got %s", got)
	}
}

func TestValidTablePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   bool
	}{
		{"", true},
		{"app_", true},
		{"App2_", true},
		{"app-", false},
		{"app.", false},
		{"a b", false},
	}

	for _, tt := range tests {
		if got := validTablePrefix(tt.prefix); got != tt.want {
			t.Errorf("validTablePrefix(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
	}
}
