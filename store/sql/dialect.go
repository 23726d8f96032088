// Package sql provides SQL database storage for tasktracker.
package sql

import (
	"fmt"
	"strings"
)

// Dialect represents a SQL database dialect.
type Dialect string

const (
	// PostgreSQL dialect, served by the pgx driver.
	PostgreSQL Dialect = "postgres"
	// MySQL dialect.
	MySQL Dialect = "mysql"
	// SQLite dialect.
	SQLite Dialect = "sqlite"
)

// ParseDialect maps a driver or dialect name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pgx":
		return PostgreSQL, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database dialect: %q", name)
	}
}

// driverName returns the database/sql driver name for the dialect.
func (d Dialect) driverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite3"
	default:
		return "pgx"
	}
}

// queryDir returns the embedded query directory for the dialect.
func (d Dialect) queryDir() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return "postgres"
	}
}

// returningID reports whether inserts return the new id through RETURNING
// instead of LastInsertId.
func (d Dialect) returningID() bool {
	return d == PostgreSQL || d == ""
}

// validTablePrefix reports whether p is safe to splice into identifiers.
func validTablePrefix(p string) bool {
	for _, r := range p {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
