// Package queries embeds SQL query files for the SQL store.
package queries

import (
	"embed"
	"fmt"
	"strings"
)

// FS embeds the query files of every dialect, one directory per dialect.
//
//go:embed postgres/*.sql mysql/*.sql sqlite/*.sql
var FS embed.FS

// prefixToken is replaced by the configured table prefix.
const prefixToken = "{{prefix}}"

// Queries holds parsed SQL queries by name.
type Queries struct {
	Schema string

	FindUserByUsernameOrEmail string
	FindUserByUsername        string
	InsertUser                string
	UpdateUserPasswordHash    string

	FindTaskByIDAndOwner string
	ListTasksByOwner     string
	InsertTask           string
	UpdateTask           string
	DeleteTask           string
}

// Load reads the queries of a dialect directory and applies the table prefix.
func Load(dir, tablePrefix string) (*Queries, error) {
	read := func(name string) (string, error) {
		b, err := FS.ReadFile(dir + "/" + name)
		if err != nil {
			return "", fmt.Errorf("queries: %w", err)
		}
		return strings.ReplaceAll(string(b), prefixToken, tablePrefix), nil
	}

	schema, err := read("schema.sql")
	if err != nil {
		return nil, err
	}
	q := &Queries{Schema: schema}

	named := make(map[string]string)
	for _, file := range []string{"users.sql", "tasks.sql"} {
		content, err := read(file)
		if err != nil {
			return nil, err
		}
		for name, query := range parseNamedQueries(content) {
			named[name] = query
		}
	}

	targets := map[string]*string{
		"FindUserByUsernameOrEmail": &q.FindUserByUsernameOrEmail,
		"FindUserByUsername":        &q.FindUserByUsername,
		"InsertUser":                &q.InsertUser,
		"UpdateUserPasswordHash":    &q.UpdateUserPasswordHash,
		"FindTaskByIDAndOwner":      &q.FindTaskByIDAndOwner,
		"ListTasksByOwner":          &q.ListTasksByOwner,
		"InsertTask":                &q.InsertTask,
		"UpdateTask":                &q.UpdateTask,
		"DeleteTask":                &q.DeleteTask,
	}
	for name, dst := range targets {
		query, ok := named[name]
		if !ok {
			return nil, fmt.Errorf("queries: %s: missing query %q", dir, name)
		}
		*dst = query
	}

	return q, nil
}

// Statements splits a schema into individual statements.
func Statements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// parseNamedQueries parses SQL content with -- name: comments.
func parseNamedQueries(content string) map[string]string {
	result := make(map[string]string)

	for _, part := range strings.Split(content, "-- name:") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// First line is the query name, rest is the SQL
		lines := strings.SplitN(part, "\n", 2)
		if len(lines) < 2 {
			continue
		}

		name := strings.TrimSpace(lines[0])
		query := strings.TrimSuffix(strings.TrimSpace(lines[1]), ";")
		if name != "" && query != "" {
			result[name] = query
		}
	}

	return result
}
