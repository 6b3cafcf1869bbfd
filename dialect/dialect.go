package dialect

import (
	"context"
	"fmt"
	"strings"
)

// Dialects the builders can target.
const (
	// SQLite is the sqlite dialect.
	SQLite = "sqlite"
	// MySQL is the mysql dialect.
	MySQL = "mysql"
	// Postgres is the postgres dialect.
	Postgres = "postgres"
)

// All returns the supported dialects in their canonical form.
func All() []string {
	return []string{SQLite, MySQL, Postgres}
}

// Parse normalizes a user-supplied dialect name to one of the dialect
// constants. Matching is case-insensitive and "postgresql" is accepted
// as an alias for Postgres.
func Parse(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SQLite:
		return SQLite, nil
	case MySQL:
		return MySQL, nil
	case Postgres, "postgresql":
		return Postgres, nil
	default:
		return "", fmt.Errorf("dialect: unknown dialect %q", name)
	}
}

// ExecQuerier wraps the two standard database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v for drivers that support it.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps database transaction operations.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
