// Package dialect identifies the database backends targeted by sqlkit.
//
// Every statement in sqlkit is rendered for a concrete dialect. The
// package defines the canonical dialect names and the small driver
// interfaces used by the execution layer in the root package.
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// User-supplied names are normalized with Parse, which is
// case-insensitive and accepts "postgresql" as an alias:
//
//	d, err := dialect.Parse("PostgreSQL")
//	// d == dialect.Postgres
//
// # Driver Interface
//
// The Driver interface abstracts the underlying connection so the
// execution helpers can run against database/sql, a transaction, or a
// test double:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface extends ExecQuerier with Commit and Rollback, and
// ExecQuerier is the subset implemented by both drivers and
// transactions.
package dialect
