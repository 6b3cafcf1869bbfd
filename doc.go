// Package sqlkit builds SQL statements for SQLite, MySQL and
// PostgreSQL from a single dialect-agnostic API.
//
// Statements are assembled from typed expressions and rendered for a
// target dialect at the last moment, either with parameter
// placeholders or as inline SQL:
//
//	q := sqlkit.NewSelect().
//	    From("users").
//	    Where(sqlkit.C("name").Like("%bob%"))
//	sql, args, err := q.Build(dialect.Postgres)
//	// SELECT * FROM "users" WHERE "name" LIKE $1
//
// # Expressions
//
// Expr values form an immutable expression tree. C parses a dotted
// column reference, Val adapts a Go value, and methods such as EQ, Add
// and Between combine expressions:
//
//	sqlkit.C("wallets.amount").Add(sqlkit.Val(10))
//	sqlkit.C("id").Between(sqlkit.Val(1), sqlkit.Val(100))
//
// Conditional results use NewCase, and aggregate calls become window
// functions with Over:
//
//	sqlkit.NewCase().When(sqlkit.C("age").LT(18), "minor").Else("adult").Expr()
//	sqlkit.RowNumber().Over(sqlkit.NewWindow("dept").OrderBy(sqlkit.Desc("salary")))
//
// Construction never fails eagerly; invalid input surfaces as an error
// from Build or ToSQL, and a failed render produces no partial SQL.
//
// # Values
//
// Values pass through column types before rendering. Adapt validates a
// Go value against a ColumnType, and AdaptAny infers a reasonable type
// when none is given:
//
//	v, err := sqlkit.Adapt("a1b2", sqlkit.Varchar(16))
//	v, err = sqlkit.Adapt(uuid.New(), sqlkit.UUID())
//
// # Dialects
//
// Each renderer handles its dialect's quoting, placeholders and
// capability gaps. Operations a dialect cannot express fail with an
// UnsupportedOperationError rather than emitting invalid SQL.
//
// # Schema
//
// Table, Column, Index and AlterTable build DDL statements with the
// same Build and ToSQL contract as the query builders.
//
// # Execution
//
// Driver wraps a database/sql connection and executes built statements
// directly:
//
//	drv, err := sqlkit.Open("postgres", dsn)
//	var res sqlkit.Result
//	err = drv.ExecStmt(ctx, insert, &res)
package sqlkit
