package sqlkit

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/syssam/sqlkit/dialect"
)

// ExecQuerier wraps the standard Exec and Query methods of *sql.DB,
// *sql.Conn and *sql.Tx.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.ExecQuerier over an ExecQuerier.
type Conn struct {
	ExecQuerier
}

// Exec implements the dialect.Exec method. v may be nil or a
// *sql.Result to receive the execution result.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("sqlkit: invalid type %T. expect []any for args", args)
	}
	switch v := v.(type) {
	case nil:
		if _, err := c.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("sqlkit: exec: %w", err)
		}
	case *sql.Result:
		res, err := c.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("sqlkit: exec: %w", err)
		}
		*v = res
	default:
		return fmt.Errorf("sqlkit: invalid type %T. expect *sql.Result", v)
	}
	return nil
}

// Query implements the dialect.Query method. v must be a *Rows.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("sqlkit: invalid type %T. expect *sqlkit.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("sqlkit: invalid type %T. expect []any for args", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("sqlkit: query: %w", err)
	}
	*vr = Rows{rows}
	return nil
}

// Driver is a dialect.Driver over a database/sql connection that also
// executes built statements directly.
type Driver struct {
	Conn
	dialect string
}

// NewDriver returns a Driver for the given dialect and connection.
func NewDriver(d string, c Conn) *Driver {
	return &Driver{Conn: c, dialect: d}
}

// Open opens a database/sql connection for the given driver name and
// returns a Driver bound to the matching dialect. The driver name must
// parse as a dialect.
func Open(driverName, source string) (*Driver, error) {
	d, err := dialect.Parse(driverName)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(d, Conn{db}), nil
}

// OpenDB wraps an existing *sql.DB with a Driver for the given dialect.
func OpenDB(d string, db *sql.DB) *Driver {
	return NewDriver(d, Conn{db})
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect implements the dialect.Driver method.
func (d *Driver) Dialect() string { return d.dialect }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx starts and returns a transaction.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{Conn: Conn{tx}, Tx: tx}, nil
}

// ExecStmt builds s with the driver's dialect and executes it. v may be
// nil or a *sql.Result.
func (d *Driver) ExecStmt(ctx context.Context, s Statement, v any) error {
	query, args, err := buildArgs(s, d.dialect)
	if err != nil {
		return err
	}
	return d.Exec(ctx, query, args, v)
}

// QueryStmt builds s with the driver's dialect and executes it,
// scanning rows into v.
func (d *Driver) QueryStmt(ctx context.Context, s Statement, v *Rows) error {
	query, args, err := buildArgs(s, d.dialect)
	if err != nil {
		return err
	}
	return d.Query(ctx, query, args, v)
}

// buildArgs renders s and converts its values to driver arguments.
func buildArgs(s Statement, d string) (string, []any, error) {
	query, vals, err := s.Build(d)
	if err != nil {
		return "", nil, err
	}
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v.Any()
	}
	return query, args, nil
}

// Tx implements the dialect.Tx interface.
type Tx struct {
	Conn
	driver.Tx
}

// ExecStmt builds s with the given dialect and executes it within the
// transaction.
func (tx *Tx) ExecStmt(ctx context.Context, d string, s Statement, v any) error {
	query, args, err := buildArgs(s, d)
	if err != nil {
		return err
	}
	return tx.Exec(ctx, query, args, v)
}

// QueryStmt builds s with the given dialect and executes it within the
// transaction.
func (tx *Tx) QueryStmt(ctx context.Context, d string, s Statement, v *Rows) error {
	query, args, err := buildArgs(s, d)
	if err != nil {
		return err
	}
	return tx.Query(ctx, query, args, v)
}

var _ dialect.Driver = (*Driver)(nil)

type (
	// Rows wraps the sql.Rows to avoid locks copy.
	Rows struct{ ColumnScanner }
	// Result is an alias to sql.Result.
	Result = sql.Result
	// TxOptions holds the transaction options to be used in BeginTx.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the interface that wraps the standard sql.Rows
// methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
