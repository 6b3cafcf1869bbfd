package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// Update builds an UPDATE statement. Assignments keep the order they
// were set in.
type Update struct {
	table     TableName
	from      []tableRef
	sets      []assignment
	wheres    []Expr
	orders    []OrderClause
	limit     *uint64
	returning []SelectExpr
	err       error
}

// NewUpdate returns a new UPDATE builder targeting the given table.
func NewUpdate(table any) *Update {
	u := &Update{}
	ref, err := resolveTable(table)
	switch {
	case err != nil:
		u.err = err
	case ref.sub != nil || ref.fn != nil || ref.alias != "":
		u.err = NewStructuralError("UPDATE target must be a plain table")
	default:
		u.table = ref.name
	}
	return u
}

func (u *Update) setErr(err error) {
	if u.err == nil {
		u.err = err
	}
}

// Set assigns a value or expression to a column. Repeated calls append
// in order.
func (u *Update) Set(col string, v any) *Update {
	u.sets = append(u.sets, assignment{col: col, expr: toExpr(v)})
	return u
}

// From appends an additional table joined into the update. Postgres and
// SQLite render UPDATE ... FROM; MySQL rewrites it into a multi-table
// update.
func (u *Update) From(v any) *Update {
	ref, err := resolveTable(v)
	if err != nil {
		u.setErr(err)
		return u
	}
	u.from = append(u.from, ref)
	return u
}

// Where appends a predicate. Repeated calls combine with AND.
func (u *Update) Where(p Expr) *Update {
	u.wheres = append(u.wheres, p)
	return u
}

// OrderBy appends ordering terms. Postgres rejects ordered updates at
// render time.
func (u *Update) OrderBy(orders ...OrderClause) *Update {
	u.orders = append(u.orders, orders...)
	return u
}

// Limit bounds the number of updated rows. Repeated calls overwrite.
// Postgres rejects bounded updates at render time.
func (u *Update) Limit(n uint64) *Update {
	u.limit = &n
	return u
}

// Returning appends RETURNING columns. MySQL rejects RETURNING at
// render time.
func (u *Update) Returning(cols ...any) *Update {
	for _, c := range cols {
		u.returning = append(u.returning, SelectExpr{Expr: toColExpr(c)})
	}
	return u
}

// ReturningAll returns all columns of the updated rows.
func (u *Update) ReturningAll() *Update {
	u.returning = append(u.returning, SelectExpr{Expr: Asterisk()})
	return u
}

// Build renders the statement with parameter placeholders.
func (u *Update) Build(d string) (string, []*Value, error) {
	return buildStmt(u, d, false)
}

// ToSQL renders the statement with inlined literal values.
func (u *Update) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(u, d, true)
	return sql, err
}

func (u *Update) render(w *writer) {
	if u.err != nil {
		w.fail(u.err)
		return
	}
	if len(u.sets) == 0 {
		w.fail(NewStructuralError("UPDATE has no assignments"))
		return
	}
	if (u.limit != nil || len(u.orders) > 0) && w.spec.name == dialect.Postgres {
		w.fail(NewUnsupportedOperationError("bounded UPDATE", w.spec.name))
		return
	}
	w.write("UPDATE ")
	w.tableName(u.table)
	if len(u.from) > 0 && w.spec.name == dialect.MySQL {
		for _, f := range u.from {
			w.write(", ")
			f.render(w)
		}
	}
	w.write(" SET ")
	for i, a := range u.sets {
		if i > 0 {
			w.write(", ")
		}
		w.ident(a.col)
		w.write(" = ")
		w.expr(a.expr)
	}
	if len(u.from) > 0 && w.spec.name != dialect.MySQL {
		w.write(" FROM ")
		for i, f := range u.from {
			if i > 0 {
				w.write(", ")
			}
			f.render(w)
		}
	}
	renderWhere(w, u.wheres)
	renderOrderBy(w, u.orders)
	if u.limit != nil {
		w.write(" LIMIT ")
		v, err := Adapt(*u.limit, BigUnsigned())
		if err != nil {
			w.fail(err)
			return
		}
		w.value(v)
	}
	renderReturning(w, u.returning)
}
