package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// Delete builds a DELETE statement.
type Delete struct {
	table     TableName
	wheres    []Expr
	orders    []OrderClause
	limit     *uint64
	returning []SelectExpr
	err       error
}

// NewDelete returns a new DELETE builder targeting the given table.
func NewDelete(table any) *Delete {
	d := &Delete{}
	ref, err := resolveTable(table)
	switch {
	case err != nil:
		d.err = err
	case ref.sub != nil || ref.fn != nil || ref.alias != "":
		d.err = NewStructuralError("DELETE target must be a plain table")
	default:
		d.table = ref.name
	}
	return d
}

// Where appends a predicate. Repeated calls combine with AND.
func (d *Delete) Where(p Expr) *Delete {
	d.wheres = append(d.wheres, p)
	return d
}

// OrderBy appends ordering terms. Postgres rejects ordered deletes at
// render time.
func (d *Delete) OrderBy(orders ...OrderClause) *Delete {
	d.orders = append(d.orders, orders...)
	return d
}

// Limit bounds the number of deleted rows. Repeated calls overwrite.
// Postgres rejects bounded deletes at render time.
func (d *Delete) Limit(n uint64) *Delete {
	d.limit = &n
	return d
}

// Returning appends RETURNING columns. MySQL rejects RETURNING at
// render time.
func (d *Delete) Returning(cols ...any) *Delete {
	for _, c := range cols {
		d.returning = append(d.returning, SelectExpr{Expr: toColExpr(c)})
	}
	return d
}

// ReturningAll returns all columns of the deleted rows.
func (d *Delete) ReturningAll() *Delete {
	d.returning = append(d.returning, SelectExpr{Expr: Asterisk()})
	return d
}

// Build renders the statement with parameter placeholders.
func (d *Delete) Build(dl string) (string, []*Value, error) {
	return buildStmt(d, dl, false)
}

// ToSQL renders the statement with inlined literal values.
func (d *Delete) ToSQL(dl string) (string, error) {
	sql, _, err := buildStmt(d, dl, true)
	return sql, err
}

func (d *Delete) render(w *writer) {
	if d.err != nil {
		w.fail(d.err)
		return
	}
	if (d.limit != nil || len(d.orders) > 0) && w.spec.name == dialect.Postgres {
		w.fail(NewUnsupportedOperationError("bounded DELETE", w.spec.name))
		return
	}
	w.write("DELETE FROM ")
	w.tableName(d.table)
	renderWhere(w, d.wheres)
	renderOrderBy(w, d.orders)
	if d.limit != nil {
		w.write(" LIMIT ")
		v, err := Adapt(*d.limit, BigUnsigned())
		if err != nil {
			w.fail(err)
			return
		}
		w.value(v)
	}
	renderReturning(w, d.returning)
}
