package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

type nullOrder uint8

const (
	nullsDefault nullOrder = iota
	nullsFirst
	nullsLast
)

// OrderClause is a single ORDER BY term: a target expression, a
// direction, and an optional null placement.
type OrderClause struct {
	target Expr
	desc   bool
	nulls  nullOrder
}

// Asc returns an ascending order term. The target may be an Expr, a
// dotted column string, a ColumnRef or a function call.
func Asc(target any) OrderClause {
	return OrderClause{target: toColExpr(target)}
}

// Desc returns a descending order term.
func Desc(target any) OrderClause {
	return OrderClause{target: toColExpr(target), desc: true}
}

// NullsFirst places NULL values before all others. MySQL has no native
// syntax for it; the renderer emits an IS NULL sort key instead.
func (o OrderClause) NullsFirst() OrderClause {
	o.nulls = nullsFirst
	return o
}

// NullsLast places NULL values after all others.
func (o OrderClause) NullsLast() OrderClause {
	o.nulls = nullsLast
	return o
}

func (o OrderClause) render(w *writer) {
	if w.spec.name == dialect.MySQL && o.nulls != nullsDefault {
		// MySQL sorts NULLs first ascending; emulate explicit
		// placement with a leading IS NULL sort key.
		w.exprPrec(o.target, 4, false, false)
		if o.nulls == nullsFirst {
			w.write(" IS NULL DESC, ")
		} else {
			w.write(" IS NULL ASC, ")
		}
	}
	w.expr(o.target)
	if o.desc {
		w.write(" DESC")
	} else {
		w.write(" ASC")
	}
	if w.spec.name != dialect.MySQL {
		switch o.nulls {
		case nullsFirst:
			w.write(" NULLS FIRST")
		case nullsLast:
			w.write(" NULLS LAST")
		}
	}
}

func renderOrderBy(w *writer, orders []OrderClause) {
	if len(orders) == 0 {
		return
	}
	w.write(" ORDER BY ")
	for i, o := range orders {
		if i > 0 {
			w.write(", ")
		}
		o.render(w)
	}
}

type lockClause struct {
	strength string // "UPDATE" or "SHARE"
	noWait   bool
	skip     bool
	tables   []TableName
}

// LockOption configures a row locking clause.
type LockOption func(*lockClause)

// NoWait makes the lock fail immediately instead of waiting for
// conflicting rows to be released.
func NoWait() LockOption {
	return func(l *lockClause) { l.noWait = true }
}

// SkipLocked skips rows that are already locked.
func SkipLocked() LockOption {
	return func(l *lockClause) { l.skip = true }
}

// OfTables restricts the lock to rows of the given tables.
func OfTables(tables ...TableName) LockOption {
	return func(l *lockClause) { l.tables = append(l.tables, tables...) }
}

func (l *lockClause) render(w *writer) {
	if w.spec.name == dialect.SQLite {
		w.fail(NewUnsupportedOperationError("row locking", w.spec.name))
		return
	}
	w.write(" FOR ")
	w.write(l.strength)
	if len(l.tables) > 0 {
		w.write(" OF ")
		for i, t := range l.tables {
			if i > 0 {
				w.write(", ")
			}
			w.tableName(t)
		}
	}
	if l.noWait {
		w.write(" NOWAIT")
	}
	if l.skip {
		w.write(" SKIP LOCKED")
	}
}
