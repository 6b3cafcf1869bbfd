package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// assignment is an ordered column/expression pair used by UPDATE and
// upsert actions.
type assignment struct {
	col  string
	expr Expr
}

// Insert builds an INSERT statement.
type Insert struct {
	table         TableName
	replace       bool
	defaultValues bool
	cols          []string
	rows          [][]Expr
	conflict      *OnConflict
	returning     []SelectExpr
	err           error
}

// NewInsert returns a new INSERT builder targeting the given table. The
// table may be a dotted string, a TableName or a *Table.
func NewInsert(table any) *Insert {
	i := &Insert{}
	ref, err := resolveTable(table)
	switch {
	case err != nil:
		i.err = err
	case ref.sub != nil || ref.fn != nil || ref.alias != "":
		i.err = NewStructuralError("INSERT target must be a plain table")
	default:
		i.table = ref.name
	}
	return i
}

func (i *Insert) setErr(err error) {
	if i.err == nil {
		i.err = err
	}
}

// Replace renders the statement as REPLACE INTO on MySQL and INSERT OR
// REPLACE INTO on SQLite. Postgres rejects it at render time.
func (i *Insert) Replace() *Insert {
	i.replace = true
	return i
}

// Columns sets the column list. Value rows must match its length.
func (i *Insert) Columns(cols ...string) *Insert {
	i.cols = append(i.cols[:0], cols...)
	return i
}

// Values appends one row of values. Each value may be a plain Go value,
// an Expr, a *FunctionCall or a *Select.
func (i *Insert) Values(vals ...any) *Insert {
	if len(i.cols) > 0 && len(vals) != len(i.cols) {
		i.setErr(NewStructuralError("values length %d does not match columns length %d", len(vals), len(i.cols)))
		return i
	}
	i.rows = append(i.rows, toExprs(vals))
	return i
}

// DefaultValues inserts a single row of column defaults.
func (i *Insert) DefaultValues() *Insert {
	i.defaultValues = true
	return i
}

// OnConflict attaches an upsert clause.
func (i *Insert) OnConflict(oc *OnConflict) *Insert {
	i.conflict = oc
	return i
}

// Returning appends RETURNING columns. MySQL rejects RETURNING at
// render time.
func (i *Insert) Returning(cols ...any) *Insert {
	for _, c := range cols {
		i.returning = append(i.returning, SelectExpr{Expr: toColExpr(c)})
	}
	return i
}

// ReturningAll returns all columns of the inserted rows.
func (i *Insert) ReturningAll() *Insert {
	i.returning = append(i.returning, SelectExpr{Expr: Asterisk()})
	return i
}

// Build renders the statement with parameter placeholders.
func (i *Insert) Build(d string) (string, []*Value, error) {
	return buildStmt(i, d, false)
}

// ToSQL renders the statement with inlined literal values.
func (i *Insert) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(i, d, true)
	return sql, err
}

func (i *Insert) render(w *writer) {
	if i.err != nil {
		w.fail(i.err)
		return
	}
	if i.replace {
		switch w.spec.name {
		case dialect.MySQL:
			w.write("REPLACE INTO ")
		case dialect.SQLite:
			w.write("INSERT OR REPLACE INTO ")
		default:
			w.fail(NewUnsupportedOperationError("REPLACE", w.spec.name))
			return
		}
	} else {
		w.write("INSERT INTO ")
	}
	w.tableName(i.table)
	if len(i.cols) > 0 {
		w.write(" (")
		for n, c := range i.cols {
			if n > 0 {
				w.write(", ")
			}
			w.ident(c)
		}
		w.byte(')')
	}
	switch {
	case len(i.rows) > 0:
		w.write(" VALUES ")
		for r, row := range i.rows {
			if len(i.cols) > 0 && len(row) != len(i.cols) {
				w.fail(NewStructuralError("values length %d does not match columns length %d", len(row), len(i.cols)))
				return
			}
			if r > 0 {
				w.write(", ")
			}
			w.byte('(')
			for n, v := range row {
				if n > 0 {
					w.write(", ")
				}
				w.expr(v)
			}
			w.byte(')')
		}
	case i.defaultValues:
		if w.spec.name == dialect.MySQL {
			w.write(" VALUES ()")
		} else {
			w.write(" DEFAULT VALUES")
		}
	default:
		w.fail(NewStructuralError("INSERT has no values"))
		return
	}
	if i.conflict != nil {
		i.conflict.render(w)
	}
	renderReturning(w, i.returning)
}

// OnConflict builds the upsert clause of an INSERT: the conflict
// targets and either DO NOTHING or an update action.
type OnConflict struct {
	targets     []string
	targetWhere []Expr
	doNothing   bool
	keys        []string
	updateCols  []string
	sets        []assignment
	actionWhere []Expr
}

// NewOnConflict returns an upsert clause for the given conflict target
// columns. Postgres and SQLite render the targets; MySQL's ON DUPLICATE
// KEY polyfill ignores them.
func NewOnConflict(targets ...string) *OnConflict {
	return &OnConflict{targets: targets}
}

// DoNothing ignores conflicting rows. MySQL has no DO NOTHING; the
// given keys render as no-op assignments ("k" = "k") instead, and at
// least one key or target is required there.
func (oc *OnConflict) DoNothing(keys ...string) *OnConflict {
	oc.doNothing = true
	oc.keys = append(oc.keys, keys...)
	return oc
}

// DoUpdate updates the given columns with the values proposed for
// insertion (the excluded row).
func (oc *OnConflict) DoUpdate(cols ...string) *OnConflict {
	oc.updateCols = append(oc.updateCols, cols...)
	return oc
}

// Set assigns an explicit expression to a column on conflict.
func (oc *OnConflict) Set(col string, v any) *OnConflict {
	oc.sets = append(oc.sets, assignment{col: col, expr: toExpr(v)})
	return oc
}

// TargetWhere appends a predicate on the conflict target (partial index
// upserts). Repeated calls combine with AND.
func (oc *OnConflict) TargetWhere(p Expr) *OnConflict {
	oc.targetWhere = append(oc.targetWhere, p)
	return oc
}

// ActionWhere appends a predicate on the update action. Repeated calls
// combine with AND.
func (oc *OnConflict) ActionWhere(p Expr) *OnConflict {
	oc.actionWhere = append(oc.actionWhere, p)
	return oc
}

func (oc *OnConflict) render(w *writer) {
	if w.spec.name == dialect.MySQL {
		oc.renderMySQL(w)
		return
	}
	w.write(" ON CONFLICT")
	if len(oc.targets) > 0 {
		w.write(" (")
		for i, t := range oc.targets {
			if i > 0 {
				w.write(", ")
			}
			w.ident(t)
		}
		w.byte(')')
	}
	if len(oc.targetWhere) > 0 {
		w.write(" WHERE ")
		renderPredicates(w, oc.targetWhere)
	}
	if oc.doNothing {
		w.write(" DO NOTHING")
		return
	}
	if len(oc.updateCols) == 0 && len(oc.sets) == 0 {
		w.fail(NewStructuralError("ON CONFLICT has no action"))
		return
	}
	w.write(" DO UPDATE SET ")
	first := true
	for _, c := range oc.updateCols {
		if !first {
			w.write(", ")
		}
		first = false
		w.ident(c)
		w.write(" = ")
		w.ident("excluded")
		w.byte('.')
		w.ident(c)
	}
	for _, a := range oc.sets {
		if !first {
			w.write(", ")
		}
		first = false
		w.ident(a.col)
		w.write(" = ")
		w.expr(a.expr)
	}
	if len(oc.actionWhere) > 0 {
		w.write(" WHERE ")
		renderPredicates(w, oc.actionWhere)
	}
}

func (oc *OnConflict) renderMySQL(w *writer) {
	if len(oc.targetWhere) > 0 || len(oc.actionWhere) > 0 {
		w.fail(NewUnsupportedOperationError("conditional upsert", w.spec.name))
		return
	}
	w.write(" ON DUPLICATE KEY UPDATE ")
	if oc.doNothing {
		keys := oc.keys
		if len(keys) == 0 {
			keys = oc.targets
		}
		if len(keys) == 0 {
			w.fail(NewUnsupportedOperationError("DO NOTHING without key columns", w.spec.name))
			return
		}
		for i, k := range keys {
			if i > 0 {
				w.write(", ")
			}
			w.ident(k)
			w.write(" = ")
			w.ident(k)
		}
		return
	}
	if len(oc.updateCols) == 0 && len(oc.sets) == 0 {
		w.fail(NewStructuralError("ON CONFLICT has no action"))
		return
	}
	first := true
	for _, c := range oc.updateCols {
		if !first {
			w.write(", ")
		}
		first = false
		w.ident(c)
		w.write(" = VALUES(")
		w.ident(c)
		w.byte(')')
	}
	for _, a := range oc.sets {
		if !first {
			w.write(", ")
		}
		first = false
		w.ident(a.col)
		w.write(" = ")
		w.expr(a.expr)
	}
}
