package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// SelectExpr is a projection item: an expression with an optional alias.
type SelectExpr struct {
	Expr  Expr
	Alias string
}

// tableRef is a resolved FROM or JOIN target: a plain table, an aliased
// subquery, or an aliased set-returning function.
type tableRef struct {
	name  TableName
	alias string
	sub   *Select
	fn    *FunctionCall
}

func resolveTable(v any) (tableRef, error) {
	switch x := v.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			return tableRef{}, err
		}
		return tableRef{name: tn}, nil
	case TableName:
		return tableRef{name: x}, nil
	case *Table:
		return tableRef{name: x.name}, nil
	case *AliasedTable:
		return tableRef{name: x.table.name, alias: x.alias}, nil
	default:
		return tableRef{}, NewStructuralError("cannot use %T as a table reference", v)
	}
}

func (t tableRef) render(w *writer) {
	switch {
	case t.sub != nil:
		w.byte('(')
		t.sub.render(w)
		w.byte(')')
	case t.fn != nil:
		w.funcCall(t.fn)
	default:
		w.tableName(t.name)
	}
	if t.alias != "" {
		w.write(" AS ")
		w.ident(t.alias)
	}
}

type joinClause struct {
	kind    string // "", "INNER", "LEFT", "RIGHT", "FULL OUTER", "CROSS"
	lateral bool
	table   tableRef
	on      Expr
}

type unionClause struct {
	kind string // "", "ALL", "INTERSECT", "EXCEPT"
	stmt *Select
}

// Select builds a SELECT statement. The builder is mutable; rendering
// with Build or ToSQL never mutates it.
type Select struct {
	distinct   bool
	distinctOn []Expr
	cols       []SelectExpr
	froms      []tableRef
	joins      []joinClause
	wheres     []Expr
	groups     []Expr
	havings    []Expr
	orders     []OrderClause
	limit      *uint64
	offset     *uint64
	unions     []unionClause
	lock       *lockClause
	err        error
}

// NewSelect returns a new SELECT builder.
func NewSelect() *Select {
	return &Select{}
}

func (s *Select) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}

// Columns appends projection items. Each column may be an Expr, a
// dotted column string, a ColumnRef, a *FunctionCall or a *Select.
func (s *Select) Columns(cols ...any) *Select {
	for _, c := range cols {
		s.cols = append(s.cols, SelectExpr{Expr: toColExpr(c)})
	}
	return s
}

// ColumnAs appends a single aliased projection item.
func (s *Select) ColumnAs(col any, alias string) *Select {
	s.cols = append(s.cols, SelectExpr{Expr: toColExpr(col), Alias: alias})
	return s
}

// Distinct makes the statement return distinct rows only.
func (s *Select) Distinct() *Select {
	s.distinct = true
	return s
}

// DistinctOn makes the statement distinct on the given columns
// (Postgres DISTINCT ON).
func (s *Select) DistinctOn(cols ...any) *Select {
	s.distinct = true
	s.distinctOn = append(s.distinctOn, toColExprs(cols)...)
	return s
}

// From appends a FROM target. Multiple targets render comma-separated.
func (s *Select) From(v any) *Select {
	ref, err := resolveTable(v)
	if err != nil {
		s.setErr(err)
		return s
	}
	s.froms = append(s.froms, ref)
	return s
}

// FromAlias appends an aliased FROM target.
func (s *Select) FromAlias(v any, alias string) *Select {
	ref, err := resolveTable(v)
	if err != nil {
		s.setErr(err)
		return s
	}
	ref.alias = alias
	s.froms = append(s.froms, ref)
	return s
}

// FromSubquery appends a subquery FROM target with the given alias.
func (s *Select) FromSubquery(sub *Select, alias string) *Select {
	if sub == s {
		s.setErr(NewStructuralError("a SELECT statement cannot select from itself"))
		return s
	}
	s.froms = append(s.froms, tableRef{sub: sub, alias: alias})
	return s
}

// FromFunction appends a set-returning function FROM target with the
// given alias.
func (s *Select) FromFunction(fn *FunctionCall, alias string) *Select {
	s.froms = append(s.froms, tableRef{fn: fn, alias: alias})
	return s
}

func (s *Select) join(kind string, v any, on Expr) *Select {
	ref, err := resolveTable(v)
	if err != nil {
		s.setErr(err)
		return s
	}
	s.joins = append(s.joins, joinClause{kind: kind, table: ref, on: on})
	return s
}

// Join appends a plain JOIN.
func (s *Select) Join(v any, on Expr) *Select {
	return s.join("", v, on)
}

// InnerJoin appends an INNER JOIN.
func (s *Select) InnerJoin(v any, on Expr) *Select {
	return s.join("INNER", v, on)
}

// LeftJoin appends a LEFT JOIN.
func (s *Select) LeftJoin(v any, on Expr) *Select {
	return s.join("LEFT", v, on)
}

// RightJoin appends a RIGHT JOIN.
func (s *Select) RightJoin(v any, on Expr) *Select {
	return s.join("RIGHT", v, on)
}

// FullJoin appends a FULL OUTER JOIN.
func (s *Select) FullJoin(v any, on Expr) *Select {
	return s.join("FULL OUTER", v, on)
}

// CrossJoin appends a CROSS JOIN.
func (s *Select) CrossJoin(v any) *Select {
	ref, err := resolveTable(v)
	if err != nil {
		s.setErr(err)
		return s
	}
	s.joins = append(s.joins, joinClause{kind: "CROSS", table: ref})
	return s
}

// JoinLateral appends a lateral subquery join. SQLite has no LATERAL
// support and rejects it at render time.
func (s *Select) JoinLateral(kind string, sub *Select, alias string, on Expr) *Select {
	if sub == s {
		s.setErr(NewStructuralError("a SELECT statement cannot join itself"))
		return s
	}
	s.joins = append(s.joins, joinClause{kind: kind, lateral: true, table: tableRef{sub: sub, alias: alias}, on: on})
	return s
}

// Where appends a predicate. Repeated calls combine with AND.
func (s *Select) Where(p Expr) *Select {
	s.wheres = append(s.wheres, p)
	return s
}

// GroupBy appends grouping terms.
func (s *Select) GroupBy(cols ...any) *Select {
	s.groups = append(s.groups, toColExprs(cols)...)
	return s
}

// Having appends a HAVING predicate. Repeated calls combine with AND.
func (s *Select) Having(p Expr) *Select {
	s.havings = append(s.havings, p)
	return s
}

// OrderBy appends ordering terms.
func (s *Select) OrderBy(orders ...OrderClause) *Select {
	s.orders = append(s.orders, orders...)
	return s
}

// Limit sets the row limit. Repeated calls overwrite.
func (s *Select) Limit(n uint64) *Select {
	s.limit = &n
	return s
}

// Offset sets the row offset. Repeated calls overwrite.
func (s *Select) Offset(n uint64) *Select {
	s.offset = &n
	return s
}

func (s *Select) union(kind string, o *Select) *Select {
	if o == s {
		s.setErr(NewStructuralError("a SELECT statement cannot be combined with itself"))
		return s
	}
	s.unions = append(s.unions, unionClause{kind: kind, stmt: o})
	return s
}

// Union appends a UNION (distinct) of another SELECT.
func (s *Select) Union(o *Select) *Select {
	return s.union("", o)
}

// UnionAll appends a UNION ALL of another SELECT.
func (s *Select) UnionAll(o *Select) *Select {
	return s.union("ALL", o)
}

// Intersect appends an INTERSECT of another SELECT.
func (s *Select) Intersect(o *Select) *Select {
	return s.union("INTERSECT", o)
}

// Except appends an EXCEPT of another SELECT.
func (s *Select) Except(o *Select) *Select {
	return s.union("EXCEPT", o)
}

// ForUpdate locks the selected rows for update. SQLite rejects row
// locking at render time.
func (s *Select) ForUpdate(opts ...LockOption) *Select {
	l := &lockClause{strength: "UPDATE"}
	for _, opt := range opts {
		opt(l)
	}
	s.lock = l
	return s
}

// ForShare locks the selected rows in shared mode.
func (s *Select) ForShare(opts ...LockOption) *Select {
	l := &lockClause{strength: "SHARE"}
	for _, opt := range opts {
		opt(l)
	}
	s.lock = l
	return s
}

// Build renders the statement with parameter placeholders.
func (s *Select) Build(d string) (string, []*Value, error) {
	return buildStmt(s, d, false)
}

// ToSQL renders the statement with inlined literal values.
func (s *Select) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(s, d, true)
	return sql, err
}

func (s *Select) render(w *writer) {
	if s.err != nil {
		w.fail(s.err)
		return
	}
	w.write("SELECT ")
	if s.distinct {
		if len(s.distinctOn) > 0 {
			if w.spec.name != dialect.Postgres {
				w.fail(NewUnsupportedOperationError("DISTINCT ON", w.spec.name))
				return
			}
			w.write("DISTINCT ON (")
			for i, e := range s.distinctOn {
				if i > 0 {
					w.write(", ")
				}
				w.expr(e)
			}
			w.write(") ")
		} else {
			w.write("DISTINCT ")
		}
	}
	if len(s.cols) == 0 {
		w.byte('*')
	} else {
		for i, c := range s.cols {
			if i > 0 {
				w.write(", ")
			}
			w.expr(c.Expr)
			if c.Alias != "" {
				w.write(" AS ")
				w.ident(c.Alias)
			}
		}
	}
	if len(s.froms) > 0 {
		w.write(" FROM ")
		for i, f := range s.froms {
			if i > 0 {
				w.write(", ")
			}
			f.render(w)
		}
	}
	for _, j := range s.joins {
		w.byte(' ')
		if j.kind != "" {
			w.write(j.kind)
			w.byte(' ')
		}
		w.write("JOIN ")
		if j.lateral {
			if w.spec.name == dialect.SQLite {
				w.fail(NewUnsupportedOperationError("LATERAL join", w.spec.name))
				return
			}
			w.write("LATERAL ")
		}
		j.table.render(w)
		if j.on.n != nil {
			w.write(" ON ")
			w.expr(j.on)
		}
	}
	renderWhere(w, s.wheres)
	if len(s.groups) > 0 {
		w.write(" GROUP BY ")
		for i, g := range s.groups {
			if i > 0 {
				w.write(", ")
			}
			w.expr(g)
		}
	}
	if len(s.havings) > 0 {
		w.write(" HAVING ")
		renderPredicates(w, s.havings)
	}
	for _, u := range s.unions {
		switch u.kind {
		case "":
			w.write(" UNION (")
		case "ALL":
			w.write(" UNION ALL (")
		case "INTERSECT":
			w.write(" INTERSECT (")
		case "EXCEPT":
			w.write(" EXCEPT (")
		}
		u.stmt.render(w)
		w.byte(')')
	}
	renderOrderBy(w, s.orders)
	renderLimitOffset(w, s.limit, s.offset)
	if s.lock != nil {
		s.lock.render(w)
	}
}

// renderPredicates joins predicates with AND.
func renderPredicates(w *writer, ps []Expr) {
	combined := ps[0]
	for _, p := range ps[1:] {
		combined = combined.And(p)
	}
	w.expr(combined)
}

func renderWhere(w *writer, ps []Expr) {
	if len(ps) == 0 {
		return
	}
	w.write(" WHERE ")
	renderPredicates(w, ps)
}

func renderLimitOffset(w *writer, limit, offset *uint64) {
	if limit != nil {
		w.write(" LIMIT ")
		v, err := Adapt(*limit, BigUnsigned())
		if err != nil {
			w.fail(err)
			return
		}
		w.value(v)
	} else if offset != nil && w.spec.name == dialect.MySQL {
		// MySQL cannot express OFFSET without LIMIT.
		w.write(" LIMIT 18446744073709551615")
	}
	if offset != nil {
		w.write(" OFFSET ")
		v, err := Adapt(*offset, BigUnsigned())
		if err != nil {
			w.fail(err)
			return
		}
		w.value(v)
	}
}

func renderReturning(w *writer, cols []SelectExpr) {
	if len(cols) == 0 {
		return
	}
	if w.spec.name == dialect.MySQL {
		w.fail(NewUnsupportedOperationError("RETURNING", w.spec.name))
		return
	}
	w.write(" RETURNING ")
	for i, c := range cols {
		if i > 0 {
			w.write(", ")
		}
		w.expr(c.Expr)
		if c.Alias != "" {
			w.write(" AS ")
			w.ident(c.Alias)
		}
	}
}
