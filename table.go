package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// Table describes a table for CREATE TABLE statements and serves as a
// column-qualifying handle in queries.
type Table struct {
	name        TableName
	columns     []*Column
	indexes     []*Index
	fks         []*ForeignKey
	checks      []Expr
	ifNotExists bool
	temporary   bool
	comment     string
	engine      string
	charset     string
	collate     string
	extra       string
	err         error
}

// NewTable returns a new table definition. The name may be a dotted
// string or a TableName.
func NewTable(name any) *Table {
	t := &Table{}
	switch x := name.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			t.err = err
			return t
		}
		t.name = tn
	case TableName:
		t.name = x
	default:
		t.err = NewStructuralError("cannot use %T as a table name", name)
	}
	return t
}

func (t *Table) setErr(err error) {
	if t.err == nil {
		t.err = err
	}
}

// Name returns the table name.
func (t *Table) Name() TableName { return t.name }

// AddColumn appends a column. Duplicate column names are rejected.
func (t *Table) AddColumn(c *Column) *Table {
	for _, existing := range t.columns {
		if existing.name == c.name {
			t.setErr(NewStructuralError("duplicate column %q in table %q", c.name, t.name.Name))
			return t
		}
	}
	t.columns = append(t.columns, c)
	return t
}

// Column returns the column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Columns returns the columns in definition order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// RemoveColumn removes the column with the given name and reports
// whether it was present.
func (t *Table) RemoveColumn(name string) bool {
	for i, c := range t.columns {
		if c.name == name {
			t.columns = append(t.columns[:i], t.columns[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of columns.
func (t *Table) Len() int { return len(t.columns) }

// C returns an expression referencing the named column, qualified by
// the table name.
func (t *Table) C(name string) Expr {
	return Col(ColumnRef{Name: name, Table: t.name.Name})
}

// As returns the table under an alias. Column references through the
// result are qualified by the alias.
func (t *Table) As(alias string) *AliasedTable {
	return &AliasedTable{table: t, alias: alias}
}

// AddIndex attaches an index definition to the table. Indexes render as
// separate CREATE INDEX statements via IndexStatements.
func (t *Table) AddIndex(ix *Index) *Table {
	t.indexes = append(t.indexes, ix)
	return t
}

// AddForeignKey appends a foreign key constraint rendered inline in the
// CREATE TABLE statement.
func (t *Table) AddForeignKey(fk *ForeignKey) *Table {
	t.fks = append(t.fks, fk)
	return t
}

// AddCheck appends a CHECK constraint.
func (t *Table) AddCheck(p Expr) *Table {
	t.checks = append(t.checks, p)
	return t
}

// IfNotExists makes the CREATE TABLE statement conditional.
func (t *Table) IfNotExists() *Table {
	t.ifNotExists = true
	return t
}

// Temporary makes the table temporary.
func (t *Table) Temporary() *Table {
	t.temporary = true
	return t
}

// Comment attaches a table comment. Only MySQL renders it.
func (t *Table) Comment(s string) *Table {
	t.comment = s
	return t
}

// Engine sets the storage engine. Only MySQL renders it.
func (t *Table) Engine(s string) *Table {
	t.engine = s
	return t
}

// Charset sets the default character set. Only MySQL renders it.
func (t *Table) Charset(s string) *Table {
	t.charset = s
	return t
}

// Collate sets the default collation. Only MySQL renders it.
func (t *Table) Collate(s string) *Table {
	t.collate = s
	return t
}

// Extra appends a verbatim suffix to the CREATE TABLE statement.
func (t *Table) Extra(s string) *Table {
	t.extra = s
	return t
}

// IndexStatements returns the table's indexes as standalone CREATE
// INDEX statements bound to this table.
func (t *Table) IndexStatements() []*Index {
	out := make([]*Index, len(t.indexes))
	for i, ix := range t.indexes {
		bound := *ix
		bound.table = t.name
		out[i] = &bound
	}
	return out
}

// Build renders the CREATE TABLE statement with parameter placeholders.
// DDL carries no parameters, so the value slice is always empty.
func (t *Table) Build(d string) (string, []*Value, error) {
	return buildStmt(t, d, false)
}

// ToSQL renders the CREATE TABLE statement.
func (t *Table) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(t, d, true)
	return sql, err
}

func (t *Table) render(w *writer) {
	if t.err != nil {
		w.fail(t.err)
		return
	}
	if len(t.columns) == 0 {
		w.fail(NewStructuralError("table %q has no columns", t.name.Name))
		return
	}
	w.write("CREATE ")
	if t.temporary {
		w.write("TEMPORARY ")
	}
	w.write("TABLE ")
	if t.ifNotExists {
		w.write("IF NOT EXISTS ")
	}
	w.tableName(t.name)
	w.write(" (")
	var pk []string
	for _, c := range t.columns {
		if c.primaryKey {
			pk = append(pk, c.name)
		}
	}
	pkInline := len(pk) == 1
	for i, c := range t.columns {
		if i > 0 {
			w.write(", ")
		}
		c.renderDef(w, pkInline)
	}
	if len(pk) > 1 {
		w.write(", PRIMARY KEY (")
		for i, name := range pk {
			if i > 0 {
				w.write(", ")
			}
			w.ident(name)
		}
		w.byte(')')
	}
	for _, fk := range t.fks {
		w.write(", ")
		fk.renderConstraint(w)
	}
	for _, check := range t.checks {
		w.write(", CHECK (")
		inline := w.inline
		w.inline = true
		w.expr(check)
		w.inline = inline
		w.byte(')')
	}
	w.byte(')')
	if w.spec.name == dialect.MySQL {
		if t.engine != "" {
			w.write(" ENGINE=")
			w.write(t.engine)
		}
		if t.charset != "" {
			w.write(" DEFAULT CHARACTER SET ")
			w.write(t.charset)
		}
		if t.collate != "" {
			w.write(" COLLATE ")
			w.write(t.collate)
		}
		if t.comment != "" {
			w.write(" COMMENT ")
			w.stringLiteral(t.comment)
		}
	}
	if t.extra != "" {
		w.byte(' ')
		w.write(t.extra)
	}
}

// AliasedTable is a table reference under an alias.
type AliasedTable struct {
	table *Table
	alias string
}

// Name returns the alias.
func (a *AliasedTable) Name() string { return a.alias }

// Table returns the underlying table.
func (a *AliasedTable) Table() *Table { return a.table }

// C returns an expression referencing the named column, qualified by
// the alias.
func (a *AliasedTable) C(name string) Expr {
	return Col(ColumnRef{Name: name, Table: a.alias})
}
