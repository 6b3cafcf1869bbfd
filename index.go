package sqlkit

import (
	"strconv"

	"github.com/syssam/sqlkit/dialect"
)

// IndexColumn is a single key part of an index.
type IndexColumn struct {
	// Name is the column name.
	Name string
	// Desc orders the key part descending.
	Desc bool
	// Prefix limits the indexed prefix length. Only MySQL renders it.
	Prefix int
}

// Index describes a CREATE INDEX statement.
type Index struct {
	name             string
	table            TableName
	cols             []IndexColumn
	unique           bool
	fulltext         bool
	method           string
	ifNotExists      bool
	include          []string
	nullsNotDistinct bool
	wheres           []Expr
	err              error
}

// NewIndex returns a new index definition.
func NewIndex(name string) *Index {
	return &Index{name: name}
}

// Table sets the table the index belongs to. Indexes attached to a
// Table via AddIndex inherit the table name automatically.
func (ix *Index) Table(table any) *Index {
	switch x := table.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			if ix.err == nil {
				ix.err = err
			}
			return ix
		}
		ix.table = tn
	case TableName:
		ix.table = x
	case *Table:
		ix.table = x.name
	default:
		if ix.err == nil {
			ix.err = NewStructuralError("cannot use %T as a table name", table)
		}
	}
	return ix
}

// Columns appends plain ascending key parts.
func (ix *Index) Columns(cols ...string) *Index {
	for _, c := range cols {
		ix.cols = append(ix.cols, IndexColumn{Name: c})
	}
	return ix
}

// ColumnDesc appends a descending key part.
func (ix *Index) ColumnDesc(col string) *Index {
	ix.cols = append(ix.cols, IndexColumn{Name: col, Desc: true})
	return ix
}

// ColumnPrefix appends a key part indexed on a prefix of the column.
// Only MySQL renders the prefix length.
func (ix *Index) ColumnPrefix(col string, length int) *Index {
	ix.cols = append(ix.cols, IndexColumn{Name: col, Prefix: length})
	return ix
}

// Unique makes the index unique.
func (ix *Index) Unique() *Index {
	ix.unique = true
	return ix
}

// FullText makes the index a full-text index. Only MySQL supports it.
func (ix *Index) FullText() *Index {
	ix.fulltext = true
	return ix
}

// Using sets the index method, such as btree, hash or gin.
func (ix *Index) Using(method string) *Index {
	ix.method = method
	return ix
}

// IfNotExists makes the statement conditional. MySQL does not support
// it and rendering fails there.
func (ix *Index) IfNotExists() *Index {
	ix.ifNotExists = true
	return ix
}

// Include adds non-key covering columns. Only PostgreSQL supports it.
func (ix *Index) Include(cols ...string) *Index {
	ix.include = append(ix.include, cols...)
	return ix
}

// NullsNotDistinct makes NULL values compare equal in a unique index.
// Only PostgreSQL supports it.
func (ix *Index) NullsNotDistinct() *Index {
	ix.nullsNotDistinct = true
	return ix
}

// Where adds a predicate making the index partial. Multiple calls
// combine with AND. MySQL does not support partial indexes.
func (ix *Index) Where(p Expr) *Index {
	ix.wheres = append(ix.wheres, p)
	return ix
}

// Build renders the CREATE INDEX statement. DDL carries no parameters,
// so the value slice is always empty.
func (ix *Index) Build(d string) (string, []*Value, error) {
	return buildStmt(ix, d, false)
}

// ToSQL renders the CREATE INDEX statement.
func (ix *Index) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(ix, d, true)
	return sql, err
}

func (ix *Index) render(w *writer) {
	if ix.err != nil {
		w.fail(ix.err)
		return
	}
	if ix.table.Name == "" {
		w.fail(NewStructuralError("index %q has no table", ix.name))
		return
	}
	if len(ix.cols) == 0 {
		w.fail(NewStructuralError("index %q has no columns", ix.name))
		return
	}
	w.write("CREATE ")
	switch {
	case ix.fulltext:
		if w.spec.name != dialect.MySQL {
			w.fail(NewUnsupportedOperationError("full-text index", w.spec.name))
			return
		}
		w.write("FULLTEXT ")
	case ix.unique:
		w.write("UNIQUE ")
	}
	w.write("INDEX ")
	if ix.ifNotExists {
		if w.spec.name == dialect.MySQL {
			w.fail(NewUnsupportedOperationError("CREATE INDEX IF NOT EXISTS", w.spec.name))
			return
		}
		w.write("IF NOT EXISTS ")
	}
	w.ident(ix.name)
	w.write(" ON ")
	w.tableName(ix.table)
	if ix.method != "" {
		switch w.spec.name {
		case dialect.SQLite:
			w.fail(NewUnsupportedOperationError("index method", w.spec.name))
			return
		case dialect.MySQL:
			// rendered after the key parts
		default:
			w.write(" USING ")
			w.write(ix.method)
		}
	}
	w.write(" (")
	for i, c := range ix.cols {
		if i > 0 {
			w.write(", ")
		}
		w.ident(c.Name)
		if c.Prefix > 0 && w.spec.name == dialect.MySQL {
			w.byte('(')
			w.write(strconv.Itoa(c.Prefix))
			w.byte(')')
		}
		if c.Desc {
			w.write(" DESC")
		}
	}
	w.byte(')')
	if ix.method != "" && w.spec.name == dialect.MySQL {
		w.write(" USING ")
		w.write(ix.method)
	}
	if len(ix.include) > 0 {
		if w.spec.name != dialect.Postgres {
			w.fail(NewUnsupportedOperationError("covering index", w.spec.name))
			return
		}
		w.write(" INCLUDE (")
		for i, c := range ix.include {
			if i > 0 {
				w.write(", ")
			}
			w.ident(c)
		}
		w.byte(')')
	}
	if ix.nullsNotDistinct {
		if w.spec.name != dialect.Postgres {
			w.fail(NewUnsupportedOperationError("NULLS NOT DISTINCT", w.spec.name))
			return
		}
		w.write(" NULLS NOT DISTINCT")
	}
	if len(ix.wheres) > 0 {
		if w.spec.name == dialect.MySQL {
			w.fail(NewUnsupportedOperationError("partial index", w.spec.name))
			return
		}
		w.write(" WHERE ")
		inline := w.inline
		w.inline = true
		renderPredicates(w, ix.wheres)
		w.inline = inline
	}
}

// DropIndex describes a DROP INDEX statement.
type DropIndex struct {
	name     string
	table    TableName
	ifExists bool
	err      error
}

// NewDropIndex returns a new DROP INDEX statement.
func NewDropIndex(name string) *DropIndex {
	return &DropIndex{name: name}
}

// Table sets the table the index belongs to. MySQL requires it.
func (d *DropIndex) Table(table any) *DropIndex {
	switch x := table.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			if d.err == nil {
				d.err = err
			}
			return d
		}
		d.table = tn
	case TableName:
		d.table = x
	case *Table:
		d.table = x.name
	default:
		if d.err == nil {
			d.err = NewStructuralError("cannot use %T as a table name", table)
		}
	}
	return d
}

// IfExists makes the statement conditional. MySQL does not support it.
func (d *DropIndex) IfExists() *DropIndex {
	d.ifExists = true
	return d
}

// Build renders the DROP INDEX statement.
func (d *DropIndex) Build(dl string) (string, []*Value, error) {
	return buildStmt(d, dl, false)
}

// ToSQL renders the DROP INDEX statement.
func (d *DropIndex) ToSQL(dl string) (string, error) {
	sql, _, err := buildStmt(d, dl, true)
	return sql, err
}

func (d *DropIndex) render(w *writer) {
	if d.err != nil {
		w.fail(d.err)
		return
	}
	w.write("DROP INDEX ")
	if d.ifExists {
		if w.spec.name == dialect.MySQL {
			w.fail(NewUnsupportedOperationError("DROP INDEX IF EXISTS", w.spec.name))
			return
		}
		w.write("IF EXISTS ")
	}
	w.ident(d.name)
	switch w.spec.name {
	case dialect.MySQL:
		if d.table.Name == "" {
			w.fail(NewStructuralError("DROP INDEX requires a table name on mysql"))
			return
		}
		w.write(" ON ")
		w.tableName(d.table)
	default:
		// SQLite and PostgreSQL resolve the index by name alone.
	}
}
