package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

// Column describes a table column for DDL statements.
type Column struct {
	name            string
	typ             *ColumnType
	notNull         bool
	unique          bool
	primaryKey      bool
	autoIncrement   bool
	def             Expr
	generated       Expr
	generatedStored bool
	comment         string
	extra           string
}

// NewColumn returns a column definition with the given name and type.
func NewColumn(name string, t *ColumnType) *Column {
	return &Column{name: name, typ: t}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() *ColumnType { return c.typ }

// NotNull marks the column NOT NULL.
func (c *Column) NotNull() *Column {
	c.notNull = true
	return c
}

// Unique adds a unique constraint to the column.
func (c *Column) Unique() *Column {
	c.unique = true
	return c
}

// PrimaryKey marks the column as part of the primary key.
func (c *Column) PrimaryKey() *Column {
	c.primaryKey = true
	return c
}

// AutoIncrement makes the column auto-incrementing. Postgres renders a
// serial type, MySQL an AUTO_INCREMENT attribute and SQLite an INTEGER
// PRIMARY KEY AUTOINCREMENT column.
func (c *Column) AutoIncrement() *Column {
	c.autoIncrement = true
	return c
}

// Default sets the column default. Values are inlined as literals.
func (c *Column) Default(v any) *Column {
	c.def = toExpr(v)
	return c
}

// GeneratedStored makes the column a stored generated column.
func (c *Column) GeneratedStored(e Expr) *Column {
	c.generated = e
	c.generatedStored = true
	return c
}

// GeneratedVirtual makes the column a virtual generated column.
func (c *Column) GeneratedVirtual(e Expr) *Column {
	c.generated = e
	c.generatedStored = false
	return c
}

// Comment attaches a comment to the column. Only MySQL renders it.
func (c *Column) Comment(s string) *Column {
	c.comment = s
	return c
}

// Extra appends a verbatim suffix to the column definition.
func (c *Column) Extra(s string) *Column {
	c.extra = s
	return c
}

// Ref returns an expression referencing the column, unqualified.
func (c *Column) Ref() Expr {
	return Col(ColumnRef{Name: c.name})
}

// renderDef writes the column definition clause of a CREATE TABLE or
// ALTER TABLE statement. pkInline is true when the primary key is
// rendered on the column itself rather than as a table constraint.
func (c *Column) renderDef(w *writer, pkInline bool) {
	w.ident(c.name)
	w.byte(' ')
	sqliteAuto := false
	switch {
	case c.autoIncrement && w.spec.name == dialect.Postgres:
		name, err := serialTypeName(c.typ)
		if err != nil {
			w.fail(err)
			return
		}
		w.write(name)
	case c.autoIncrement && w.spec.name == dialect.SQLite:
		if !isIntegerType(c.typ) {
			w.fail(NewStructuralError("AUTOINCREMENT requires an integer column"))
			return
		}
		if !c.primaryKey || !pkInline {
			w.fail(NewStructuralError("AUTOINCREMENT requires an inline primary key"))
			return
		}
		w.write("integer")
		sqliteAuto = true
	default:
		name, err := typeName(w.spec, c.typ)
		if err != nil {
			w.fail(err)
			return
		}
		w.write(name)
	}
	if c.notNull {
		w.write(" NOT NULL")
	}
	if c.def.n != nil {
		w.write(" DEFAULT ")
		inline := w.inline
		w.inline = true
		w.expr(c.def)
		w.inline = inline
	}
	if c.autoIncrement && w.spec.name == dialect.MySQL {
		w.write(" AUTO_INCREMENT")
	}
	if c.unique {
		w.write(" UNIQUE")
	}
	if c.primaryKey && pkInline {
		w.write(" PRIMARY KEY")
	}
	if sqliteAuto {
		w.write(" AUTOINCREMENT")
	}
	if c.generated.n != nil {
		if !c.generatedStored && w.spec.name == dialect.Postgres {
			w.fail(NewUnsupportedOperationError("virtual generated column", w.spec.name))
			return
		}
		w.write(" GENERATED ALWAYS AS (")
		inline := w.inline
		w.inline = true
		w.expr(c.generated)
		w.inline = inline
		w.byte(')')
		if c.generatedStored {
			w.write(" STORED")
		} else {
			w.write(" VIRTUAL")
		}
	}
	if c.comment != "" && w.spec.name == dialect.MySQL {
		w.write(" COMMENT ")
		w.stringLiteral(c.comment)
	}
	if c.extra != "" {
		w.byte(' ')
		w.write(c.extra)
	}
}

func serialTypeName(t *ColumnType) (string, error) {
	if t == nil {
		return "", NewStructuralError("nil column type")
	}
	switch t.kind {
	case typeTinyInt, typeSmallInt, typeTinyUnsigned:
		return "smallserial", nil
	case typeInt, typeSmallUnsigned:
		return "serial", nil
	case typeBigInt, typeUnsigned, typeBigUnsigned:
		return "bigserial", nil
	default:
		return "", NewStructuralError("AUTO INCREMENT requires an integer column")
	}
}

func isIntegerType(t *ColumnType) bool {
	if t == nil {
		return false
	}
	switch t.kind {
	case typeTinyInt, typeSmallInt, typeInt, typeBigInt,
		typeTinyUnsigned, typeSmallUnsigned, typeUnsigned, typeBigUnsigned:
		return true
	}
	return false
}
