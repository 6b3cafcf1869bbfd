package sqlkit

import (
	"github.com/syssam/sqlkit/dialect"
)

type alterOpKind int

const (
	alterAddColumn alterOpKind = iota
	alterModifyColumn
	alterRenameColumn
	alterDropColumn
	alterAddForeignKey
	alterDropForeignKey
)

type alterOp struct {
	kind    alterOpKind
	column  *Column
	fk      *ForeignKey
	name    string
	newName string
}

// AlterTable describes an ALTER TABLE statement. SQLite accepts a
// single operation per statement and rejects column modification and
// foreign key changes.
type AlterTable struct {
	table TableName
	ops   []alterOp
	err   error
}

// NewAlterTable returns a new ALTER TABLE statement for the given
// table.
func NewAlterTable(table any) *AlterTable {
	a := &AlterTable{}
	switch x := table.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			a.err = err
			return a
		}
		a.table = tn
	case TableName:
		a.table = x
	case *Table:
		a.table = x.name
	default:
		a.err = NewStructuralError("cannot use %T as a table name", table)
	}
	return a
}

// AddColumn adds a column.
func (a *AlterTable) AddColumn(c *Column) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterAddColumn, column: c})
	return a
}

// ModifyColumn changes a column to the given definition. SQLite does
// not support it.
func (a *AlterTable) ModifyColumn(c *Column) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterModifyColumn, column: c})
	return a
}

// RenameColumn renames a column.
func (a *AlterTable) RenameColumn(name, newName string) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterRenameColumn, name: name, newName: newName})
	return a
}

// DropColumn drops a column.
func (a *AlterTable) DropColumn(name string) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterDropColumn, name: name})
	return a
}

// AddForeignKey adds a foreign key constraint. SQLite does not support
// it.
func (a *AlterTable) AddForeignKey(fk *ForeignKey) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterAddForeignKey, fk: fk})
	return a
}

// DropForeignKey drops the named foreign key constraint. SQLite does
// not support it.
func (a *AlterTable) DropForeignKey(name string) *AlterTable {
	a.ops = append(a.ops, alterOp{kind: alterDropForeignKey, name: name})
	return a
}

// Build renders the ALTER TABLE statement.
func (a *AlterTable) Build(d string) (string, []*Value, error) {
	return buildStmt(a, d, false)
}

// ToSQL renders the ALTER TABLE statement.
func (a *AlterTable) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(a, d, true)
	return sql, err
}

func (a *AlterTable) render(w *writer) {
	if a.err != nil {
		w.fail(a.err)
		return
	}
	if len(a.ops) == 0 {
		w.fail(NewStructuralError("ALTER TABLE has no operations"))
		return
	}
	if w.spec.name == dialect.SQLite && len(a.ops) > 1 {
		w.fail(NewUnsupportedOperationError("multiple ALTER TABLE operations", w.spec.name))
		return
	}
	w.write("ALTER TABLE ")
	w.tableName(a.table)
	w.byte(' ')
	for i, op := range a.ops {
		if i > 0 {
			w.write(", ")
		}
		a.renderOp(w, op)
		if w.err != nil {
			return
		}
	}
}

func (a *AlterTable) renderOp(w *writer, op alterOp) {
	switch op.kind {
	case alterAddColumn:
		w.write("ADD COLUMN ")
		op.column.renderDef(w, true)
	case alterModifyColumn:
		switch w.spec.name {
		case dialect.SQLite:
			w.fail(NewUnsupportedOperationError("column modification", w.spec.name))
		case dialect.MySQL:
			w.write("MODIFY COLUMN ")
			op.column.renderDef(w, true)
		default:
			w.write("ALTER COLUMN ")
			w.ident(op.column.name)
			w.write(" TYPE ")
			name, err := typeName(w.spec, op.column.typ)
			if err != nil {
				w.fail(err)
				return
			}
			w.write(name)
		}
	case alterRenameColumn:
		w.write("RENAME COLUMN ")
		w.ident(op.name)
		w.write(" TO ")
		w.ident(op.newName)
	case alterDropColumn:
		w.write("DROP COLUMN ")
		w.ident(op.name)
	case alterAddForeignKey:
		if w.spec.name == dialect.SQLite {
			w.fail(NewUnsupportedOperationError("adding a foreign key", w.spec.name))
			return
		}
		w.write("ADD ")
		op.fk.renderConstraint(w)
	case alterDropForeignKey:
		switch w.spec.name {
		case dialect.SQLite:
			w.fail(NewUnsupportedOperationError("dropping a foreign key", w.spec.name))
		case dialect.MySQL:
			w.write("DROP FOREIGN KEY ")
			w.ident(op.name)
		default:
			w.write("DROP CONSTRAINT ")
			w.ident(op.name)
		}
	}
}

// DropTable describes a DROP TABLE statement.
type DropTable struct {
	tables   []TableName
	ifExists bool
	cascade  bool
	restrict bool
	err      error
}

// NewDropTable returns a DROP TABLE statement for the given tables.
func NewDropTable(tables ...any) *DropTable {
	d := &DropTable{}
	for _, t := range tables {
		switch x := t.(type) {
		case string:
			tn, err := ParseTableName(x)
			if err != nil {
				d.err = err
				return d
			}
			d.tables = append(d.tables, tn)
		case TableName:
			d.tables = append(d.tables, x)
		case *Table:
			d.tables = append(d.tables, x.name)
		default:
			d.err = NewStructuralError("cannot use %T as a table name", t)
			return d
		}
	}
	return d
}

// IfExists makes the statement conditional.
func (d *DropTable) IfExists() *DropTable {
	d.ifExists = true
	return d
}

// Cascade drops objects depending on the tables. SQLite does not
// support it.
func (d *DropTable) Cascade() *DropTable {
	d.cascade = true
	return d
}

// Restrict refuses to drop if anything depends on the tables. SQLite
// does not support it.
func (d *DropTable) Restrict() *DropTable {
	d.restrict = true
	return d
}

// Build renders the DROP TABLE statement.
func (d *DropTable) Build(dl string) (string, []*Value, error) {
	return buildStmt(d, dl, false)
}

// ToSQL renders the DROP TABLE statement.
func (d *DropTable) ToSQL(dl string) (string, error) {
	sql, _, err := buildStmt(d, dl, true)
	return sql, err
}

func (d *DropTable) render(w *writer) {
	if d.err != nil {
		w.fail(d.err)
		return
	}
	if len(d.tables) == 0 {
		w.fail(NewStructuralError("DROP TABLE has no tables"))
		return
	}
	w.write("DROP TABLE ")
	if d.ifExists {
		w.write("IF EXISTS ")
	}
	for i, t := range d.tables {
		if i > 0 {
			w.write(", ")
		}
		w.tableName(t)
	}
	if d.cascade || d.restrict {
		if w.spec.name == dialect.SQLite {
			w.fail(NewUnsupportedOperationError("DROP TABLE CASCADE", w.spec.name))
			return
		}
		if d.cascade {
			w.write(" CASCADE")
		} else {
			w.write(" RESTRICT")
		}
	}
}

// RenameTable describes a table rename.
type RenameTable struct {
	from TableName
	to   TableName
	err  error
}

// NewRenameTable returns a statement renaming from to to.
func NewRenameTable(from, to any) *RenameTable {
	r := &RenameTable{}
	resolve := func(t any) (TableName, error) {
		switch x := t.(type) {
		case string:
			return ParseTableName(x)
		case TableName:
			return x, nil
		case *Table:
			return x.name, nil
		default:
			return TableName{}, NewStructuralError("cannot use %T as a table name", t)
		}
	}
	var err error
	if r.from, err = resolve(from); err != nil {
		r.err = err
		return r
	}
	if r.to, err = resolve(to); err != nil {
		r.err = err
	}
	return r
}

// Build renders the rename statement.
func (r *RenameTable) Build(d string) (string, []*Value, error) {
	return buildStmt(r, d, false)
}

// ToSQL renders the rename statement.
func (r *RenameTable) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(r, d, true)
	return sql, err
}

func (r *RenameTable) render(w *writer) {
	if r.err != nil {
		w.fail(r.err)
		return
	}
	if w.spec.name == dialect.MySQL {
		w.write("RENAME TABLE ")
		w.tableName(r.from)
		w.write(" TO ")
		w.tableName(r.to)
		return
	}
	w.write("ALTER TABLE ")
	w.tableName(r.from)
	w.write(" RENAME TO ")
	w.tableName(r.to)
}

// TruncateTable describes a TRUNCATE TABLE statement. SQLite has no
// TRUNCATE and rendering fails there.
type TruncateTable struct {
	tables  []TableName
	restart bool
	cascade bool
	err     error
}

// NewTruncateTable returns a TRUNCATE TABLE statement for the given
// tables.
func NewTruncateTable(tables ...any) *TruncateTable {
	t := &TruncateTable{}
	for _, table := range tables {
		switch x := table.(type) {
		case string:
			tn, err := ParseTableName(x)
			if err != nil {
				t.err = err
				return t
			}
			t.tables = append(t.tables, tn)
		case TableName:
			t.tables = append(t.tables, x)
		case *Table:
			t.tables = append(t.tables, x.name)
		default:
			t.err = NewStructuralError("cannot use %T as a table name", table)
			return t
		}
	}
	return t
}

// RestartIdentity resets sequences owned by the truncated tables. Only
// PostgreSQL renders it.
func (t *TruncateTable) RestartIdentity() *TruncateTable {
	t.restart = true
	return t
}

// Cascade truncates tables with foreign key references to the listed
// ones. Only PostgreSQL renders it.
func (t *TruncateTable) Cascade() *TruncateTable {
	t.cascade = true
	return t
}

// Build renders the TRUNCATE TABLE statement.
func (t *TruncateTable) Build(d string) (string, []*Value, error) {
	return buildStmt(t, d, false)
}

// ToSQL renders the TRUNCATE TABLE statement.
func (t *TruncateTable) ToSQL(d string) (string, error) {
	sql, _, err := buildStmt(t, d, true)
	return sql, err
}

func (t *TruncateTable) render(w *writer) {
	if t.err != nil {
		w.fail(t.err)
		return
	}
	if w.spec.name == dialect.SQLite {
		w.fail(NewUnsupportedOperationError("TRUNCATE TABLE", w.spec.name))
		return
	}
	if len(t.tables) == 0 {
		w.fail(NewStructuralError("TRUNCATE TABLE has no tables"))
		return
	}
	w.write("TRUNCATE TABLE ")
	for i, tn := range t.tables {
		if i > 0 {
			w.write(", ")
		}
		w.tableName(tn)
	}
	if w.spec.name == dialect.Postgres {
		if t.restart {
			w.write(" RESTART IDENTITY")
		}
		if t.cascade {
			w.write(" CASCADE")
		}
	}
}
