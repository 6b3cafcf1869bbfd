package sqlkit

// RefAction is a referential action for ON DELETE and ON UPDATE
// clauses.
type RefAction int

// Referential actions.
const (
	NoAction RefAction = iota
	Restrict
	Cascade
	SetNull
	SetDefault
)

func (a RefAction) sql() string {
	switch a {
	case Restrict:
		return "RESTRICT"
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}

// ForeignKey describes a foreign key constraint.
type ForeignKey struct {
	name      string
	cols      []string
	refTable  TableName
	refCols   []string
	onDelete  RefAction
	onUpdate  RefAction
	hasDelete bool
	hasUpdate bool
	err       error
}

// NewForeignKey returns a foreign key constraint with the given name.
// An empty name leaves the constraint unnamed.
func NewForeignKey(name string) *ForeignKey {
	return &ForeignKey{name: name}
}

// Columns sets the referencing columns.
func (fk *ForeignKey) Columns(cols ...string) *ForeignKey {
	fk.cols = cols
	return fk
}

// References sets the referenced table and columns. The table may be a
// dotted string or a TableName.
func (fk *ForeignKey) References(table any, cols ...string) *ForeignKey {
	switch x := table.(type) {
	case string:
		tn, err := ParseTableName(x)
		if err != nil {
			if fk.err == nil {
				fk.err = err
			}
			return fk
		}
		fk.refTable = tn
	case TableName:
		fk.refTable = x
	case *Table:
		fk.refTable = x.name
	default:
		if fk.err == nil {
			fk.err = NewStructuralError("cannot use %T as a table name", table)
		}
		return fk
	}
	fk.refCols = cols
	return fk
}

// OnDelete sets the ON DELETE action.
func (fk *ForeignKey) OnDelete(a RefAction) *ForeignKey {
	fk.onDelete = a
	fk.hasDelete = true
	return fk
}

// OnUpdate sets the ON UPDATE action.
func (fk *ForeignKey) OnUpdate(a RefAction) *ForeignKey {
	fk.onUpdate = a
	fk.hasUpdate = true
	return fk
}

func (fk *ForeignKey) renderConstraint(w *writer) {
	if fk.err != nil {
		w.fail(fk.err)
		return
	}
	if len(fk.cols) == 0 {
		w.fail(NewStructuralError("foreign key has no columns"))
		return
	}
	if len(fk.refCols) != 0 && len(fk.refCols) != len(fk.cols) {
		w.fail(NewStructuralError("foreign key references %d columns but has %d", len(fk.refCols), len(fk.cols)))
		return
	}
	if fk.name != "" {
		w.write("CONSTRAINT ")
		w.ident(fk.name)
		w.byte(' ')
	}
	w.write("FOREIGN KEY (")
	for i, c := range fk.cols {
		if i > 0 {
			w.write(", ")
		}
		w.ident(c)
	}
	w.write(") REFERENCES ")
	w.tableName(fk.refTable)
	if len(fk.refCols) > 0 {
		w.write(" (")
		for i, c := range fk.refCols {
			if i > 0 {
				w.write(", ")
			}
			w.ident(c)
		}
		w.byte(')')
	}
	if fk.hasDelete {
		w.write(" ON DELETE ")
		w.write(fk.onDelete.sql())
	}
	if fk.hasUpdate {
		w.write(" ON UPDATE ")
		w.write(fk.onUpdate.sql())
	}
}
