package sqlkit

import (
	"strings"
)

// ColumnRef is a possibly qualified reference to a column. A Name of
// "*" selects all columns of the referenced scope. A Schema requires a
// Table: the dotted form cannot distinguish schema.column from
// table.column, so rendering a schema-only reference fails.
type ColumnRef struct {
	Name   string
	Table  string
	Schema string
}

// ParseColumnRef parses a dotted column reference of the form
// [schema.][table.]column. Segments bind right to left, so "a.b" is
// column "b" of table "a". Surrounding whitespace is trimmed.
func ParseColumnRef(s string) (ColumnRef, error) {
	parts, err := splitIdent(s, 3)
	if err != nil {
		return ColumnRef{}, err
	}
	ref := ColumnRef{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		ref.Table = parts[len(parts)-2]
	}
	if len(parts) > 2 {
		ref.Schema = parts[0]
	}
	return ref, nil
}

// IsAsterisk reports whether the reference selects all columns.
func (r ColumnRef) IsAsterisk() bool {
	return r.Name == "*"
}

// String returns the dotted form of the reference. Parsing the result
// yields an equal reference.
func (r ColumnRef) String() string {
	return joinIdent(r.Schema, r.Table, r.Name)
}

// Equal reports whether two references are structurally identical.
func (r ColumnRef) Equal(o ColumnRef) bool {
	return r == o
}

// TableName is a possibly qualified reference to a table.
type TableName struct {
	Name     string
	Schema   string
	Database string
}

// ParseTableName parses a dotted table reference of the form
// [database.][schema.]table. Segments bind right to left. Surrounding
// whitespace is trimmed.
func ParseTableName(s string) (TableName, error) {
	parts, err := splitIdent(s, 3)
	if err != nil {
		return TableName{}, err
	}
	tn := TableName{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		tn.Schema = parts[len(parts)-2]
	}
	if len(parts) > 2 {
		tn.Database = parts[0]
	}
	return tn, nil
}

// String returns the dotted form of the name. Parsing the result yields
// an equal name.
func (t TableName) String() string {
	return joinIdent(t.Database, t.Schema, t.Name)
}

// Equal reports whether two table names are structurally identical.
func (t TableName) Equal(o TableName) bool {
	return t == o
}

func splitIdent(s string, maxParts int) ([]string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, NewInvalidIdentifierError(s, "cannot parse an empty string")
	}
	parts := strings.Split(trimmed, ".")
	if len(parts) > maxParts {
		return nil, NewInvalidIdentifierError(s, "too many dot-separated parts")
	}
	for _, p := range parts {
		if p == "" {
			return nil, NewInvalidIdentifierError(s, "empty part")
		}
	}
	return parts, nil
}

func joinIdent(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p)
	}
	return sb.String()
}
