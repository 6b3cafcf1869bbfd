package sqlkit

import (
	"fmt"
	"sort"
	"strings"
)

// typeKind discriminates the closed set of column types.
type typeKind uint8

const (
	typeInvalid typeKind = iota
	typeChar
	typeVarchar
	typeText
	typeTinyInt
	typeSmallInt
	typeInt
	typeBigInt
	typeTinyUnsigned
	typeSmallUnsigned
	typeUnsigned
	typeBigUnsigned
	typeFloat
	typeDouble
	typeDecimal
	typeDateTime
	typeTimestamp
	typeTimestampTZ
	typeTime
	typeDate
	typeYear
	typeInterval
	typeBinary
	typeVarBinary
	typeBit
	typeVarBit
	typeBlob
	typeBoolean
	typeMoney
	typeJSON
	typeJSONBinary
	typeUUID
	typeCidr
	typeInet
	typeMacAddr
	typeLTree
	typeEnum
	typeArray
	typeVector
)

// IntervalField selects the fields stored by a Postgres interval column.
type IntervalField uint8

// Interval field values, in the order Postgres defines them.
const (
	IntervalYear IntervalField = iota
	IntervalMonth
	IntervalDay
	IntervalHour
	IntervalMinute
	IntervalSecond
	IntervalYearToMonth
	IntervalDayToHour
	IntervalDayToMinute
	IntervalDayToSecond
	IntervalHourToMinute
	IntervalHourToSecond
	IntervalMinuteToSecond
)

var intervalFieldNames = [...]string{
	IntervalYear:           "YEAR",
	IntervalMonth:          "MONTH",
	IntervalDay:            "DAY",
	IntervalHour:           "HOUR",
	IntervalMinute:         "MINUTE",
	IntervalSecond:         "SECOND",
	IntervalYearToMonth:    "YEAR TO MONTH",
	IntervalDayToHour:      "DAY TO HOUR",
	IntervalDayToMinute:    "DAY TO MINUTE",
	IntervalDayToSecond:    "DAY TO SECOND",
	IntervalHourToMinute:   "HOUR TO MINUTE",
	IntervalHourToSecond:   "HOUR TO SECOND",
	IntervalMinuteToSecond: "MINUTE TO SECOND",
}

// String returns the SQL spelling of the interval field.
func (f IntervalField) String() string {
	if int(f) < len(intervalFieldNames) {
		return intervalFieldNames[f]
	}
	return fmt.Sprintf("IntervalField(%d)", uint8(f))
}

// ColumnType describes the SQL type of a column or cast target. The set
// of types is closed; values are created through the constructor
// functions and compared structurally with Equal.
type ColumnType struct {
	kind      typeKind
	length    uint32
	precision uint32
	scale     uint32
	fields    IntervalField
	hasFields bool
	enumName  string
	variants  []string
	elem      *ColumnType
}

// Char returns a fixed-length character type. A zero length defaults to 1.
func Char(n uint32) *ColumnType {
	if n == 0 {
		n = 1
	}
	return &ColumnType{kind: typeChar, length: n}
}

// Varchar returns a variable-length character type. A zero length leaves
// the bound unset.
func Varchar(n uint32) *ColumnType {
	return &ColumnType{kind: typeVarchar, length: n}
}

// Text returns an unbounded character type.
func Text() *ColumnType { return &ColumnType{kind: typeText} }

// TinyInt returns a signed 8-bit integer type.
func TinyInt() *ColumnType { return &ColumnType{kind: typeTinyInt} }

// SmallInt returns a signed 16-bit integer type.
func SmallInt() *ColumnType { return &ColumnType{kind: typeSmallInt} }

// Int returns a signed 32-bit integer type.
func Int() *ColumnType { return &ColumnType{kind: typeInt} }

// BigInt returns a signed 64-bit integer type.
func BigInt() *ColumnType { return &ColumnType{kind: typeBigInt} }

// TinyUnsigned returns an unsigned 8-bit integer type.
func TinyUnsigned() *ColumnType { return &ColumnType{kind: typeTinyUnsigned} }

// SmallUnsigned returns an unsigned 16-bit integer type.
func SmallUnsigned() *ColumnType { return &ColumnType{kind: typeSmallUnsigned} }

// Unsigned returns an unsigned 32-bit integer type.
func Unsigned() *ColumnType { return &ColumnType{kind: typeUnsigned} }

// BigUnsigned returns an unsigned 64-bit integer type.
func BigUnsigned() *ColumnType { return &ColumnType{kind: typeBigUnsigned} }

// Float returns a single-precision floating point type.
func Float() *ColumnType { return &ColumnType{kind: typeFloat} }

// Double returns a double-precision floating point type.
func Double() *ColumnType { return &ColumnType{kind: typeDouble} }

// Decimal returns an exact numeric type. Precision and scale are dropped
// when either is zero.
func Decimal(precision, scale uint32) *ColumnType {
	t := &ColumnType{kind: typeDecimal}
	if precision != 0 && scale != 0 {
		t.precision, t.scale = precision, scale
	}
	return t
}

// Money returns a monetary numeric type. Precision and scale are dropped
// when either is zero.
func Money(precision, scale uint32) *ColumnType {
	t := &ColumnType{kind: typeMoney}
	if precision != 0 && scale != 0 {
		t.precision, t.scale = precision, scale
	}
	return t
}

// DateTime returns a date-and-time type without time zone.
func DateTime() *ColumnType { return &ColumnType{kind: typeDateTime} }

// Timestamp returns a timestamp type without time zone.
func Timestamp() *ColumnType { return &ColumnType{kind: typeTimestamp} }

// TimestampTZ returns a timestamp type with time zone.
func TimestampTZ() *ColumnType { return &ColumnType{kind: typeTimestampTZ} }

// Time returns a time-of-day type.
func Time() *ColumnType { return &ColumnType{kind: typeTime} }

// Date returns a calendar date type.
func Date() *ColumnType { return &ColumnType{kind: typeDate} }

// Year returns a year type.
func Year() *ColumnType { return &ColumnType{kind: typeYear} }

// Interval returns a Postgres interval type restricted to the given
// fields. Precision applies to the seconds field; zero leaves it unset.
func Interval(fields IntervalField, precision uint32) *ColumnType {
	return &ColumnType{kind: typeInterval, fields: fields, hasFields: true, precision: precision}
}

// IntervalAny returns a Postgres interval type without a field restriction.
func IntervalAny() *ColumnType {
	return &ColumnType{kind: typeInterval}
}

// Binary returns a fixed-length binary type. A zero length defaults to 1.
func Binary(n uint32) *ColumnType {
	if n == 0 {
		n = 1
	}
	return &ColumnType{kind: typeBinary, length: n}
}

// VarBinary returns a variable-length binary type.
func VarBinary(n uint32) *ColumnType {
	return &ColumnType{kind: typeVarBinary, length: n}
}

// Bit returns a fixed-length bit string type.
func Bit(n uint32) *ColumnType {
	return &ColumnType{kind: typeBit, length: n}
}

// VarBit returns a variable-length bit string type. A zero length
// defaults to 1.
func VarBit(n uint32) *ColumnType {
	if n == 0 {
		n = 1
	}
	return &ColumnType{kind: typeVarBit, length: n}
}

// Blob returns an unbounded binary type.
func Blob() *ColumnType { return &ColumnType{kind: typeBlob} }

// Boolean returns a boolean type.
func Boolean() *ColumnType { return &ColumnType{kind: typeBoolean} }

// JSON returns a textual JSON type.
func JSON() *ColumnType { return &ColumnType{kind: typeJSON} }

// JSONBinary returns a binary JSON type (jsonb on Postgres).
func JSONBinary() *ColumnType { return &ColumnType{kind: typeJSONBinary} }

// UUID returns a UUID type.
func UUID() *ColumnType { return &ColumnType{kind: typeUUID} }

// Cidr returns a Postgres cidr network type.
func Cidr() *ColumnType { return &ColumnType{kind: typeCidr} }

// Inet returns a Postgres inet network type.
func Inet() *ColumnType { return &ColumnType{kind: typeInet} }

// MacAddr returns a Postgres macaddr type.
func MacAddr() *ColumnType { return &ColumnType{kind: typeMacAddr} }

// LTree returns a Postgres ltree label path type.
func LTree() *ColumnType { return &ColumnType{kind: typeLTree} }

// Enum returns an enumeration type with the given name and variants.
// Variants are sorted and deduplicated; an empty variant list is an error.
func Enum(name string, variants ...string) (*ColumnType, error) {
	if len(variants) == 0 {
		return nil, NewStructuralError("enum %q variants cannot be empty", name)
	}
	vs := make([]string, len(variants))
	copy(vs, variants)
	sort.Strings(vs)
	dedup := vs[:1]
	for _, v := range vs[1:] {
		if v != dedup[len(dedup)-1] {
			dedup = append(dedup, v)
		}
	}
	return &ColumnType{kind: typeEnum, enumName: name, variants: dedup}, nil
}

// Array returns an array type with the given element type.
func Array(elem *ColumnType) *ColumnType {
	return &ColumnType{kind: typeArray, elem: elem}
}

// Vector returns a vector type with the given dimension. A zero
// dimension leaves it unset.
func Vector(dim uint32) *ColumnType {
	return &ColumnType{kind: typeVector, length: dim}
}

// Elem returns the element type of an array, or nil for other types.
func (t *ColumnType) Elem() *ColumnType {
	if t == nil || t.kind != typeArray {
		return nil
	}
	return t.elem
}

// Variants returns the variants of an enum type, or nil for other types.
func (t *ColumnType) Variants() []string {
	if t == nil || t.kind != typeEnum {
		return nil
	}
	out := make([]string, len(t.variants))
	copy(out, t.variants)
	return out
}

// Equal reports whether two column types are structurally identical.
func (t *ColumnType) Equal(o *ColumnType) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.kind != o.kind || t.length != o.length ||
		t.precision != o.precision || t.scale != o.scale ||
		t.fields != o.fields || t.hasFields != o.hasFields ||
		t.enumName != o.enumName {
		return false
	}
	if len(t.variants) != len(o.variants) {
		return false
	}
	for i := range t.variants {
		if t.variants[i] != o.variants[i] {
			return false
		}
	}
	if (t.elem == nil) != (o.elem == nil) {
		return false
	}
	if t.elem != nil && !t.elem.Equal(o.elem) {
		return false
	}
	return true
}

var typeKindNames = map[typeKind]string{
	typeChar:          "char",
	typeVarchar:       "varchar",
	typeText:          "text",
	typeTinyInt:       "tinyint",
	typeSmallInt:      "smallint",
	typeInt:           "integer",
	typeBigInt:        "bigint",
	typeTinyUnsigned:  "tinyint unsigned",
	typeSmallUnsigned: "smallint unsigned",
	typeUnsigned:      "integer unsigned",
	typeBigUnsigned:   "bigint unsigned",
	typeFloat:         "float",
	typeDouble:        "double",
	typeDecimal:       "decimal",
	typeDateTime:      "datetime",
	typeTimestamp:     "timestamp",
	typeTimestampTZ:   "timestamp with time zone",
	typeTime:          "time",
	typeDate:          "date",
	typeYear:          "year",
	typeInterval:      "interval",
	typeBinary:        "binary",
	typeVarBinary:     "varbinary",
	typeBit:           "bit",
	typeVarBit:        "bit varying",
	typeBlob:          "blob",
	typeBoolean:       "boolean",
	typeMoney:         "money",
	typeJSON:          "json",
	typeJSONBinary:    "jsonb",
	typeUUID:          "uuid",
	typeCidr:          "cidr",
	typeInet:          "inet",
	typeMacAddr:       "macaddr",
	typeLTree:         "ltree",
	typeEnum:          "enum",
	typeArray:         "array",
	typeVector:        "vector",
}

// String returns a debug representation of the type. It is not
// dialect-specific; statement rendering maps types per dialect.
func (t *ColumnType) String() string {
	if t == nil {
		return "<nil>"
	}
	name := typeKindNames[t.kind]
	switch t.kind {
	case typeChar, typeVarchar, typeBinary, typeVarBinary, typeBit, typeVarBit, typeVector:
		if t.length > 0 {
			return fmt.Sprintf("%s(%d)", name, t.length)
		}
		return name
	case typeDecimal, typeMoney:
		if t.precision > 0 {
			return fmt.Sprintf("%s(%d, %d)", name, t.precision, t.scale)
		}
		return name
	case typeInterval:
		if t.hasFields {
			return fmt.Sprintf("interval %s", t.fields)
		}
		return name
	case typeEnum:
		return fmt.Sprintf("enum(%s: %s)", t.enumName, strings.Join(t.variants, ", "))
	case typeArray:
		return fmt.Sprintf("array of %s", t.elem)
	default:
		return name
	}
}
