package sqlkit

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValueKind discriminates the storage class of an adapted value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindDateTime
	KindDate
	KindTime
	KindYear
	KindDecimal
	KindUUID
	KindJSON
	KindArray
	KindVector
)

var valueKindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindInt:      "int",
	KindUint:     "uint",
	KindFloat:    "float",
	KindString:   "string",
	KindBytes:    "bytes",
	KindDateTime: "datetime",
	KindDate:     "date",
	KindTime:     "time",
	KindYear:     "year",
	KindDecimal:  "decimal",
	KindUUID:     "uuid",
	KindJSON:     "json",
	KindArray:    "array",
	KindVector:   "vector",
}

// String returns the kind name.
func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// Value is a Go value adapted and validated against a column type. It
// is the unit passed as a statement parameter by Build and inlined as a
// literal by ToSQL.
type Value struct {
	kind ValueKind
	typ  *ColumnType

	b   bool
	i   int64
	u   uint64
	f   float64
	s   string
	by  []byte
	t   time.Time
	dec decimal.Decimal
	uid uuid.UUID
	arr []*Value
	vec []float64
}

// Kind returns the storage class of the value.
func (v *Value) Kind() ValueKind { return v.kind }

// Type returns the column type the value was adapted to. It may be nil
// for values whose type was inferred as unknown.
func (v *Value) Type() *ColumnType { return v.typ }

// IsNull reports whether the value is SQL NULL.
func (v *Value) IsNull() bool { return v.kind == KindNull }

// Any returns the value in its natural Go form, suitable for passing as
// a database/sql argument. NULL is nil; arrays are []any.
func (v *Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindUint:
		return v.u
	case KindFloat:
		return v.f
	case KindString, KindJSON:
		return v.s
	case KindBytes:
		return v.by
	case KindDateTime, KindDate, KindTime:
		return v.t
	case KindYear:
		return v.i
	case KindDecimal:
		return v.dec
	case KindUUID:
		return v.uid
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Any()
		}
		return out
	case KindVector:
		return vectorLiteral(v.vec)
	default:
		return nil
	}
}

// Equal reports whether two values hold the same payload. The adapted
// column type does not participate in the comparison.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt, KindYear:
		return v.i == o.i
	case KindUint:
		return v.u == o.u
	case KindFloat:
		return v.f == o.f
	case KindString, KindJSON:
		return v.s == o.s
	case KindBytes:
		return string(v.by) == string(o.by)
	case KindDateTime, KindDate, KindTime:
		return v.t.Equal(o.t)
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindUUID:
		return v.uid == o.uid
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindVector:
		if len(v.vec) != len(o.vec) {
			return false
		}
		for i := range v.vec {
			if v.vec[i] != o.vec[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String returns a debug representation of the value.
func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}

// Adapt validates v against the column type t and returns the adapted
// value. A nil v becomes SQL NULL of that type. Values that do not fit
// the type, exceed its bounds, or fall outside an enum's variants are
// rejected with a TypeMismatchError.
func Adapt(v any, t *ColumnType) (*Value, error) {
	if t == nil {
		return AdaptAny(v)
	}
	if v == nil {
		return &Value{kind: KindNull, typ: t}, nil
	}
	if val, ok := v.(*Value); ok {
		if val.typ.Equal(t) {
			return val, nil
		}
		return Adapt(val.Any(), t)
	}
	switch t.kind {
	case typeTinyInt:
		return adaptSigned(v, t, math.MinInt8, math.MaxInt8)
	case typeSmallInt:
		return adaptSigned(v, t, math.MinInt16, math.MaxInt16)
	case typeInt:
		return adaptSigned(v, t, math.MinInt32, math.MaxInt32)
	case typeBigInt:
		return adaptSigned(v, t, math.MinInt64, math.MaxInt64)
	case typeTinyUnsigned:
		return adaptUnsigned(v, t, math.MaxUint8)
	case typeSmallUnsigned:
		return adaptUnsigned(v, t, math.MaxUint16)
	case typeUnsigned:
		return adaptUnsigned(v, t, math.MaxUint32)
	case typeBigUnsigned:
		return adaptUnsigned(v, t, math.MaxUint64)
	case typeBit, typeVarBit:
		return adaptUnsigned(v, t, math.MaxUint64)
	case typeChar, typeVarchar, typeText, typeLTree, typeCidr, typeInet, typeMacAddr:
		s, ok := v.(string)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		if (t.kind == typeChar || t.kind == typeVarchar) && t.length > 0 {
			if n := uint32(utf8.RuneCountInString(s)); n > t.length {
				return nil, NewTypeMismatchErrorReason(t.String(), v, fmt.Sprintf("length %d exceeds %d", n, t.length))
			}
		}
		return &Value{kind: KindString, typ: t, s: s}, nil
	case typeEnum:
		s, ok := v.(string)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		for _, variant := range t.variants {
			if s == variant {
				return &Value{kind: KindString, typ: t, s: s}, nil
			}
		}
		return nil, NewTypeMismatchErrorReason(t.String(), v, "not a variant")
	case typeFloat, typeDouble:
		switch f := v.(type) {
		case float32:
			return &Value{kind: KindFloat, typ: t, f: float64(f)}, nil
		case float64:
			return &Value{kind: KindFloat, typ: t, f: f}, nil
		}
		return nil, NewTypeMismatchError(t.String(), v)
	case typeDecimal, typeMoney:
		return adaptDecimal(v, t)
	case typeDateTime, typeTimestamp, typeTimestampTZ:
		tm, ok := v.(time.Time)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		return &Value{kind: KindDateTime, typ: t, t: tm}, nil
	case typeDate:
		tm, ok := v.(time.Time)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		return &Value{kind: KindDate, typ: t, t: tm}, nil
	case typeTime:
		tm, ok := v.(time.Time)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		return &Value{kind: KindTime, typ: t, t: tm}, nil
	case typeYear:
		i, ok := toInt64(v)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		if i < 1901 || i > 2155 {
			return nil, NewTypeMismatchErrorReason(t.String(), v, "year out of range")
		}
		return &Value{kind: KindYear, typ: t, i: i}, nil
	case typeInterval:
		switch d := v.(type) {
		case string:
			return &Value{kind: KindString, typ: t, s: d}, nil
		case time.Duration:
			return &Value{kind: KindString, typ: t, s: fmt.Sprintf("%d microseconds", d.Microseconds())}, nil
		}
		return nil, NewTypeMismatchError(t.String(), v)
	case typeBinary, typeVarBinary, typeBlob:
		by, ok := v.([]byte)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		if t.kind == typeBinary && t.length > 0 && uint32(len(by)) > t.length {
			return nil, NewTypeMismatchErrorReason(t.String(), v, fmt.Sprintf("length %d exceeds %d", len(by), t.length))
		}
		return &Value{kind: KindBytes, typ: t, by: by}, nil
	case typeBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, NewTypeMismatchError(t.String(), v)
		}
		return &Value{kind: KindBool, typ: t, b: b}, nil
	case typeJSON, typeJSONBinary:
		return adaptJSON(v, t)
	case typeUUID:
		switch u := v.(type) {
		case uuid.UUID:
			return &Value{kind: KindUUID, typ: t, uid: u}, nil
		case [16]byte:
			return &Value{kind: KindUUID, typ: t, uid: uuid.UUID(u)}, nil
		case string:
			id, err := uuid.Parse(u)
			if err != nil {
				return nil, NewTypeMismatchErrorReason(t.String(), v, err.Error())
			}
			return &Value{kind: KindUUID, typ: t, uid: id}, nil
		}
		return nil, NewTypeMismatchError(t.String(), v)
	case typeArray:
		return adaptArray(v, t)
	case typeVector:
		return adaptVector(v, t)
	default:
		return nil, NewTypeMismatchError(t.String(), v)
	}
}

// AdaptAny adapts v by inferring its column type from the Go type.
func AdaptAny(v any) (*Value, error) {
	if v == nil {
		return &Value{kind: KindNull}, nil
	}
	switch x := v.(type) {
	case *Value:
		return x, nil
	case bool:
		return Adapt(x, Boolean())
	case int, int8, int16, int32, int64:
		return Adapt(x, BigInt())
	case uint, uint8, uint16, uint32, uint64:
		return Adapt(x, BigUnsigned())
	case float32, float64:
		return Adapt(x, Double())
	case string:
		return Adapt(x, Varchar(0))
	case []byte:
		return Adapt(x, Blob())
	case time.Time:
		return Adapt(x, DateTime())
	case time.Duration:
		return Adapt(x, IntervalAny())
	case uuid.UUID:
		return Adapt(x, UUID())
	case decimal.Decimal:
		return Adapt(x, Decimal(0, 0))
	case json.RawMessage:
		return Adapt(x, JSON())
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return Adapt(v, JSON())
	}
	return nil, NewTypeMismatchErrorReason("any", v, "could not infer column type")
}

func adaptSigned(v any, t *ColumnType, lo, hi int64) (*Value, error) {
	i, ok := toInt64(v)
	if !ok {
		return nil, NewTypeMismatchError(t.String(), v)
	}
	if i < lo || i > hi {
		return nil, NewTypeMismatchErrorReason(t.String(), v, "value out of range")
	}
	return &Value{kind: KindInt, typ: t, i: i}, nil
}

func adaptUnsigned(v any, t *ColumnType, hi uint64) (*Value, error) {
	u, ok := toUint64(v)
	if !ok {
		return nil, NewTypeMismatchErrorReason(t.String(), v, "value out of range")
	}
	if u > hi {
		return nil, NewTypeMismatchErrorReason(t.String(), v, "value out of range")
	}
	return &Value{kind: KindUint, typ: t, u: u}, nil
}

func adaptDecimal(v any, t *ColumnType) (*Value, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return &Value{kind: KindDecimal, typ: t, dec: x}, nil
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return nil, NewTypeMismatchErrorReason(t.String(), v, err.Error())
		}
		return &Value{kind: KindDecimal, typ: t, dec: d}, nil
	case float32:
		return &Value{kind: KindDecimal, typ: t, dec: decimal.NewFromFloat(float64(x))}, nil
	case float64:
		return &Value{kind: KindDecimal, typ: t, dec: decimal.NewFromFloat(x)}, nil
	}
	if i, ok := toInt64(v); ok {
		return &Value{kind: KindDecimal, typ: t, dec: decimal.NewFromInt(i)}, nil
	}
	if u, ok := toUint64(v); ok {
		d := decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
		return &Value{kind: KindDecimal, typ: t, dec: d}, nil
	}
	return nil, NewTypeMismatchError(t.String(), v)
}

func adaptJSON(v any, t *ColumnType) (*Value, error) {
	switch x := v.(type) {
	case json.RawMessage:
		if !json.Valid(x) {
			return nil, NewTypeMismatchErrorReason(t.String(), v, "invalid JSON")
		}
		return &Value{kind: KindJSON, typ: t, s: string(x)}, nil
	case []byte:
		if !json.Valid(x) {
			return nil, NewTypeMismatchErrorReason(t.String(), v, "invalid JSON")
		}
		return &Value{kind: KindJSON, typ: t, s: string(x)}, nil
	case string:
		if !json.Valid([]byte(x)) {
			return nil, NewTypeMismatchErrorReason(t.String(), v, "invalid JSON")
		}
		return &Value{kind: KindJSON, typ: t, s: x}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, NewTypeMismatchErrorReason(t.String(), v, err.Error())
	}
	return &Value{kind: KindJSON, typ: t, s: string(b)}, nil
}

func adaptArray(v any, t *ColumnType) (*Value, error) {
	if t.elem == nil {
		return nil, NewTypeMismatchErrorReason(t.String(), v, "array type has no element type")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, NewTypeMismatchError(t.String(), v)
	}
	elems := make([]*Value, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		ev, err := Adapt(rv.Index(i).Interface(), t.elem)
		if err != nil {
			return nil, err
		}
		elems[i] = ev
	}
	return &Value{kind: KindArray, typ: t, arr: elems}, nil
}

func adaptVector(v any, t *ColumnType) (*Value, error) {
	var vec []float64
	switch x := v.(type) {
	case []float64:
		vec = append(vec, x...)
	case []float32:
		vec = make([]float64, len(x))
		for i, f := range x {
			vec[i] = float64(f)
		}
	default:
		return nil, NewTypeMismatchError(t.String(), v)
	}
	if t.length > 0 && uint32(len(vec)) != t.length {
		return nil, NewTypeMismatchErrorReason(t.String(), v, fmt.Sprintf("dimension %d does not match %d", len(vec), t.length))
	}
	return &Value{kind: KindVector, typ: t, vec: vec}, nil
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		if uint64(x) > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int8:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int16:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int32:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	}
	return 0, false
}
