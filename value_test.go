package sqlkit_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlkit"
)

func TestAdaptIntegers(t *testing.T) {
	t.Run("InRange", func(t *testing.T) {
		v, err := sqlkit.Adapt(42, sqlkit.TinyInt())
		require.NoError(t, err)
		assert.Equal(t, sqlkit.KindInt, v.Kind())
		assert.Equal(t, int64(42), v.Any())
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := sqlkit.Adapt(300, sqlkit.TinyInt())
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))

		_, err = sqlkit.Adapt(-40000, sqlkit.SmallInt())
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})

	t.Run("NegativeUnsigned", func(t *testing.T) {
		_, err := sqlkit.Adapt(-1, sqlkit.TinyUnsigned())
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})

	t.Run("UnsignedBound", func(t *testing.T) {
		v, err := sqlkit.Adapt(255, sqlkit.TinyUnsigned())
		require.NoError(t, err)
		assert.Equal(t, uint64(255), v.Any())

		_, err = sqlkit.Adapt(256, sqlkit.TinyUnsigned())
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := sqlkit.Adapt("12", sqlkit.Int())
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})
}

func TestAdaptStrings(t *testing.T) {
	t.Run("Unbounded", func(t *testing.T) {
		v, err := sqlkit.Adapt("hello", sqlkit.Varchar(0))
		require.NoError(t, err)
		assert.Equal(t, "hello", v.Any())
	})

	t.Run("LengthBound", func(t *testing.T) {
		_, err := sqlkit.Adapt("hello", sqlkit.Varchar(3))
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})

	t.Run("RuneLength", func(t *testing.T) {
		// Length bounds count runes, not bytes.
		v, err := sqlkit.Adapt("héllo", sqlkit.Varchar(5))
		require.NoError(t, err)
		assert.Equal(t, "héllo", v.Any())
	})

	t.Run("NotAString", func(t *testing.T) {
		_, err := sqlkit.Adapt(5, sqlkit.Text())
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})
}

func TestAdaptEnum(t *testing.T) {
	status, err := sqlkit.Enum("status", "open", "closed")
	require.NoError(t, err)

	v, err := sqlkit.Adapt("open", status)
	require.NoError(t, err)
	assert.Equal(t, "open", v.Any())

	_, err = sqlkit.Adapt("bogus", status)
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptFloats(t *testing.T) {
	v, err := sqlkit.Adapt(3.5, sqlkit.Double())
	require.NoError(t, err)
	assert.Equal(t, 3.5, v.Any())

	v, err = sqlkit.Adapt(float32(1.5), sqlkit.Float())
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Any())

	// Integers do not silently widen to floats.
	_, err = sqlkit.Adapt(3, sqlkit.Double())
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptDecimal(t *testing.T) {
	t.Run("FromDecimal", func(t *testing.T) {
		d := decimal.RequireFromString("12.34")
		v, err := sqlkit.Adapt(d, sqlkit.Decimal(10, 2))
		require.NoError(t, err)
		assert.Equal(t, sqlkit.KindDecimal, v.Kind())
	})

	t.Run("FromString", func(t *testing.T) {
		v, err := sqlkit.Adapt("12.34", sqlkit.Decimal(10, 2))
		require.NoError(t, err)
		want, _ := sqlkit.Adapt(decimal.RequireFromString("12.34"), sqlkit.Decimal(10, 2))
		assert.True(t, v.Equal(want))
	})

	t.Run("FromInt", func(t *testing.T) {
		v, err := sqlkit.Adapt(7, sqlkit.Decimal(10, 2))
		require.NoError(t, err)
		assert.Equal(t, sqlkit.KindDecimal, v.Kind())
	})

	t.Run("BadString", func(t *testing.T) {
		_, err := sqlkit.Adapt("not a number", sqlkit.Decimal(10, 2))
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})
}

func TestAdaptTemporal(t *testing.T) {
	now := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

	v, err := sqlkit.Adapt(now, sqlkit.DateTime())
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindDateTime, v.Kind())

	v, err = sqlkit.Adapt(now, sqlkit.Date())
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindDate, v.Kind())

	v, err = sqlkit.Adapt(now, sqlkit.Time())
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindTime, v.Kind())

	_, err = sqlkit.Adapt("2024-05-17", sqlkit.Date())
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptYear(t *testing.T) {
	v, err := sqlkit.Adapt(2024, sqlkit.Year())
	require.NoError(t, err)
	assert.Equal(t, int64(2024), v.Any())

	_, err = sqlkit.Adapt(1900, sqlkit.Year())
	assert.True(t, sqlkit.IsTypeMismatch(err))

	_, err = sqlkit.Adapt(2156, sqlkit.Year())
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptInterval(t *testing.T) {
	v, err := sqlkit.Adapt("1 day", sqlkit.IntervalAny())
	require.NoError(t, err)
	assert.Equal(t, "1 day", v.Any())

	v, err = sqlkit.Adapt(90*time.Second, sqlkit.IntervalAny())
	require.NoError(t, err)
	assert.Equal(t, "90000000 microseconds", v.Any())
}

func TestAdaptBytes(t *testing.T) {
	v, err := sqlkit.Adapt([]byte{1, 2, 3}, sqlkit.Blob())
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, v.Any())

	_, err = sqlkit.Adapt([]byte{1, 2, 3}, sqlkit.Binary(2))
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptJSON(t *testing.T) {
	t.Run("ValidString", func(t *testing.T) {
		v, err := sqlkit.Adapt(`{"a": 1}`, sqlkit.JSON())
		require.NoError(t, err)
		assert.Equal(t, `{"a": 1}`, v.Any())
	})

	t.Run("InvalidString", func(t *testing.T) {
		_, err := sqlkit.Adapt("not json", sqlkit.JSON())
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})

	t.Run("Marshal", func(t *testing.T) {
		v, err := sqlkit.Adapt(map[string]int{"a": 1}, sqlkit.JSONBinary())
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, v.Any())
	})
}

func TestAdaptUUID(t *testing.T) {
	id := uuid.MustParse("a1a2a3a4-b1b2-c1c2-d1d2-e1e2e3e4e5e6")

	v, err := sqlkit.Adapt(id, sqlkit.UUID())
	require.NoError(t, err)
	assert.Equal(t, id, v.Any())

	v, err = sqlkit.Adapt(id.String(), sqlkit.UUID())
	require.NoError(t, err)
	assert.Equal(t, id, v.Any())

	v, err = sqlkit.Adapt([16]byte(id), sqlkit.UUID())
	require.NoError(t, err)
	assert.Equal(t, id, v.Any())

	_, err = sqlkit.Adapt("not-a-uuid", sqlkit.UUID())
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptArray(t *testing.T) {
	v, err := sqlkit.Adapt([]int{1, 2, 3}, sqlkit.Array(sqlkit.Int()))
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindArray, v.Kind())
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, v.Any())

	// Element adaptation failures propagate.
	_, err = sqlkit.Adapt([]int{1, 300}, sqlkit.Array(sqlkit.TinyInt()))
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))

	_, err = sqlkit.Adapt(5, sqlkit.Array(sqlkit.Int()))
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptVector(t *testing.T) {
	v, err := sqlkit.Adapt([]float64{1, 2, 3}, sqlkit.Vector(3))
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindVector, v.Kind())

	v, err = sqlkit.Adapt([]float32{1, 2}, sqlkit.Vector(0))
	require.NoError(t, err)
	assert.Equal(t, sqlkit.KindVector, v.Kind())

	_, err = sqlkit.Adapt([]float64{1, 2}, sqlkit.Vector(3))
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptNull(t *testing.T) {
	v, err := sqlkit.Adapt(nil, sqlkit.Int())
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.Nil(t, v.Any())
	assert.True(t, v.Type().Equal(sqlkit.Int()))
}

func TestAdaptBoolean(t *testing.T) {
	v, err := sqlkit.Adapt(true, sqlkit.Boolean())
	require.NoError(t, err)
	assert.Equal(t, true, v.Any())

	_, err = sqlkit.Adapt(1, sqlkit.Boolean())
	require.Error(t, err)
	assert.True(t, sqlkit.IsTypeMismatch(err))
}

func TestAdaptAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind sqlkit.ValueKind
	}{
		{"Bool", true, sqlkit.KindBool},
		{"Int", 7, sqlkit.KindInt},
		{"Uint", uint(7), sqlkit.KindUint},
		{"Float", 1.5, sqlkit.KindFloat},
		{"String", "x", sqlkit.KindString},
		{"Bytes", []byte{1}, sqlkit.KindBytes},
		{"Time", time.Now(), sqlkit.KindDateTime},
		{"Duration", time.Second, sqlkit.KindString},
		{"UUID", uuid.New(), sqlkit.KindUUID},
		{"Decimal", decimal.NewFromInt(3), sqlkit.KindDecimal},
		{"Map", map[string]int{"a": 1}, sqlkit.KindJSON},
		{"Struct", struct{ A int }{1}, sqlkit.KindJSON},
		{"Nil", nil, sqlkit.KindNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := sqlkit.AdaptAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}

	t.Run("Uninferable", func(t *testing.T) {
		_, err := sqlkit.AdaptAny(make(chan int))
		require.Error(t, err)
		assert.True(t, sqlkit.IsTypeMismatch(err))
	})
}

func TestValueEqual(t *testing.T) {
	a, err := sqlkit.Adapt(5, sqlkit.Int())
	require.NoError(t, err)
	b, err := sqlkit.Adapt(5, sqlkit.BigInt())
	require.NoError(t, err)
	c, err := sqlkit.Adapt(6, sqlkit.Int())
	require.NoError(t, err)

	// Equality compares payloads, not the adapted column types.
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
