package sqlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlkit"
)

func TestColumnTypeDefaults(t *testing.T) {
	assert.Equal(t, "char(1)", sqlkit.Char(0).String())
	assert.Equal(t, "char(8)", sqlkit.Char(8).String())
	assert.Equal(t, "varchar", sqlkit.Varchar(0).String())
	assert.Equal(t, "varchar(255)", sqlkit.Varchar(255).String())
	assert.Equal(t, "binary(1)", sqlkit.Binary(0).String())
	assert.Equal(t, "bit varying(1)", sqlkit.VarBit(0).String())
}

func TestDecimalPrecisionScale(t *testing.T) {
	assert.Equal(t, "decimal(10, 2)", sqlkit.Decimal(10, 2).String())
	// Either part being zero drops the pair.
	assert.Equal(t, "decimal", sqlkit.Decimal(10, 0).String())
	assert.Equal(t, "decimal", sqlkit.Decimal(0, 2).String())
	assert.Equal(t, "money(19, 4)", sqlkit.Money(19, 4).String())
	assert.Equal(t, "money", sqlkit.Money(0, 0).String())
}

func TestEnum(t *testing.T) {
	t.Run("SortedAndDeduplicated", func(t *testing.T) {
		e, err := sqlkit.Enum("status", "open", "closed", "open", "pending")
		require.NoError(t, err)
		assert.Equal(t, []string{"closed", "open", "pending"}, e.Variants())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := sqlkit.Enum("status")
		require.Error(t, err)
		assert.True(t, sqlkit.IsStructural(err))
	})
}

func TestInterval(t *testing.T) {
	assert.Equal(t, "interval DAY TO SECOND", sqlkit.Interval(sqlkit.IntervalDayToSecond, 0).String())
	assert.Equal(t, "interval", sqlkit.IntervalAny().String())
	assert.Equal(t, "MINUTE TO SECOND", sqlkit.IntervalMinuteToSecond.String())
}

func TestArrayAndVector(t *testing.T) {
	arr := sqlkit.Array(sqlkit.Int())
	assert.Equal(t, "array of integer", arr.String())
	assert.True(t, arr.Elem().Equal(sqlkit.Int()))
	assert.Nil(t, sqlkit.Int().Elem())

	assert.Equal(t, "vector(3)", sqlkit.Vector(3).String())
	assert.Equal(t, "vector", sqlkit.Vector(0).String())
}

func TestColumnTypeEqual(t *testing.T) {
	assert.True(t, sqlkit.Varchar(10).Equal(sqlkit.Varchar(10)))
	assert.False(t, sqlkit.Varchar(10).Equal(sqlkit.Varchar(20)))
	assert.False(t, sqlkit.Varchar(10).Equal(sqlkit.Char(10)))
	assert.True(t, sqlkit.Array(sqlkit.Int()).Equal(sqlkit.Array(sqlkit.Int())))
	assert.False(t, sqlkit.Array(sqlkit.Int()).Equal(sqlkit.Array(sqlkit.Text())))

	e1, err := sqlkit.Enum("status", "a", "b")
	require.NoError(t, err)
	e2, err := sqlkit.Enum("status", "b", "a")
	require.NoError(t, err)
	assert.True(t, e1.Equal(e2))

	e3, err := sqlkit.Enum("status", "a", "c")
	require.NoError(t, err)
	assert.False(t, e1.Equal(e3))
}
