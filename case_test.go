package sqlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlkit"
	"github.com/syssam/sqlkit/dialect"
)

func TestCaseExpression(t *testing.T) {
	bracket := sqlkit.NewCase().
		When(sqlkit.C("age").LT(18), "minor").
		When(sqlkit.C("age").LT(65), "adult").
		Else("senior").
		Expr()

	assert.Equal(t,
		`SELECT CASE WHEN "age" < 18 THEN 'minor' WHEN "age" < 65 THEN 'adult' ELSE 'senior' END`,
		exprSQL(t, bracket, dialect.Postgres))
	assert.Equal(t,
		"SELECT CASE WHEN `age` < 18 THEN 'minor' WHEN `age` < 65 THEN 'adult' ELSE 'senior' END",
		exprSQL(t, bracket, dialect.MySQL))
}

func TestCaseWithoutElse(t *testing.T) {
	e := sqlkit.NewCase().
		When(sqlkit.C("deleted_at").IsNotNull(), 1).
		Expr()
	assert.Equal(t,
		`SELECT CASE WHEN "deleted_at" IS NOT NULL THEN 1 END`,
		exprSQL(t, e, dialect.SQLite))
}

func TestCaseParameterized(t *testing.T) {
	q := sqlkit.NewSelect().
		ColumnAs(sqlkit.NewCase().
			When(sqlkit.C("score").GTE(90), "A").
			Else("B").
			Expr(), "grade").
		From("results")

	sql, args, err := q.Build(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT CASE WHEN "score" >= $1 THEN $2 ELSE $3 END AS "grade" FROM "results"`,
		sql)
	require.Len(t, args, 3)
	assert.Equal(t, int64(90), args[0].Any())
	assert.Equal(t, "A", args[1].Any())
	assert.Equal(t, "B", args[2].Any())
}

func TestCaseInOtherPositions(t *testing.T) {
	priority := sqlkit.NewCase().
		When(sqlkit.C("state").EQ("failed"), 0).
		Else(1).
		Expr()

	sql, err := sqlkit.NewSelect().
		From("jobs").
		OrderBy(sqlkit.Asc(priority)).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT * FROM "jobs" ORDER BY CASE WHEN "state" = 'failed' THEN 0 ELSE 1 END ASC`,
		sql)

	sql, err = sqlkit.NewUpdate("jobs").
		Set("priority", priority).
		ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t,
		`UPDATE "jobs" SET "priority" = CASE WHEN "state" = 'failed' THEN 0 ELSE 1 END`,
		sql)
}

func TestCaseWithoutWhens(t *testing.T) {
	err := exprErr(t, sqlkit.NewCase().Else(0).Expr(), dialect.Postgres)
	assert.True(t, sqlkit.IsStructural(err))
	assert.Contains(t, err.Error(), "CASE has no WHEN clauses")
}
