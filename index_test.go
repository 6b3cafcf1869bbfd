package sqlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlkit"
	"github.com/syssam/sqlkit/dialect"
)

func TestCreateIndex(t *testing.T) {
	ix := sqlkit.NewIndex("ix_users_name").Table("users").Columns("name")

	sql, err := ix.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix_users_name" ON "users" ("name")`, sql)

	sql, err = ix.ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE INDEX `ix_users_name` ON `users` (`name`)", sql)
}

func TestCreateIndexUniqueDesc(t *testing.T) {
	sql, err := sqlkit.NewIndex("ux_events").
		Table("events").
		Unique().
		Columns("kind").
		ColumnDesc("created_at").
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE INDEX "ux_events" ON "events" ("kind", "created_at" DESC)`, sql)
}

func TestCreateIndexIfNotExists(t *testing.T) {
	ix := sqlkit.NewIndex("ix").Table("t").Columns("a").IfNotExists()

	sql, err := ix.ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "ix" ON "t" ("a")`, sql)

	_, err = ix.ToSQL(dialect.MySQL)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreateIndexMethodPlacement(t *testing.T) {
	ix := sqlkit.NewIndex("ix").Table("t").Columns("a").Using("hash")

	sql, err := ix.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix" ON "t" USING hash ("a")`, sql)

	sql, err = ix.ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE INDEX `ix` ON `t` (`a`) USING hash", sql)

	_, err = ix.ToSQL(dialect.SQLite)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreateIndexMySQLPrefixAndFullText(t *testing.T) {
	sql, err := sqlkit.NewIndex("ix_body").
		Table("posts").
		ColumnPrefix("body", 40).
		ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE INDEX `ix_body` ON `posts` (`body`(40))", sql)

	// Prefix lengths are a MySQL extension; elsewhere the column renders bare.
	sql, err = sqlkit.NewIndex("ix_body").
		Table("posts").
		ColumnPrefix("body", 40).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix_body" ON "posts" ("body")`, sql)

	ft := sqlkit.NewIndex("ft_body").Table("posts").Columns("body").FullText()
	sql, err = ft.ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE FULLTEXT INDEX `ft_body` ON `posts` (`body`)", sql)

	_, err = ft.ToSQL(dialect.Postgres)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreateIndexPostgresExtensions(t *testing.T) {
	ix := sqlkit.NewIndex("ux_email").
		Table("users").
		Unique().
		Columns("email").
		Include("name").
		NullsNotDistinct()

	sql, err := ix.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE INDEX "ux_email" ON "users" ("email") INCLUDE ("name") NULLS NOT DISTINCT`, sql)

	_, err = ix.ToSQL(dialect.SQLite)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreatePartialIndex(t *testing.T) {
	ix := sqlkit.NewIndex("ix_active").
		Table("users").
		Columns("email").
		Where(sqlkit.C("deleted_at").IsNull())

	sql, err := ix.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix_active" ON "users" ("email") WHERE "deleted_at" IS NULL`, sql)

	sql, err = ix.ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix_active" ON "users" ("email") WHERE "deleted_at" IS NULL`, sql)

	_, err = ix.ToSQL(dialect.MySQL)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreateIndexErrors(t *testing.T) {
	t.Run("no table", func(t *testing.T) {
		_, err := sqlkit.NewIndex("ix").Columns("a").ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `index "ix" has no table`)
	})
	t.Run("no columns", func(t *testing.T) {
		_, err := sqlkit.NewIndex("ix").Table("t").ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `index "ix" has no columns`)
	})
}

func TestDropIndex(t *testing.T) {
	sql, err := sqlkit.NewDropIndex("ix").ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `DROP INDEX "ix"`, sql)

	sql, err = sqlkit.NewDropIndex("ix").IfExists().ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `DROP INDEX IF EXISTS "ix"`, sql)

	sql, err = sqlkit.NewDropIndex("ix").Table("t").ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "DROP INDEX `ix` ON `t`", sql)

	_, err = sqlkit.NewDropIndex("ix").ToSQL(dialect.MySQL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DROP INDEX requires a table name on mysql")

	_, err = sqlkit.NewDropIndex("ix").IfExists().Table("t").ToSQL(dialect.MySQL)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}
