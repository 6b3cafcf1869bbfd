package sqlkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlkit"
	"github.com/syssam/sqlkit/dialect"
)

func userTable() *sqlkit.Table {
	return sqlkit.NewTable("users").
		AddColumn(sqlkit.NewColumn("id", sqlkit.BigInt()).AutoIncrement().PrimaryKey()).
		AddColumn(sqlkit.NewColumn("name", sqlkit.Varchar(120)).NotNull()).
		AddColumn(sqlkit.NewColumn("email", sqlkit.Varchar(254)).NotNull().Unique()).
		AddColumn(sqlkit.NewColumn("created_at", sqlkit.TimestampTZ()).NotNull().Default(sqlkit.CurrentTimestamp()))
}

func TestCreateTable(t *testing.T) {
	tbl := userTable()

	sql, err := tbl.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "users" ("id" bigserial PRIMARY KEY, `+
		`"name" varchar(120) NOT NULL, `+
		`"email" varchar(254) NOT NULL UNIQUE, `+
		`"created_at" timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP)`, sql)

	sql, err = tbl.ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `users` (`id` bigint AUTO_INCREMENT PRIMARY KEY, "+
		"`name` varchar(120) NOT NULL, "+
		"`email` varchar(254) NOT NULL UNIQUE, "+
		"`created_at` timestamp NOT NULL DEFAULT CURRENT_TIMESTAMP)", sql)

	sql, err = tbl.ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "users" ("id" integer PRIMARY KEY AUTOINCREMENT, `+
		`"name" varchar(120) NOT NULL, `+
		`"email" varchar(254) NOT NULL UNIQUE, `+
		`"created_at" timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP)`, sql)
}

func TestCreateTableBuildHasNoArgs(t *testing.T) {
	sql, args, err := userTable().Build(dialect.Postgres)
	require.NoError(t, err)
	assert.Contains(t, sql, "DEFAULT CURRENT_TIMESTAMP")
	assert.Empty(t, args)
}

func TestCreateTableCompositePrimaryKey(t *testing.T) {
	sql, err := sqlkit.NewTable("follows").
		AddColumn(sqlkit.NewColumn("follower_id", sqlkit.BigInt()).PrimaryKey()).
		AddColumn(sqlkit.NewColumn("followee_id", sqlkit.BigInt()).PrimaryKey()).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "follows" ("follower_id" bigint, "followee_id" bigint, PRIMARY KEY ("follower_id", "followee_id"))`, sql)
}

func TestCreateTableTemporaryIfNotExists(t *testing.T) {
	sql, err := sqlkit.NewTable("tmp").
		Temporary().
		IfNotExists().
		AddColumn(sqlkit.NewColumn("v", sqlkit.Text())).
		ToSQL(dialect.SQLite)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TEMPORARY TABLE IF NOT EXISTS "tmp" ("v" text)`, sql)
}

func TestCreateTableChecks(t *testing.T) {
	sql, err := sqlkit.NewTable("products").
		AddColumn(sqlkit.NewColumn("price", sqlkit.Decimal(10, 2)).NotNull()).
		AddCheck(sqlkit.C("price").GTE(0)).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "products" ("price" decimal(10, 2) NOT NULL, CHECK ("price" >= 0))`, sql)
}

func TestCreateTableForeignKey(t *testing.T) {
	tbl := sqlkit.NewTable("orders").
		AddColumn(sqlkit.NewColumn("id", sqlkit.BigInt()).PrimaryKey()).
		AddColumn(sqlkit.NewColumn("user_id", sqlkit.BigInt()).NotNull()).
		AddForeignKey(sqlkit.NewForeignKey("fk_orders_user").
			Columns("user_id").
			References("users", "id").
			OnDelete(sqlkit.Cascade).
			OnUpdate(sqlkit.Restrict))

	sql, err := tbl.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "orders" ("id" bigint PRIMARY KEY, "user_id" bigint NOT NULL, `+
		`CONSTRAINT "fk_orders_user" FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE CASCADE ON UPDATE RESTRICT)`, sql)
}

func TestForeignKeyErrors(t *testing.T) {
	t.Run("no columns", func(t *testing.T) {
		_, err := sqlkit.NewTable("t").
			AddColumn(sqlkit.NewColumn("a", sqlkit.Int())).
			AddForeignKey(sqlkit.NewForeignKey("").References("x", "id")).
			ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.True(t, sqlkit.IsStructural(err))
	})
	t.Run("column count mismatch", func(t *testing.T) {
		_, err := sqlkit.NewTable("t").
			AddColumn(sqlkit.NewColumn("a", sqlkit.Int())).
			AddForeignKey(sqlkit.NewForeignKey("").Columns("a").References("x", "id", "rev")).
			ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foreign key references 2 columns but has 1")
	})
}

func TestCreateTableGeneratedColumns(t *testing.T) {
	stored := sqlkit.NewTable("lines").
		AddColumn(sqlkit.NewColumn("price", sqlkit.Decimal(10, 2))).
		AddColumn(sqlkit.NewColumn("qty", sqlkit.Int())).
		AddColumn(sqlkit.NewColumn("total", sqlkit.Decimal(12, 2)).
			GeneratedStored(sqlkit.C("price").Mul(sqlkit.C("qty"))))

	sql, err := stored.ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "lines" ("price" decimal(10, 2), "qty" integer, `+
		`"total" decimal(12, 2) GENERATED ALWAYS AS ("price" * "qty") STORED)`, sql)

	virtual := sqlkit.NewTable("lines").
		AddColumn(sqlkit.NewColumn("price", sqlkit.Decimal(10, 2))).
		AddColumn(sqlkit.NewColumn("doubled", sqlkit.Decimal(12, 2)).
			GeneratedVirtual(sqlkit.C("price").Mul(2)))

	sql, err = virtual.ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `lines` (`price` decimal(10, 2), "+
		"`doubled` decimal(12, 2) GENERATED ALWAYS AS (`price` * 2) VIRTUAL)", sql)

	_, err = virtual.ToSQL(dialect.Postgres)
	require.Error(t, err)
	assert.True(t, sqlkit.IsUnsupported(err))
}

func TestCreateTableMySQLOptions(t *testing.T) {
	sql, err := sqlkit.NewTable("events").
		AddColumn(sqlkit.NewColumn("id", sqlkit.BigInt()).PrimaryKey().Comment("surrogate key")).
		Engine("InnoDB").
		Charset("utf8mb4").
		Collate("utf8mb4_bin").
		Comment("audit log").
		ToSQL(dialect.MySQL)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `events` (`id` bigint PRIMARY KEY COMMENT 'surrogate key') "+
		"ENGINE=InnoDB DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_bin COMMENT 'audit log'", sql)

	// Other dialects ignore the table options.
	sql, err = sqlkit.NewTable("events").
		AddColumn(sqlkit.NewColumn("id", sqlkit.BigInt()).PrimaryKey().Comment("surrogate key")).
		Engine("InnoDB").
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "events" ("id" bigint PRIMARY KEY)`, sql)
}

func TestCreateTableErrors(t *testing.T) {
	t.Run("no columns", func(t *testing.T) {
		_, err := sqlkit.NewTable("t").ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `table "t" has no columns`)
	})
	t.Run("duplicate column", func(t *testing.T) {
		_, err := sqlkit.NewTable("t").
			AddColumn(sqlkit.NewColumn("a", sqlkit.Int())).
			AddColumn(sqlkit.NewColumn("a", sqlkit.Text())).
			ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate column "a" in table "t"`)
	})
	t.Run("sqlite autoincrement needs integer", func(t *testing.T) {
		_, err := sqlkit.NewTable("t").
			AddColumn(sqlkit.NewColumn("id", sqlkit.Text()).AutoIncrement().PrimaryKey()).
			ToSQL(dialect.SQLite)
		require.Error(t, err)
		assert.True(t, sqlkit.IsStructural(err))
	})
	t.Run("bad name", func(t *testing.T) {
		_, err := sqlkit.NewTable("a..b").
			AddColumn(sqlkit.NewColumn("x", sqlkit.Int())).
			ToSQL(dialect.Postgres)
		require.Error(t, err)
		assert.True(t, sqlkit.IsInvalidIdentifier(err))
	})
}

func TestTableColumnAccessors(t *testing.T) {
	tbl := userTable()
	assert.Equal(t, 4, tbl.Len())
	require.NotNil(t, tbl.Column("email"))
	assert.Equal(t, "email", tbl.Column("email").Name())
	assert.Nil(t, tbl.Column("missing"))

	assert.True(t, tbl.RemoveColumn("email"))
	assert.False(t, tbl.RemoveColumn("email"))
	assert.Equal(t, 3, tbl.Len())
}

func TestTableIndexStatements(t *testing.T) {
	tbl := userTable().
		AddIndex(sqlkit.NewIndex("ix_users_name").Columns("name")).
		AddIndex(sqlkit.NewIndex("ux_users_email").Unique().Columns("email"))

	stmts := tbl.IndexStatements()
	require.Len(t, stmts, 2)

	sql, err := stmts[0].ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE INDEX "ix_users_name" ON "users" ("name")`, sql)

	sql, err = stmts[1].ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `CREATE UNIQUE INDEX "ux_users_email" ON "users" ("email")`, sql)
}

func TestTableColumnReferences(t *testing.T) {
	tbl := userTable()

	sql, err := sqlkit.NewSelect().
		Columns(tbl.C("id"), tbl.C("name")).
		From(tbl).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "users"."id", "users"."name" FROM "users"`, sql)

	u := tbl.As("u")
	sql, err = sqlkit.NewSelect().
		Columns(u.C("name")).
		From(u).
		ToSQL(dialect.Postgres)
	require.NoError(t, err)
	assert.Equal(t, `SELECT "u"."name" FROM "users" AS "u"`, sql)
}
