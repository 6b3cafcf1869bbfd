package sqlkit_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlkit"
	"github.com/syssam/sqlkit/dialect"
)

func TestOpen(t *testing.T) {
	sources := map[string]string{
		"postgres": "postgres://localhost:5432/app?sslmode=disable",
		"mysql":    "root:secret@tcp(localhost:3306)/app",
		"sqlite":   "file:app.db?mode=memory",
	}
	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			drv, err := sqlkit.Open(name, source)
			require.NoError(t, err)
			defer drv.Close()
			d, err := dialect.Parse(name)
			require.NoError(t, err)
			assert.Equal(t, d, drv.Dialect())
		})
	}
}

func TestOpenUnknownDialect(t *testing.T) {
	_, err := sqlkit.Open("oracle", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestDriverExecStmt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.OpenDB(dialect.Postgres, db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users" ("name") VALUES ($1)`)).
		WithArgs("alice").
		WillReturnResult(sqlmock.NewResult(1, 1))

	var res sql.Result
	err = drv.ExecStmt(context.Background(),
		sqlkit.NewInsert("users").Columns("name").Values("alice"), &res)
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverQueryStmt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.OpenDB(dialect.Postgres, db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "name" FROM "users" WHERE "id" = $1`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "alice"))

	var rows sqlkit.Rows
	err = drv.QueryStmt(context.Background(),
		sqlkit.NewSelect().
			Columns("id", "name").
			From("users").
			Where(sqlkit.C("id").EQ(7)),
		&rows)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var (
		id   int64
		name string
	)
	require.NoError(t, rows.Scan(&id, &name))
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "alice", name)
	assert.False(t, rows.Next())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverExecStmtBuildError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.OpenDB(dialect.Postgres, db)

	err = drv.ExecStmt(context.Background(), sqlkit.NewInsert("t"), nil)
	require.Error(t, err)
	assert.True(t, sqlkit.IsStructural(err))
}

func TestDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.OpenDB(dialect.Postgres, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "t" SET "n" = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	err = tx.(*sqlkit.Tx).ExecStmt(context.Background(), dialect.Postgres,
		sqlkit.NewUpdate("t").Set("n", 1), nil)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConnExecArgTypes(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.OpenDB(dialect.Postgres, db)

	err = drv.Exec(context.Background(), "SELECT 1", "not-a-slice", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect []any")

	err = drv.Exec(context.Background(), "SELECT 1", []any{}, "bad-dest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect *sql.Result")

	err = drv.Query(context.Background(), "SELECT 1", []any{}, "bad-dest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expect *sqlkit.Rows")
}

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.NewStatsDriver(sqlkit.OpenDB(dialect.Postgres, db))

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "t" ("a") VALUES ($1)`)).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "t"`)).
		WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(1))

	require.NoError(t, drv.ExecStmt(context.Background(),
		sqlkit.NewInsert("t").Columns("a").Values(1), nil))

	var rows sqlkit.Rows
	require.NoError(t, drv.QueryStmt(context.Background(),
		sqlkit.NewSelect().From("t"), &rows))
	rows.Close()

	snap := drv.QueryStats().Snapshot()
	assert.Equal(t, int64(2), snap.Total)
	assert.Equal(t, int64(1), snap.ByKind[sqlkit.StmtInsert])
	assert.Equal(t, int64(1), snap.ByKind[sqlkit.StmtSelect])
	assert.Equal(t, int64(0), snap.Errors)
	assert.Greater(t, snap.Duration, time.Duration(0))
	assert.Greater(t, snap.AvgDuration(), time.Duration(0))
	assert.Contains(t, snap.String(), "total=2 select=1 insert=1")

	assert.Equal(t, int64(1), drv.QueryStats().Count(sqlkit.StmtSelect))
	drv.QueryStats().Reset()
	assert.Equal(t, int64(0), drv.QueryStats().Snapshot().Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsDriverSlowHook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var (
		slow     []string
		dialects []string
	)
	drv := sqlkit.NewStatsDriver(sqlkit.OpenDB(dialect.Postgres, db),
		sqlkit.WithSlowThreshold(0),
		sqlkit.WithSlowQueryHook(func(_ context.Context, d, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
			dialects = append(dialects, d)
		}))
	assert.Equal(t, time.Duration(0), drv.SlowThreshold())

	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(context.Background(), "SELECT 1", []any{}, nil))

	require.Len(t, slow, 1)
	assert.Equal(t, "SELECT 1", slow[0])
	assert.Equal(t, dialect.Postgres, dialects[0])
	assert.Equal(t, int64(1), drv.QueryStats().Snapshot().Slow)

	drv.SetSlowThreshold(time.Minute)
	assert.Equal(t, time.Minute, drv.SlowThreshold())
}

func TestStatsDriverCountsErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.NewStatsDriver(sqlkit.OpenDB(dialect.Postgres, db))

	mock.ExpectExec("BROKEN").WillReturnError(sql.ErrConnDone)
	err = drv.Exec(context.Background(), "BROKEN", []any{}, nil)
	require.Error(t, err)
	snap := drv.QueryStats().Snapshot()
	assert.Equal(t, int64(1), snap.Errors)
	assert.Equal(t, int64(1), snap.ByKind[sqlkit.StmtOther])
}

func TestStmtKindClassification(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := sqlkit.NewStatsDriver(sqlkit.OpenDB(dialect.MySQL, db))

	mock.ExpectExec("REPLACE INTO `t`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("CREATE TABLE `t2`").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, drv.Exec(context.Background(), "REPLACE INTO `t` (`a`) VALUES (1)", []any{}, nil))
	require.NoError(t, drv.Exec(context.Background(), "CREATE TABLE `t2` (`a` int)", []any{}, nil))

	stats := drv.QueryStats()
	assert.Equal(t, int64(1), stats.Count(sqlkit.StmtInsert))
	assert.Equal(t, int64(1), stats.Count(sqlkit.StmtDDL))
	assert.Equal(t, int64(0), stats.Count(sqlkit.StmtSelect))
}
