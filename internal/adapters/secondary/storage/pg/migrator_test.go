package pg

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "sqlmock"), mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseMigrationName(t *testing.T) {
	version, name, err := parseMigrationName("0007_add_index.sql")
	require.NoError(t, err)
	assert.Equal(t, int64(7), version)
	assert.Equal(t, "add_index", name)

	_, _, err = parseMigrationName("noversion.sql")
	assert.Error(t, err)
	_, _, err = parseMigrationName("abc_name.sql")
	assert.Error(t, err)
}

func TestGetMigrations_Embedded(t *testing.T) {
	migrations, err := getMigrations(migrationsFS)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, int64(1), migrations[0].Version)
	assert.Contains(t, migrations[0].Content, "CREATE TABLE IF NOT EXISTS natal_charts")
}

func TestRunMigrations_AppliesPending(t *testing.T) {
	db, mock := newMockDB(t)
	source := fstest.MapFS{
		"migrations/0002_second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"migrations/0001_first.sql":  {Data: []byte("CREATE TABLE a (id INT);")},
		"migrations/README.md":       {Data: []byte("skip")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE\\(MAX\\(version\\), 0\\) FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE b").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(int64(2), true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(int64(2), false).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, runMigrations(context.Background(), db, source, discardLogger()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_FailedMigrationRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	source := fstest.MapFS{
		"migrations/0001_first.sql": {Data: []byte("CREATE TABLE a (id INT);")},
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE a").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := runMigrations(context.Background(), db, source, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first")
	assert.NoError(t, mock.ExpectationsWereMet())
}
