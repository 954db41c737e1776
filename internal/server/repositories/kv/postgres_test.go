package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upsertPattern = `(?s)^INSERT\s+INTO\s+kv\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT`

func newPostgresWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestPostgresGet_UsesNumberedPlaceholders(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value"}).AddRow("SECRET", []byte("abc"))
	mock.ExpectQuery(`^SELECT key, value FROM kv WHERE key IN \(\$1, \$2\)$`).
		WithArgs("SECRET", "INITIALIZED").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "SECRET", "INITIALIZED")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"SECRET": []byte("abc")}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_All(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT key, value FROM kv$`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).AddRow("INITIALIZED", []byte("true")))

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("true"), got["INITIALIZED"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGet_DBError(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "SECRET")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[SECRET]: db down")
}

func TestPostgresSet_CommitsAllKeysInTx(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(upsertPattern).WithArgs("INITIALIZED", []byte("true")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertPattern).WithArgs("SECRET", []byte("abc")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Set(context.Background(), map[string][]byte{
		"SECRET":      []byte("abc"),
		"INITIALIZED": []byte("true"),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSet_RollsBackOnError(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(upsertPattern).WithArgs("INITIALIZED", []byte("true")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsertPattern).WithArgs("SECRET", []byte("abc")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Set(context.Background(), map[string][]byte{
		"SECRET":      []byte("abc"),
		"INITIALIZED": []byte("true"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set kv[SECRET]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClear(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM kv$`).WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, repo.Clear(context.Background()))

	mock.ExpectExec(`^DELETE FROM kv$`).WillReturnError(errors.New("locked"))
	err := repo.Clear(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear kv: locked")

	require.NoError(t, mock.ExpectationsWereMet())
}
