package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

func TestPostgres_GetUsesDollarPlaceholders(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT value FROM local_storage WHERE key = \$1`).
		WithArgs("allUsers").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"amy":{}}`)))

	v, err := repo.Get(context.Background(), "allUsers")
	require.NoError(t, err)
	require.Equal(t, []byte(`{"amy":{}}`), v)
}

func TestPostgres_GetNoRows(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT value FROM local_storage WHERE key = \$1`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPostgres_SetUpserts(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT INTO local_storage \(key, value\) VALUES \(\$1, \$2\) ON CONFLICT \(key\) DO UPDATE SET value = excluded.value`).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
}

func TestPostgres_SetError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT INTO local_storage`).
		WithArgs("k", []byte("v")).
		WillReturnError(errors.New("db down"))

	err := repo.Set(context.Background(), "k", []byte("v"))
	require.ErrorContains(t, err, "db down")
	require.ErrorContains(t, err, "failed to set local_storage[k]")
}

func TestPostgres_DeleteAndClear(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	mock.ExpectExec(`DELETE FROM local_storage WHERE key = \$1`).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM local_storage`).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.Delete(context.Background(), "k"))
	require.NoError(t, repo.Clear(context.Background()))
}

func TestPostgres_ListScanError(t *testing.T) {
	repo, mock := newPostgresWithMock(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte("1")).
		RowError(0, errors.New("row broke"))
	mock.ExpectQuery(`SELECT key, value FROM local_storage`).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "row broke")
}
