package stdsql

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlt/dialect"
)

func TestColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE 1=0`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "email"}))

	src := NewSource(db, nil)
	cols, err := src.Columns(context.Background(), "", "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "first_name", "email"}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnsQualified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT \\* FROM `auth`.`users` WHERE 1=0").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	src := NewSource(db, dialect.MySQL{})
	cols, err := src.Columns(context.Background(), "auth", "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnsUnknownTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New(`relation "missing" does not exist`)
	mock.ExpectQuery(`SELECT \* FROM "missing" WHERE 1=0`).WillReturnError(boom)

	src := NewSource(db, nil)
	_, err = src.Columns(context.Background(), "", "missing")
	assert.ErrorIs(t, err, boom)
}
