package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blugnu/dbsession"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, dbsession.Providers(), Name)
	assert.Contains(t, dbsession.Providers(), PgxName)
}

func TestProvider_CommandText(t *testing.T) {
	p := New(Name, "postgres")
	params := []*dbsession.Parameter{{Name: "@a"}, {Name: "@b"}}

	t.Run("text", func(t *testing.T) {
		text, err := p.CommandText("SELECT $1", dbsession.Text, params)
		require.NoError(t, err)
		assert.Equal(t, "SELECT $1", text)
	})

	t.Run("stored procedure", func(t *testing.T) {
		text, err := p.CommandText("archive", dbsession.StoredProcedure, params)
		require.NoError(t, err)
		assert.Equal(t, "CALL archive($1, $2)", text)
	})
}

func TestSession(t *testing.T) {
	// ARRANGE
	ctx := dbsession.ContextWithPrincipal(context.Background(), dbsession.Identity("alice"))
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	s, err := dbsession.New(ctx, "dsn",
		dbsession.WithProvider(New(Name, "sqlmock")),
		dbsession.WithDb(db),
		dbsession.WithUserContext(dbsession.AmbientUserContext{}),
	)
	require.NoError(t, err)

	mock.ExpectExec(ContextCommand).WithArgs("alice").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE t SET a = $1 WHERE b = $2").WithArgs("x", nil).WillReturnResult(sqlmock.NewResult(0, 1))

	// ACT
	n, err := s.ExecFunc(ctx, "UPDATE t SET a = $1 WHERE b = $2", dbsession.Text, func(p *dbsession.Params) {
		p.Set("a", "x")
		p.Set("b", nil)
	})

	// ASSERT
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
