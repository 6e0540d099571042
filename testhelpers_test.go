package dbsession

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// arrangeSession initialises a session with a MockProvider and a sqlmock
// database.  The mock matches queries exactly.  Additional configuration
// functions are applied after those establishing the provider and database.
//
// The session owns the mock database; a test that closes the session must
// expect the database to be closed.
func arrangeSession(t *testing.T, cfg ...ConfigurationFunc) (*Session, sqlmock.Sqlmock) {
	return arrangeSessionWithContext(t, context.Background(), cfg...)
}

// arrangeSessionWithContext is arrangeSession with a specified context,
// typically carrying a principal.
func arrangeSessionWithContext(t *testing.T, ctx context.Context, cfg ...ConfigurationFunc) (*Session, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg = append([]ConfigurationFunc{
		WithProvider(NewMockProvider()),
		WithDb(db),
	}, cfg...)

	s, err := New(ctx, "mock-db", cfg...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return s, mock
}

// arrangeStampedSession initialises a session as arrangeSession, with a
// user context for the specified identity.
func arrangeStampedSession(t *testing.T, identity string, cfg ...ConfigurationFunc) (*Session, sqlmock.Sqlmock) {
	ctx := ContextWithPrincipal(context.Background(), Identity(identity))
	cfg = append(cfg, WithUserContext(AmbientUserContext{}))
	return arrangeSessionWithContext(t, ctx, cfg...)
}

// expectStamp configures a mock to expect the context of a user to be
// stamped.
func expectStamp(mock sqlmock.Sqlmock, identity string) {
	mock.ExpectExec(MockContextCommand).
		WithArgs(sql.Named("username", identity)).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func assertErrorIsNil(t *testing.T, err error) {
	t.Run("returns expected error", func(t *testing.T) {
		wanted := (error)(nil)
		got := err
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func assertExpectedError(t *testing.T, wanted error, got error) {
	t.Run("returns expected error", func(t *testing.T) {
		if !errors.Is(got, wanted) {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func assertExpectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Run("mock expectations were met", func(t *testing.T) {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	})
}

func assertConnectionReleased(t *testing.T, s *Session, wanted bool) {
	t.Run("connection released", func(t *testing.T) {
		got := s.conn == nil && s.state == connClosed
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}
