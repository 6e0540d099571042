package dbsession

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"sync"
)

const MockProviderName = "sqlmock"
const MockContextCommand = "SET CONTEXT_INFO @username"

// MockProvider is a Provider for use with go-sqlmock.  A session created
// with a MockProvider and a sqlmock DSN connects to the mock database
// registered with that DSN:
//
//	_, mock, _ := sqlmock.NewWithDSN("mock-db")
//	s, err := dbsession.New(ctx, "mock-db", dbsession.WithProvider(dbsession.NewMockProvider()))
//
// Stored procedure commands are executed as "EXEC <name> <params>" and
// the user context is stamped using MockContextCommand.
type MockProvider struct {
	BaseProvider
}

// NewMockProvider returns a MockProvider using the "sqlmock" driver.
func NewMockProvider() *MockProvider {
	return &MockProvider{BaseProvider{ProviderName: MockProviderName, DriverName: "sqlmock"}}
}

// CommandText implements Provider.
func (p *MockProvider) CommandText(query string, kind CommandKind, params []*Parameter) (string, error) {
	if kind != StoredProcedure {
		return p.BaseProvider.CommandText(query, kind, params)
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.TrimSpace("EXEC " + query + " " + strings.Join(names, ", ")), nil
}

// ContextCommand implements Provider.
func (p *MockProvider) ContextCommand() (string, string) {
	return MockContextCommand, "username"
}

// MockOpenFunc replaces the function used to open the database handle of
// a session.
func MockOpenFunc(fn func(string, string) (*sql.DB, error)) ConfigurationFunc {
	return func(s *Session) error {
		s.open = fn
		return nil
	}
}

// MockOpenFuncResult replaces the function used to open the database handle
// of a session with one returning the specified values.
func MockOpenFuncResult(db *sql.DB, err error) ConfigurationFunc {
	return func(s *Session) error {
		s.open = func(string, string) (*sql.DB, error) { return db, err }
		return nil
	}
}

var registerOnce sync.Once

// MockBadConnection returns a mock *sql.DB which returns driver.ErrBadConn on
// all operations except Open and Close.
//
// The mock has no spy or fake capabilities; it serves only to be used when
// testing higher-level operations in the presence of a bad connection.
func MockBadConnection() *sql.DB {
	registerOnce.Do(func() {
		sql.Register("badconnection", &badconnection{})
	})

	db, _ := sql.Open("badconnection", "")
	return db
}

// badconnection implements the interfaces necessary as a sql.Driver
// and sql.Conn.
//
// As a driver it returns itself as a connection.
//
// As a connection it returns driver.ErrBadConn on all operations except
// Open and Close.
type badconnection struct{}

// Open implements the sql.Driver interface, returning itself as a connection.
func (d *badconnection) Open(string) (driver.Conn, error) {
	return d, nil
}

// Prepare implements the sql.Conn interface, returning driver.ErrBadConn.
func (d *badconnection) Prepare(string) (driver.Stmt, error) {
	return nil, driver.ErrBadConn
}

// Close implements the sql.Conn interface, returning nil.
func (d *badconnection) Close() error { return nil }

// Begin implements the sql.Conn interface, returning driver.ErrBadConn.
func (d *badconnection) Begin() (driver.Tx, error) {
	return nil, driver.ErrBadConn
}

// ExecContext implements the sql.ExecerContext interface, returning
// driver.ErrBadConn.
func (d *badconnection) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return nil, driver.ErrBadConn
}
