package dbsession

import (
	"context"
	"database/sql"
)

// Connector identifies the connection string and the provider to be used
// to connect to a database.
type Connector interface {
	ConnectionString() string
	ProviderName() string
}

// Querier is implemented by *sql.Conn and *sql.Tx.  It is the target on
// which a session executes statements: the pinned connection, or the
// active transaction when there is one.
type Querier interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}

// Adapter fills a TableSet by executing a prepared command.
type Adapter interface {
	Fill(context.Context, Querier, *TableSet) error
}

// Provider supplies the behaviour that varies between database backends.
//
// Implementations are made available to sessions by registering them
// (see Register) or by supplying one directly using WithProvider.  Most
// implementations embed BaseProvider and override only what differs.
type Provider interface {
	// Name is the identifier used to select the provider in connection
	// string entries.
	Name() string

	// Driver is the database/sql driver name passed to sql.Open.
	Driver() string

	// ParameterMarker is the prefix carried by bound parameter names.
	ParameterMarker() string

	// Null is the value bound in place of a nil parameter value.
	Null() any

	// Args converts bound parameters to database/sql arguments.
	Args([]*Parameter) ([]any, error)

	// CommandText returns the statement to be executed for a query of the
	// specified kind with the specified parameters.
	CommandText(string, CommandKind, []*Parameter) (string, error)

	// ContextCommand returns the statement used to stamp a user context on
	// a database session and the name of the parameter in that statement
	// that is bound to the identity.  An empty statement indicates that
	// the provider does not support context stamping.
	ContextCommand() (string, string)

	// TableValued binds a table to a parameter with the (normalized) name.
	TableValued(string, *Table) (*Parameter, error)

	// Adapter returns an Adapter that fills a TableSet from the command.
	Adapter(*Command) Adapter
}

// UserContextProvider resolves the user context for a new session.  A nil
// result means that no context stamping occurs.
type UserContextProvider interface {
	UserContext(context.Context) *UserContext
}

// Principal is an authenticated identity.
type Principal interface {
	Name() string
}
