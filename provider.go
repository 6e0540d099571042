package dbsession

import (
	"database/sql/driver"
)

type null struct{}

// Value implements driver.Valuer, yielding a SQL NULL.
func (null) Value() (driver.Value, error) { return nil, nil }

func (null) String() string { return "NULL" }

// DBNull is the null sentinel bound by BaseProvider in place of a nil
// parameter value.
var DBNull driver.Valuer = null{}

// ContextInfoSize is the maximum number of bytes of an identity stamped
// on a database session.
const ContextInfoSize = 128

// BaseProvider implements the behaviour common to most providers.  It is
// intended to be embedded in a Provider implementation, which supplies at
// least Name and Driver.
//
// A BaseProvider:
//
//   - uses '@' as the parameter marker and binds parameters as named args;
//   - binds DBNull in place of nil values;
//   - supports text commands only;
//   - does not support context stamping or table-valued parameters;
//   - fills table sets using a RowsAdapter.
type BaseProvider struct {
	ProviderName string
	DriverName   string
}

func (p BaseProvider) Name() string            { return p.ProviderName }
func (p BaseProvider) Driver() string          { return p.DriverName }
func (p BaseProvider) ParameterMarker() string { return "@" }
func (p BaseProvider) Null() any               { return DBNull }

// Args returns the parameters as named args.
func (p BaseProvider) Args(params []*Parameter) ([]any, error) {
	return NamedArgs(p.ParameterMarker(), params), nil
}

// CommandText returns text commands unchanged.  Other command kinds are
// not supported.
func (p BaseProvider) CommandText(query string, kind CommandKind, _ []*Parameter) (string, error) {
	if kind != Text {
		return "", UnsupportedError{p.ProviderName, ErrStoredProcedures}
	}
	return query, nil
}

func (p BaseProvider) ContextCommand() (string, string) { return "", "" }

func (p BaseProvider) TableValued(string, *Table) (*Parameter, error) {
	return nil, UnsupportedError{p.ProviderName, ErrTableValuedParameters}
}

func (p BaseProvider) Adapter(cmd *Command) Adapter {
	return &RowsAdapter{Command: cmd}
}

// NamedArgs converts parameters to sql.NamedArg values, removing the
// specified marker from each name.
func NamedArgs(marker string, params []*Parameter) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.NamedArg(marker)
	}
	return args
}

// PositionalArgs converts parameters to positional args, in order.
func PositionalArgs(params []*Parameter) []any {
	args := make([]any, len(params))
	for i, p := range params {
		args[i] = p.Arg()
	}
	return args
}
