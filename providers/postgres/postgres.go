// Package postgres provides PostgreSQL providers.
//
// Importing the package registers two providers:
//
//   - "postgres", using github.com/lib/pq
//   - "pgx", using the database/sql driver of github.com/jackc/pgx/v5
//
// Neither driver supports named args; parameters are bound positionally,
// in the order in which they were added to the Params of an operation, and
// are referenced in statements as $1, $2 etc.
package postgres

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver

	"github.com/blugnu/dbsession"
)

const (
	Name    = "postgres"
	PgxName = "pgx"
)

// ContextCommand stamps the identity on the database session as the
// run-time parameter dbsession.user, available to row-level security
// policies using current_setting('dbsession.user', true).
const ContextCommand = "SELECT set_config('dbsession.user', $1, false)"

func init() {
	dbsession.Register(New(Name, "postgres"))
	dbsession.Register(New(PgxName, "pgx"))
}

// Provider is a PostgreSQL provider.
type Provider struct {
	dbsession.BaseProvider
}

// New returns a PostgreSQL provider with the specified name, using the
// specified database/sql driver.
func New(name, driver string) Provider {
	return Provider{dbsession.BaseProvider{ProviderName: name, DriverName: driver}}
}

// Args returns the parameters as positional args.
func (Provider) Args(params []*dbsession.Parameter) ([]any, error) {
	return dbsession.PositionalArgs(params), nil
}

// CommandText returns text commands unchanged.  A stored procedure is
// executed using CALL, with one positional placeholder per parameter.
func (Provider) CommandText(query string, kind dbsession.CommandKind, params []*dbsession.Parameter) (string, error) {
	if kind != dbsession.StoredProcedure {
		return query, nil
	}
	placeholders := make([]string, len(params))
	for i := range params {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("CALL %s(%s)", strings.TrimSpace(query), strings.Join(placeholders, ", ")), nil
}

func (Provider) ContextCommand() (string, string) { return ContextCommand, "username" }
