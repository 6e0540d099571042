// Package mysql provides the MySQL provider, using
// github.com/go-sql-driver/mysql.
//
// Importing the package registers the provider with the name "mysql".
// Parameters are bound positionally, in the order in which they were added
// to the Params of an operation, and are referenced in statements as ?.
package mysql

import (
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/blugnu/dbsession"
)

const Name = "mysql"

// ContextCommand stamps the identity on the database session as the user
// variable @dbsession_user.
const ContextCommand = "SET @dbsession_user = ?"

func init() {
	dbsession.Register(Provider{dbsession.BaseProvider{ProviderName: Name, DriverName: "mysql"}})
}

// Provider is the MySQL provider.
type Provider struct {
	dbsession.BaseProvider
}

// Args returns the parameters as positional args.
func (Provider) Args(params []*dbsession.Parameter) ([]any, error) {
	return dbsession.PositionalArgs(params), nil
}

// CommandText returns text commands unchanged.  A stored procedure is
// executed using CALL, with one placeholder per parameter.
func (Provider) CommandText(query string, kind dbsession.CommandKind, params []*dbsession.Parameter) (string, error) {
	if kind != dbsession.StoredProcedure {
		return query, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(params)), ", ")
	return "CALL " + strings.TrimSpace(query) + "(" + placeholders + ")", nil
}

func (Provider) ContextCommand() (string, string) { return ContextCommand, "username" }

// ConnectionString returns a DSN for a TCP connection to a database, with
// times parsed as time.Time.
func ConnectionString(addr, user, password, database string) string {
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = addr
	cfg.User = user
	cfg.Passwd = password
	cfg.DBName = database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
