// Package sqlite provides the SQLite provider, using modernc.org/sqlite.
//
// Importing the package registers the provider with the name "sqlite".
// The connection string is the path of the database file (or a file: URI).
package sqlite

import (
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/blugnu/dbsession"
)

const Name = "sqlite"

// ContextCommand stamps the identity on the database session in the
// temporary (connection-scoped) table session_context.
const ContextCommand = "CREATE TEMP TABLE IF NOT EXISTS session_context (name TEXT PRIMARY KEY, value TEXT);" +
	"INSERT OR REPLACE INTO temp.session_context (name, value) VALUES ('user', @username);"

func init() {
	dbsession.Register(Provider{dbsession.BaseProvider{ProviderName: Name, DriverName: "sqlite"}})
}

// Provider is the SQLite provider.  Parameters are bound as named args.
// SQLite has no stored procedures or table-valued parameters.
type Provider struct {
	dbsession.BaseProvider
}

func (Provider) ContextCommand() (string, string) { return ContextCommand, "username" }
