package dbsession

import (
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

type ConfigurationFunc func(*Session) error

// WithProvider sets the default provider of a session.  The default provider
// is used when the session is created with a literal connection string, or
// when a named connection string entry identifies a provider with the same
// name.  The provider does not need to be registered.
func WithProvider(p Provider) ConfigurationFunc {
	return func(s *Session) error {
		if p == nil {
			return ErrNoProvider
		}
		s.defaultProvider = p
		return nil
	}
}

// WithProviderName sets the name of the registered provider to be used
// when a session is created with a literal connection string.
func WithProviderName(name string) ConfigurationFunc {
	return func(s *Session) error {
		s.defaultProviderName = name
		return nil
	}
}

// WithConnectionStrings establishes the source of named connection string
// entries.  If the identifier used to create a session names an entry in
// the source, the connection string and provider of that entry are used.
func WithConnectionStrings(cs ConnectionStrings) ConfigurationFunc {
	return func(s *Session) error {
		s.connectionStrings = cs
		return nil
	}
}

// WithUserContext establishes the provider of the user context stamped on
// the database session before each operation.
func WithUserContext(u UserContextProvider) ConfigurationFunc {
	return func(s *Session) error {
		s.userContext = u
		return nil
	}
}

// WithCommandTimeout sets the initial command timeout of a session.  A
// timeout of zero means that commands do not time out.
func WithCommandTimeout(t time.Duration) ConfigurationFunc {
	return func(s *Session) error {
		if t < 0 {
			return ErrCommandTimeoutIsInvalid
		}
		s.timeout = t
		return nil
	}
}

// WithLogger sets the logger of a session.  If not specified, the logger
// in the context supplied to New is used.
func WithLogger(log zerolog.Logger) ConfigurationFunc {
	return func(s *Session) error {
		s.log = &log
		return nil
	}
}

// WithDbConfiguration establishes a function that is called when the
// database handle is opened.  This can be used to configure the pool
// maintained by database/sql, for example to set the maximum number of
// open connections.
//
// Returns ErrWithDbAndWithConfigurationIsInvalid if a database has already
// been configured.
func WithDbConfiguration(cfg func(*sql.DB) error) ConfigurationFunc {
	return func(s *Session) error {
		if s.db != nil {
			return ErrWithDbAndWithConfigurationIsInvalid
		}
		s.configure = cfg
		return nil
	}
}

// WithDb establishes the database handle of a session, which is then not
// opened using the resolved provider driver.  This is intended primarily
// for use when mocking a database for testing purposes.  The session
// takes ownership of the handle and closes it when the session is closed.
//
// Returns ErrWithDbAndWithConfigurationIsInvalid if a configuration
// function has been configured. It is expected that when using WithDb the
// specified *sql.DB is already fully configured as required.
func WithDb(db *sql.DB) ConfigurationFunc {
	return func(s *Session) error {
		if s.configure != nil {
			return ErrWithDbAndWithConfigurationIsInvalid
		}
		s.db = db
		return nil
	}
}
