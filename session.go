package dbsession

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CommandTimeout is the command timeout of a new session, unless
// configured otherwise using WithCommandTimeout.
var CommandTimeout = 30 * time.Second

type connState int

const (
	connClosed connState = iota
	connConnecting
	connOpen
)

// Session owns a connection to a database, the command executed on that
// connection and, optionally, a transaction.
//
// A Session is not safe for concurrent use.  Each operation on a session
// uses the same command and so must complete before the next is begun.
// Callers requiring concurrency should use separate sessions.
type Session struct {
	id        uuid.UUID
	log       *zerolog.Logger
	connector Connector
	provider  Provider
	user      *UserContext
	timeout   time.Duration

	db      *sql.DB
	conn    *sql.Conn
	state   connState
	command commandState
	cursor  *Cursor
	tx      *sql.Tx
	closed  bool

	defaultProvider     Provider
	defaultProviderName string
	connectionStrings   ConnectionStrings
	userContext         UserContextProvider
	configure           func(*sql.DB) error
	open                func(string, string) (*sql.DB, error)
}

// New initialises a new session using a named connection string entry or a
// literal connection string.
//
// If nameOrConnectionString names an entry in the connection strings
// configured using WithConnectionStrings, the connection string and provider
// of that entry are used.  Otherwise it is used verbatim as the connection
// string with the default provider (WithProvider or WithProviderName).
//
// The database handle is opened using the driver of the resolved provider
// but no connection is established until the first operation.  The user
// context of the session, if any, is resolved from ctx by the provider
// configured using WithUserContext.
//
// Any error is returned as a ConfigurationError; no session is returned.
func New(ctx context.Context, nameOrConnectionString string, cfg ...ConfigurationFunc) (*Session, error) {
	s := &Session{
		id:      uuid.New(),
		timeout: CommandTimeout,
		open:    sql.Open,
	}

	// apply supplied configuration functions
	for _, cfg := range cfg {
		if err := cfg(s); err != nil {
			return nil, s.discard(err)
		}
	}

	s.connector = s.resolveConnector(nameOrConnectionString)

	p, err := s.resolveProvider(s.connector)
	if err != nil {
		return nil, s.discard(err)
	}
	s.provider = p

	if s.log == nil {
		s.log = zerolog.Ctx(ctx)
	}
	log := s.log.With().
		Str("session", s.id.String()).
		Str("provider", p.Name()).
		Logger()
	s.log = &log

	if s.db == nil {
		db, err := s.open(p.Driver(), s.connector.ConnectionString())
		if err != nil {
			return nil, ConfigurationError{err}
		}
		if s.configure != nil {
			if err := s.configure(db); err != nil {
				_ = db.Close()
				return nil, ConfigurationError{err}
			}
		}
		s.db = db
	}

	if s.userContext != nil {
		s.user = s.userContext.UserContext(ctx)
	}

	return s, nil
}

// discard closes any database handle supplied using WithDb when a session
// cannot be initialised, returning err as a ConfigurationError.
func (s *Session) discard(err error) error {
	if db := s.db; db != nil {
		s.db = nil
		_ = db.Close()
	}
	return ConfigurationError{err}
}

// ID returns the unique id of the session.
func (s *Session) ID() uuid.UUID { return s.id }

// Connector returns the connection string and provider name resolved when
// the session was created.
func (s *Session) Connector() Connector { return s.connector }

// Provider returns the provider of the session.
func (s *Session) Provider() Provider { return s.provider }

// UserContext returns the user context stamped on the database session
// before each operation, or nil if there is none.
func (s *Session) UserContext() *UserContext { return s.user }

// CommandTimeout returns the command timeout.
func (s *Session) CommandTimeout() time.Duration { return s.timeout }

// SetCommandTimeout sets the command timeout, applied to the next
// operation.  A timeout of zero means that commands do not time out.
func (s *Session) SetCommandTimeout(t time.Duration) error {
	if t < 0 {
		return InvalidArgumentError{"timeout", ErrCommandTimeoutIsInvalid}
	}
	s.timeout = t
	return nil
}

// openConnection establishes the connection of the session if it is not
// already open (or opening).
func (s *Session) openConnection(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.state != connClosed {
		return nil
	}

	s.state = connConnecting
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.state = connClosed
		return ProviderError{"open", err}
	}
	s.conn = conn
	s.state = connOpen

	s.log.Debug().Msg("connection opened")

	return nil
}

// release closes the connection of the session, returning it to the pool,
// unless a transaction is active.
func (s *Session) release() error {
	if s.state == connClosed || s.tx != nil {
		return nil
	}

	conn := s.conn
	s.conn = nil
	s.state = connClosed

	if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return ProviderError{"close", err}
	}

	s.log.Debug().Msg("connection released")

	return nil
}

// Close releases the command, transaction and connection of the session and
// closes the database handle.  An outstanding Cursor is closed and an
// outstanding transaction is rolled back.
//
// Close is idempotent; once closed, all operations return ErrSessionClosed.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error

	if cur := s.cursor; cur != nil {
		if err := cur.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	s.command.release()

	if tx := s.tx; tx != nil {
		s.tx = nil
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			errs = append(errs, ProviderError{"rollback", err})
		}
	}

	if err := s.release(); err != nil {
		errs = append(errs, err)
	}

	if db := s.db; db != nil {
		s.db = nil
		if err := db.Close(); err != nil {
			errs = append(errs, ProviderError{"close", err})
		}
	}

	s.log.Debug().Msg("session closed")

	return errors.Join(errs...)
}
