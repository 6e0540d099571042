package dbsession

import (
	"context"
	"database/sql"
	"errors"
	"runtime/debug"
)

// InTransaction returns true if the session has an active transaction.
func (s *Session) InTransaction() bool { return s.tx != nil }

// Begin starts a transaction with default options.
//
// See BeginTx.
func (s *Session) Begin(ctx context.Context) error {
	return s.BeginTx(ctx, nil)
}

// BeginTx starts a transaction, opening the connection of the session if
// necessary.  Every subsequent operation on the session is performed in the
// transaction, and the connection is held open, until the transaction is
// committed or rolled back.
//
// If the session already has an active transaction, BeginTx does nothing:
// transactions are not nested.
//
// As with sql.Conn.BeginTx, the transaction is rolled back if ctx is
// cancelled before it is committed.
func (s *Session) BeginTx(ctx context.Context, opts *sql.TxOptions) error {
	if s.tx != nil {
		return nil
	}

	if err := s.openConnection(ctx); err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, opts)
	if err != nil {
		err = ProviderError{"begin", err}
		if rerr := s.release(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return err
	}
	s.tx = tx

	s.log.Debug().Msg("transaction begun")

	return nil
}

// Commit commits the active transaction, if any, and releases the
// connection.
func (s *Session) Commit() error {
	return s.endTransaction("commit", (*sql.Tx).Commit)
}

// Rollback rolls back the active transaction, if any, and releases the
// connection.
func (s *Session) Rollback() error {
	return s.endTransaction("rollback", (*sql.Tx).Rollback)
}

func (s *Session) endTransaction(op string, end func(*sql.Tx) error) error {
	var err error

	if tx := s.tx; tx != nil {
		s.tx = nil
		if txerr := end(tx); txerr != nil {
			err = ProviderError{op, txerr}
		} else {
			s.log.Debug().Str("op", op).Msg("transaction ended")
		}
	}

	if rerr := s.release(); rerr != nil && err == nil {
		err = rerr
	}

	return err
}

// Transact executes the supplied function in a transaction with the given
// name.
//
// A transaction is automatically rolled back if the supplied function returns
// an error or panics.  If the supplied function returns nil then the transaction
// is committed.
//
// If the supplied function panics or returns an error or if any transaction
// control operation fails (begin, commit, rollback) then a TransactionError{}
// is returned, wrapping the error that occured.
//
// If the session already has an active transaction the function is executed
// in that transaction, which is neither committed nor rolled back by
// Transact; an error returned by the function is returned as a
// TransactionError.
func (s *Session) Transact(ctx context.Context, name string, op func(*Session) error) (err error) {
	if s.tx != nil {
		if err := op(s); err != nil {
			return TransactionError{txn: name, error: err}
		}
		return nil
	}

	if err := s.Begin(ctx); err != nil {
		return TransactionError{name, "begin", err}
	}

	// set a flag to indicate that we should rollback at exit and defer a call
	// which will rollback the transaction if the flag is still set
	rollback := true
	defer func() {
		if r := recover(); r != nil {
			err = TransactionError{name, "panic", errors.New(string(debug.Stack()))}
		}
		if !rollback {
			return
		}
		if txerr := s.Rollback(); txerr != nil {
			err = errors.Join(err, TransactionError{name, "rollback", txerr})
		}
	}()

	if err = op(s); err != nil {
		return TransactionError{txn: name, error: err}
	}

	// whatever happens now the transaction will either be commited or will
	// fail to commit; either way, we should no longer rollback at exit
	rollback = false

	if err = s.Commit(); err != nil {
		return TransactionError{name, "commit", err}
	}

	return nil
}
