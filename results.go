package dbsession

import (
	"context"
	"database/sql"
)

// Exec executes a command that returns no rows, returning the number of
// rows affected.
func (s *Session) Exec(ctx context.Context, query string, kind CommandKind, args *Params) (n int64, err error) {
	err = s.run(ctx, query, kind, args, func(ctx context.Context, q Querier) error {
		result, err := q.ExecContext(ctx, s.command.Text, s.command.args...)
		if err != nil {
			return ProviderError{"exec", err}
		}
		if n, err = result.RowsAffected(); err != nil {
			return ProviderError{"rows affected", err}
		}
		return nil
	})
	return n, err
}

// ExecFunc is Exec with parameters supplied by a builder function.
func (s *Session) ExecFunc(ctx context.Context, query string, kind CommandKind, fn func(*Params)) (int64, error) {
	return s.Exec(ctx, query, kind, params(fn))
}

// ExecText is Exec for a Text command.  args may be nil.
func (s *Session) ExecText(ctx context.Context, query string, args *Params) (int64, error) {
	return s.Exec(ctx, query, Text, args)
}

// Scalar executes a command returning the value of the first column of the
// first row, or nil if there are no rows.
func (s *Session) Scalar(ctx context.Context, query string, kind CommandKind, args *Params) (v any, err error) {
	err = s.run(ctx, query, kind, args, func(ctx context.Context, q Querier) (err error) {
		rows, err := q.QueryContext(ctx, s.command.Text, s.command.args...)
		if err != nil {
			return ProviderError{"query", err}
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = ProviderError{"close", cerr}
			}
		}()

		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return ProviderError{"fetch", err}
			}
			return nil
		}

		values, err := scanValues(rows)
		if err != nil {
			return ProviderError{"fetch", err}
		}
		if len(values) > 0 {
			v = values[0]
		}
		return nil
	})
	return v, err
}

// ScalarFunc is Scalar with parameters supplied by a builder function.
func (s *Session) ScalarFunc(ctx context.Context, query string, kind CommandKind, fn func(*Params)) (any, error) {
	return s.Scalar(ctx, query, kind, params(fn))
}

// ScalarText is Scalar for a Text command.  args may be nil.
func (s *Session) ScalarText(ctx context.Context, query string, args *Params) (any, error) {
	return s.Scalar(ctx, query, Text, args)
}

// Reader executes a command returning a Cursor over the rows.
//
// The command timeout bounds the execution of the command only; fetching
// rows from the Cursor is limited by ctx alone.
//
// The connection is held open until the Cursor is closed; the caller must
// close the Cursor before performing any other operation on the session.
// Closing the session closes an outstanding Cursor.
func (s *Session) Reader(ctx context.Context, query string, kind CommandKind, args *Params) (*Cursor, error) {
	q, err := s.prepare(ctx, query, kind, args)
	if err != nil {
		return nil, s.abandon(err)
	}

	ctx, cancel, stop := s.cursorContext(ctx)

	rows, err := q.QueryContext(ctx, s.command.Text, s.command.args...)
	if !stop() && err == nil {
		_ = rows.Close()
		err = context.DeadlineExceeded
	}
	if err != nil {
		cancel()
		return nil, s.abandon(ProviderError{"query", err})
	}

	cur := &Cursor{Rows: rows, session: s, cancel: cancel}
	s.cursor = cur
	return cur, nil
}

// ReaderFunc is Reader with parameters supplied by a builder function.
func (s *Session) ReaderFunc(ctx context.Context, query string, kind CommandKind, fn func(*Params)) (*Cursor, error) {
	return s.Reader(ctx, query, kind, params(fn))
}

// ReaderText is Reader for a Text command.  args may be nil.
func (s *Session) ReaderText(ctx context.Context, query string, args *Params) (*Cursor, error) {
	return s.Reader(ctx, query, Text, args)
}

// abandon releases the connection after a failed operation, returning
// the error that caused the failure.
func (s *Session) abandon(err error) error {
	_ = s.release()
	return err
}

// Query executes a command, mapping each row to a T using the supplied
// function.  Rows are mapped in the order in which they are fetched.  The
// cursor is closed, and the connection released, when all rows have been
// mapped or mapping fails.  As for Reader, the command timeout does not
// limit the time taken to map the rows.
func Query[T any](ctx context.Context, s *Session, query string, kind CommandKind, args *Params, mapper func(*sql.Rows) (T, error)) (result []T, err error) {
	cur, err := s.Reader(ctx, query, kind, args)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := cur.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	result = []T{}
	for cur.Next() {
		v, err := mapper(cur.Rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := cur.Err(); err != nil {
		return nil, ProviderError{"fetch", err}
	}

	return result, nil
}

// QueryFunc is Query with parameters supplied by a builder function.
func QueryFunc[T any](ctx context.Context, s *Session, query string, kind CommandKind, fn func(*Params), mapper func(*sql.Rows) (T, error)) ([]T, error) {
	return Query(ctx, s, query, kind, params(fn), mapper)
}

// QueryText is Query for a Text command.  args may be nil.
func QueryText[T any](ctx context.Context, s *Session, query string, args *Params, mapper func(*sql.Rows) (T, error)) ([]T, error) {
	return Query(ctx, s, query, Text, args, mapper)
}

// TableSet executes a command using the Adapter of the session provider,
// returning a TableSet filled with the results.
func (s *Session) TableSet(ctx context.Context, query string, kind CommandKind, args *Params) (ts *TableSet, err error) {
	err = s.run(ctx, query, kind, args, func(ctx context.Context, q Querier) error {
		ts = &TableSet{}
		return s.provider.Adapter(&s.command.Command).Fill(ctx, q, ts)
	})
	if err != nil {
		return nil, err
	}
	return ts, nil
}

// TableSetFunc is TableSet with parameters supplied by a builder function.
func (s *Session) TableSetFunc(ctx context.Context, query string, kind CommandKind, fn func(*Params)) (*TableSet, error) {
	return s.TableSet(ctx, query, kind, params(fn))
}

// TableSetText is TableSet for a Text command.  args may be nil.
func (s *Session) TableSetText(ctx context.Context, query string, args *Params) (*TableSet, error) {
	return s.TableSet(ctx, query, Text, args)
}
