package dbsession

import (
	"context"
	"database/sql"
	"time"
)

// querier returns the target for statements: the active transaction if
// there is one, otherwise the connection.
func (s *Session) querier() Querier {
	if s.tx != nil {
		return s.tx
	}
	return s.conn
}

// commandContext returns a context bounded by the command timeout.
func (s *Session) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.command.Timeout > 0 {
		return context.WithTimeout(ctx, s.command.Timeout)
	}
	return context.WithCancel(ctx)
}

// cursorContext returns a context for a command returning a Cursor.  The
// rows of a cursor are closed when their context is done, so the command
// timeout is applied only until the command has executed.  stop ends the
// timeout, reporting false if it had already elapsed.  cancel must be
// called when the cursor is closed.
func (s *Session) cursorContext(ctx context.Context) (_ context.Context, cancel context.CancelFunc, stop func() bool) {
	ctx, cancel = context.WithCancel(ctx)
	if s.command.Timeout <= 0 {
		return ctx, cancel, func() bool { return true }
	}
	timer := time.AfterFunc(s.command.Timeout, cancel)
	return ctx, cancel, timer.Stop
}

// prepare opens the connection, ensures the command, stamps the user
// context and prepares the command with the query and parameters.  It
// returns the Querier on which the command is to be executed.
func (s *Session) prepare(ctx context.Context, query string, kind CommandKind, args *Params) (Querier, error) {
	if err := s.openConnection(ctx); err != nil {
		return nil, err
	}

	s.command.ensure(s.timeout)

	q := s.querier()

	if err := s.stamp(ctx, q); err != nil {
		return nil, err
	}

	s.command.clear()

	params, err := s.bind(args)
	if err != nil {
		return nil, err
	}

	text, err := s.provider.CommandText(query, kind, params)
	if err != nil {
		return nil, err
	}

	dargs, err := s.provider.Args(params)
	if err != nil {
		return nil, err
	}

	s.command.Text = text
	s.command.Kind = kind
	s.command.Parameters = params
	s.command.args = dargs

	return q, nil
}

// run prepares a command and executes it using the supplied function.  The
// connection is released when run returns unless a transaction is active.
func (s *Session) run(ctx context.Context, query string, kind CommandKind, args *Params, exec func(context.Context, Querier) error) (err error) {
	defer func() {
		if rerr := s.release(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	q, err := s.prepare(ctx, query, kind, args)
	if err != nil {
		return err
	}

	ctx, cancel := s.commandContext(ctx)
	defer cancel()

	return exec(ctx, q)
}

// scanValues scans the current row of rows into a slice of values, one
// per column.
func scanValues(rows *sql.Rows) ([]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return values, nil
}

// params invokes a builder function with new, empty Params.
func params(fn func(*Params)) *Params {
	p := NewParams()
	if fn != nil {
		fn(p)
	}
	return p
}
