package dbsession

import (
	"context"
	"database/sql"
	"fmt"
)

// Cursor is a forward-only cursor over the rows returned by a command.  It
// embeds the *sql.Rows; use Next, Scan and Err as usual.
//
// A Cursor must be closed using its Close method, which also releases the
// connection of the session (unless a transaction is active).
type Cursor struct {
	*sql.Rows
	session *Session
	cancel  context.CancelFunc
	closed  bool
}

// Close closes the rows and releases the connection of the session.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.session.cursor == c {
		c.session.cursor = nil
	}

	err := c.Rows.Close()
	c.cancel()

	if rerr := c.session.release(); rerr != nil && err == nil {
		return rerr
	}
	if err != nil {
		return ProviderError{"close", err}
	}
	return nil
}

// Values returns the values of the columns of the current row.
func (c *Cursor) Values() ([]any, error) {
	values, err := scanValues(c.Rows)
	if err != nil {
		return nil, ProviderError{"fetch", err}
	}
	return values, nil
}

// Get returns the value of a column in a row of values as a T.  A NULL
// (nil) value is returned as the zero value of T.
//
// An error is returned if the column is out of range or the value is not
// a T.
func Get[T any](values []any, column int) (T, error) {
	var zero T

	if column < 0 || column >= len(values) {
		return zero, InvalidArgumentError{"column", fmt.Errorf("%d is out of range (%d columns)", column, len(values))}
	}

	v := values[column]
	if v == nil {
		return zero, nil
	}

	result, ok := v.(T)
	if !ok {
		return zero, InvalidArgumentError{"column", fmt.Errorf("%d: value is %T, not %T", column, v, zero)}
	}
	return result, nil
}
