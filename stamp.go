package dbsession

import (
	"context"
	"unicode/utf8"
)

const ErrContextStamping = Error("context stamping")

// stamp attaches the user context of the session to the database session,
// using the context command of the provider.  The command runs on the
// supplied Querier so that, in a transaction, the context and the work
// that follows are atomic.
//
// The context is stamped before every operation: session state on a
// pooled connection may have been changed by other statements.
func (s *Session) stamp(ctx context.Context, q Querier) error {
	if s.user == nil {
		return nil
	}

	query, name := s.provider.ContextCommand()
	if query == "" {
		return UnsupportedError{s.provider.Name(), ErrContextStamping}
	}

	p, err := s.Parameter(name, truncate(s.user.FullName, ContextInfoSize))
	if err != nil {
		return err
	}
	p.Type = String
	p.Size = ContextInfoSize

	s.command.clear()
	s.command.Text = query
	s.command.Kind = Text
	s.command.Parameters = []*Parameter{p}

	if s.command.args, err = s.provider.Args(s.command.Parameters); err != nil {
		return err
	}

	ctx, cancel := s.commandContext(ctx)
	defer cancel()

	if _, err := q.ExecContext(ctx, s.command.Text, s.command.args...); err != nil {
		return ProviderError{"stamp context", err}
	}
	s.command.clear()

	s.log.Debug().
		Str("user", s.user.Name).
		Msg("context stamped")

	return nil
}

// truncate returns at most n bytes of s, without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
