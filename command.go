package dbsession

import (
	"time"
)

// CommandKind determines how the text of a command is interpreted.
type CommandKind int

const (
	// Text commands are SQL statements.
	Text CommandKind = iota
	// StoredProcedure commands name a stored procedure.  The statement
	// executed to call the procedure is provider specific.
	StoredProcedure
)

func (k CommandKind) String() string {
	switch k {
	case Text:
		return "text"
	case StoredProcedure:
		return "stored procedure"
	}
	return "unknown"
}

// Command is the statement prepared for execution by a session.
type Command struct {
	// Text is the statement to execute, as returned by the provider
	// CommandText method.
	Text       string
	Kind       CommandKind
	Parameters []*Parameter
	Timeout    time.Duration
	args       []any
}

// Args returns the arguments bound to the command.
func (c *Command) Args() []any { return c.args }

// commandState is the single command owned by a session.  The command is
// created on first use and reused by every subsequent operation.
type commandState struct {
	created bool
	Command
}

// ensure creates the command if necessary and applies the timeout if it
// differs from that already applied.
func (cs *commandState) ensure(timeout time.Duration) {
	if !cs.created {
		cs.created = true
		cs.Command = Command{Timeout: timeout}
	}
	if cs.Timeout != timeout {
		cs.Timeout = timeout
	}
}

// clear removes all parameters from the command.
func (cs *commandState) clear() {
	cs.Parameters = nil
	cs.args = nil
}

// release discards the command.
func (cs *commandState) release() {
	*cs = commandState{}
}
