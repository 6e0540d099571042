package dbsession

import (
	"fmt"
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrNoProvider = Error("no provider configured or specified by connection string entry")
const ErrUnknownProvider = Error("provider is not registered")
const ErrWithDbAndWithConfigurationIsInvalid = Error("cannot use WithDbConfiguration when using WithDb")
const ErrCommandTimeoutIsInvalid = Error("command timeout must be greater than or equal to zero")
const ErrEmptyParameterName = Error("parameter name must be specified")
const ErrTypeNameRequired = Error("type name must be specified")
const ErrTableValuedParameters = Error("table-valued parameters")
const ErrStoredProcedures = Error("stored procedures")
const ErrSessionClosed = Error("session is closed")
const ErrParameterNotFound = Error("parameter not found")

// ConfigurationError wraps any error returned during configuration of
// a new session.  A session that fails to configure is unusable.
type ConfigurationError struct {
	error
}

// Error implements the error interface.
func (e ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.error)
}

// Is returns a boolean indicating whether the target error is a
// ConfigurationError.
func (e ConfigurationError) Is(target error) bool {
	_, ok := target.(ConfigurationError)
	return ok
}

// Unwrap returns the wrapped error.
func (e ConfigurationError) Unwrap() error {
	return e.error
}

// InvalidArgumentError wraps an error resulting from an argument supplied
// by the caller, identifying the argument.
type InvalidArgumentError struct {
	arg string
	error
}

// Error implements the error interface.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s: %s", e.arg, e.error)
}

// Is returns a boolean indicating whether the target error is an
// InvalidArgumentError.
func (e InvalidArgumentError) Is(target error) bool {
	_, ok := target.(InvalidArgumentError)
	return ok
}

// Unwrap returns the wrapped error.
func (e InvalidArgumentError) Unwrap() error { return e.error }

// UnsupportedError identifies a feature that is not supported by
// the provider of a session.
type UnsupportedError struct {
	provider string
	error
}

// Error implements the error interface.
func (e UnsupportedError) Error() string {
	return fmt.Sprintf("not supported: %s: %s", e.provider, e.error)
}

// Is returns a boolean indicating whether the target error is an
// UnsupportedError.
func (e UnsupportedError) Is(target error) bool {
	_, ok := target.(UnsupportedError)
	return ok
}

// Unwrap returns the wrapped error.
func (e UnsupportedError) Unwrap() error { return e.error }

// ProviderError wraps an error returned by the underlying driver,
// identifying the operation that failed.  The driver error is not modified;
// errors.Is and errors.As will find it through Unwrap.
type ProviderError struct {
	op string
	error
}

// Error implements the error interface.
func (e ProviderError) Error() string {
	return fmt.Sprintf("provider error: %s: %s", e.op, e.error)
}

// Is returns a boolean indicating whether the target error is a
// ProviderError.
//
// A target ProviderError with an empty operation matches any ProviderError,
// otherwise the operation must also match.
func (e ProviderError) Is(target error) bool {
	if other, ok := target.(ProviderError); ok {
		return other.op == "" || other.op == e.op
	}
	return false
}

// Unwrap returns the wrapped error.
func (e ProviderError) Unwrap() error { return e.error }

// TransactionError wraps an error from a transaction operation, identifying
// the name of the transaction and the operation that failed.
type TransactionError struct {
	txn string
	op  string
	error
}

// Error implements the error interface.
func (e TransactionError) Error() string {
	if e.op == "" {
		return fmt.Sprintf("transaction: %s: %s", e.txn, e.error)
	}
	return fmt.Sprintf("transaction: %s: %s: %s", e.txn, e.op, e.error)
}

// Is returns a boolean indicating whether the target error is a
// TransactionError.
//
// A target TransactionError is considered equal if it has the same
// transaction name and operation name as the receiver.
func (e TransactionError) Is(target error) bool {
	if other, ok := target.(TransactionError); ok {
		return e.txn == other.txn && e.op == other.op
	}
	return false
}

// Unwrap returns the wrapped error.
func (e TransactionError) Unwrap() error { return e.error }

// InvalidArgument returns an InvalidArgumentError identifying the
// argument and wrapping the supplied error.  It is intended for use by
// Provider implementations.
func InvalidArgument(arg string, err error) error {
	return InvalidArgumentError{arg, err}
}

// Unsupported returns an UnsupportedError identifying the provider and
// wrapping the supplied error.  It is intended for use by Provider
// implementations.
func Unsupported(provider string, err error) error {
	return UnsupportedError{provider, err}
}
