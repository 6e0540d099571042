package dbsession

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Params is an insertion-ordered set of parameter values keyed by name.
// Providers that bind positionally bind parameters in insertion order.
type Params = orderedmap.OrderedMap[string, any]

// NewParams returns a new, empty Params.
func NewParams() *Params {
	return orderedmap.New[string, any]()
}

type Direction int

const (
	Input Direction = iota
	Output
)

// DbType is the declared type of a parameter.  For output parameters it
// determines the type of value populated when a command is executed.
type DbType int

const (
	Unspecified DbType = iota
	String
	Int32
	Int64
	Float64
	Bool
	Time
	Bytes
	Structured
)

// dest returns a pointer to a value of the type to receive an output
// parameter of type t.  Nullable types are used so that a NULL output
// is read back as nil.
func (t DbType) dest() any {
	switch t {
	case String:
		return &sql.NullString{}
	case Int32:
		return &sql.NullInt32{}
	case Int64:
		return &sql.NullInt64{}
	case Float64:
		return &sql.NullFloat64{}
	case Bool:
		return &sql.NullBool{}
	case Time:
		return &sql.NullTime{}
	case Bytes:
		return new([]byte)
	default:
		return new(any)
	}
}

// Parameter is a bound command parameter.
//
// Name always carries the parameter marker of the provider that bound it.
// For an output parameter, Value holds the destination populated by the
// driver; use OutputValue to read it.
type Parameter struct {
	Name      string
	Value     any
	Direction Direction
	Type      DbType
	Size      int

	// TypeName is the server-side type of a table-valued parameter.
	TypeName string
}

// Arg returns the value to pass to database/sql for the parameter.
func (p *Parameter) Arg() any {
	if p.Direction == Output {
		return sql.Out{Dest: p.Value}
	}
	return p.Value
}

// NamedArg returns the parameter as a sql.NamedArg, removing the marker
// from the name.
func (p *Parameter) NamedArg(marker string) sql.NamedArg {
	return sql.Named(strings.TrimPrefix(p.Name, marker), p.Arg())
}

// OutputValue returns the value of the parameter.  For an output parameter
// this is the value populated by the driver, or nil if NULL.
func (p *Parameter) OutputValue() any {
	if p.Direction != Output {
		return p.Value
	}
	if v, ok := p.Value.(driver.Valuer); ok {
		result, _ := v.Value()
		return result
	}
	rv := reflect.ValueOf(p.Value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return p.Value
	}
	return rv.Elem().Interface()
}

// parameterName returns the name prefixed by the marker of the session
// provider.  The marker is not duplicated if already present.
func (s *Session) parameterName(name string) (string, error) {
	if name == "" {
		return "", InvalidArgumentError{"name", ErrEmptyParameterName}
	}
	marker := s.provider.ParameterMarker()
	if strings.HasPrefix(name, marker) {
		return name, nil
	}
	return marker + name, nil
}

// Parameter binds a value to a named parameter.
//
// If value is already a *Parameter it is returned unchanged, allowing the
// caller full control over direction, type and size.  Otherwise the name is
// prefixed with the provider parameter marker (unless already present) and
// a nil value is replaced with the provider Null value.
func (s *Session) Parameter(name string, value any) (*Parameter, error) {
	if p, ok := value.(*Parameter); ok {
		return p, nil
	}

	name, err := s.parameterName(name)
	if err != nil {
		return nil, err
	}

	if value == nil {
		value = s.provider.Null()
	}

	return &Parameter{Name: name, Value: value}, nil
}

// OutputParameter creates an output parameter of the specified type and,
// optionally, size.
func (s *Session) OutputParameter(name string, t DbType, size ...int) (*Parameter, error) {
	name, err := s.parameterName(name)
	if err != nil {
		return nil, err
	}

	p := &Parameter{
		Name:      name,
		Value:     t.dest(),
		Direction: Output,
		Type:      t,
	}
	if len(size) > 0 {
		p.Size = size[0]
	}

	return p, nil
}

// TableValuedParameter binds a table to a named parameter.  Support for
// table-valued parameters is provider specific; providers that do not
// support them return an UnsupportedError.
func (s *Session) TableValuedParameter(name string, t *Table) (*Parameter, error) {
	name, err := s.parameterName(name)
	if err != nil {
		return nil, err
	}
	return s.provider.TableValued(name, t)
}

// bind converts a set of named values to bound parameters, in order.
func (s *Session) bind(args *Params) ([]*Parameter, error) {
	if args == nil || args.Len() == 0 {
		return nil, nil
	}

	params := make([]*Parameter, 0, args.Len())
	for pair := args.Oldest(); pair != nil; pair = pair.Next() {
		p, err := s.Parameter(pair.Key, pair.Value)
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// ParameterValue returns the value of a parameter bound to the most recent
// command executed by a session, typically used to read an output parameter.
//
// A NULL value is returned as the zero value of T.  An error is returned if
// the session has no such parameter or if the value is not a T.
func ParameterValue[T any](s *Session, name string) (T, error) {
	var zero T

	name, err := s.parameterName(name)
	if err != nil {
		return zero, err
	}

	for _, p := range s.command.Parameters {
		if p.Name != name {
			continue
		}
		v := p.OutputValue()
		if v == nil || v == s.provider.Null() {
			return zero, nil
		}
		result, ok := v.(T)
		if !ok {
			return zero, InvalidArgumentError{name, fmt.Errorf("value is %T, not %T", v, zero)}
		}
		return result, nil
	}

	return zero, InvalidArgumentError{name, ErrParameterNotFound}
}
