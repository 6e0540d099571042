// Package sqlserver provides the SQL Server provider, using
// github.com/denisenkom/go-mssqldb.
//
// Importing the package registers the provider with the name "sqlserver":
//
//	import _ "github.com/blugnu/dbsession/providers/sqlserver"
package sqlserver

import (
	"fmt"
	"reflect"
	"strings"

	mssql "github.com/denisenkom/go-mssqldb"

	"github.com/blugnu/dbsession"
)

const Name = "sqlserver"

// ContextCommand stamps the identity on the database session as
// CONTEXT_INFO, available to triggers and security policies.
const ContextCommand = "DECLARE @Ctx VARBINARY(128) = CAST(@username AS VARBINARY(128));SET CONTEXT_INFO @Ctx;"

func init() {
	dbsession.Register(Provider{})
}

// Provider is the SQL Server provider.
//
// Parameters are bound as named args.  Stored procedures are executed by
// name using RPC.  Table-valued parameters are supported.
type Provider struct{}

func (Provider) Name() string            { return Name }
func (Provider) Driver() string          { return "sqlserver" }
func (Provider) ParameterMarker() string { return "@" }
func (Provider) Null() any               { return dbsession.DBNull }

// Args returns the parameters as named args.  Input parameters with a
// declared String type and a size are bound as nvarchar of that size,
// truncating longer values.
func (p Provider) Args(params []*dbsession.Parameter) ([]any, error) {
	args := make([]any, len(params))
	for i, param := range params {
		arg := param.NamedArg(p.ParameterMarker())
		if s, ok := param.Value.(string); ok && param.Direction == dbsession.Input && param.Type == dbsession.String && param.Size > 0 {
			if len([]rune(s)) > param.Size {
				arg.Value = string([]rune(s)[:param.Size])
			}
		}
		args[i] = arg
	}
	return args, nil
}

// CommandText returns the query unchanged.  A stored procedure name is
// executed by the driver as an RPC when the query is a single identifier
// and all args are named.
func (Provider) CommandText(query string, kind dbsession.CommandKind, _ []*dbsession.Parameter) (string, error) {
	if kind == dbsession.StoredProcedure && strings.ContainsAny(strings.TrimSpace(query), " \t\r\n;") {
		return "", dbsession.InvalidArgument("query", fmt.Errorf("%q is not a stored procedure name", query))
	}
	return strings.TrimSpace(query), nil
}

func (Provider) ContextCommand() (string, string) { return ContextCommand, "username" }

// TableValued binds a table to a table-valued parameter.  The name of the
// table must be the name of the server-side table type.
//
// The rows of the table are bound as a slice of structs with one field per
// column, in column order, typed by Table.ColumnType.  A column of unknown
// type is bound as nvarchar.  A nil value is bound as the zero value of the
// column type.
func (Provider) TableValued(name string, t *dbsession.Table) (*dbsession.Parameter, error) {
	if t == nil {
		return nil, dbsession.InvalidArgument("value", fmt.Errorf("table is nil"))
	}
	if strings.TrimSpace(t.Name) == "" {
		return nil, dbsession.InvalidArgument("value", dbsession.ErrTypeNameRequired)
	}

	return &dbsession.Parameter{
		Name:     name,
		Value:    mssql.TVP{TypeName: t.Name, Value: rowsOf(t)},
		Type:     dbsession.Structured,
		TypeName: t.Name,
	}, nil
}

// Adapter returns a RowsAdapter.
func (Provider) Adapter(cmd *dbsession.Command) dbsession.Adapter {
	return &dbsession.RowsAdapter{Command: cmd}
}

// rowsOf returns the rows of a table as a slice of structs, as required by
// mssql.TVP.
func rowsOf(t *dbsession.Table) any {
	fields := make([]reflect.StructField, len(t.Columns))
	for i := range t.Columns {
		ft := t.ColumnType(i)
		if ft == nil {
			ft = reflect.TypeOf("")
		}
		fields[i] = reflect.StructField{
			Name: fmt.Sprintf("C%d", i),
			Type: ft,
		}
	}
	rt := reflect.StructOf(fields)

	rows := reflect.MakeSlice(reflect.SliceOf(rt), len(t.Rows), len(t.Rows))
	for r, values := range t.Rows {
		row := rows.Index(r)
		for c, v := range values {
			if v == nil {
				continue
			}
			if fv, ok := convert(reflect.ValueOf(v), fields[c].Type); ok {
				row.Field(c).Set(fv)
			}
		}
	}
	return rows.Interface()
}

// convert returns v as a value of type t.  Numeric values are converted
// between numeric types; other values must be assignable.
func convert(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	switch {
	case v.Type().AssignableTo(t):
		return v, true
	case isNumeric(v.Kind()) && isNumeric(t.Kind()):
		return v.Convert(t), true
	}
	return reflect.Value{}, false
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}
