package dbsession

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
)

// Column describes a column of a Table.  Type may be nil if not known.
type Column struct {
	Name string
	Type reflect.Type
}

// Table is an in-memory table of rows.  A Table does not enforce any
// constraints on the values in its rows.
//
// A Table is filled by an Adapter, or may be constructed for use as the
// value of a table-valued parameter, in which case Name identifies the
// server-side table type.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// NewTable returns a new, empty table with the specified columns.
func NewTable(name string, columns ...Column) *Table {
	return &Table{Name: name, Columns: columns}
}

// AddRow adds a row of values, one per column.
func (t *Table) AddRow(values ...any) error {
	if len(values) != len(t.Columns) {
		return InvalidArgumentError{"values", fmt.Errorf("%d values for %d columns", len(values), len(t.Columns))}
	}
	t.Rows = append(t.Rows, values)
	return nil
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Value returns the value of the named column in a row.  It returns nil if
// the row or column does not exist.
func (t *Table) Value(row int, column string) any {
	ix := t.ColumnIndex(column)
	if ix < 0 || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][ix]
}

// ColumnType returns the declared type of a column or, if there is none,
// the type of the first non-nil value in the column.  It returns nil if the
// type cannot be determined.
func (t *Table) ColumnType(ix int) reflect.Type {
	if ix < 0 || ix >= len(t.Columns) {
		return nil
	}
	if t.Columns[ix].Type != nil {
		return t.Columns[ix].Type
	}
	for _, row := range t.Rows {
		if row[ix] != nil {
			return reflect.TypeOf(row[ix])
		}
	}
	return nil
}

// TableSet is a set of tables, one per result set returned by a command.
type TableSet struct {
	Tables []*Table
}

// Table returns the named table, or nil.
func (ts *TableSet) Table(name string) *Table {
	for _, t := range ts.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// TableName returns the name given to the table filled from the result
// set with the specified (0-based) index: "Table", "Table1", "Table2" etc.
func TableName(ix int) string {
	if ix == 0 {
		return "Table"
	}
	return fmt.Sprintf("Table%d", ix)
}

// RowsAdapter is an Adapter that fills a TableSet with one table for each
// result set returned by a query.
type RowsAdapter struct {
	Command *Command

	// Name returns the name of the table for the result set with the
	// specified index.  If nil, TableName is used.
	Name func(int) string
}

// Fill implements Adapter.
func (a *RowsAdapter) Fill(ctx context.Context, q Querier, ts *TableSet) (err error) {
	name := a.Name
	if name == nil {
		name = TableName
	}

	rows, err := q.QueryContext(ctx, a.Command.Text, a.Command.Args()...)
	if err != nil {
		return ProviderError{"fill", err}
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = ProviderError{"fill", cerr}
		}
	}()

	for {
		t, err := readTable(rows, name(len(ts.Tables)))
		if err != nil {
			return ProviderError{"fill", err}
		}
		ts.Tables = append(ts.Tables, t)

		if !rows.NextResultSet() {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return ProviderError{"fill", err}
	}
	return nil
}

// readTable reads all rows of the current result set into a table.  Column
// types are those of the first non-nil value in each column.
func readTable(rows *sql.Rows, name string) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := &Table{Name: name, Columns: make([]Column, len(cols))}
	for i, c := range cols {
		t.Columns[i].Name = c
	}

	for rows.Next() {
		values, err := scanValues(rows)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range t.Columns {
		t.Columns[i].Type = t.ColumnType(i)
	}

	return t, nil
}
