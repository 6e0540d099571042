package dbsession

import (
	"reflect"
	"testing"
)

func TestTable(t *testing.T) {
	// ARRANGE
	sut := NewTable("dbo.Items",
		Column{Name: "id", Type: reflect.TypeOf(int64(0))},
		Column{Name: "name"},
	)

	t.Run("AddRow", func(t *testing.T) {
		t.Run("with value per column", func(t *testing.T) {
			// ACT
			err := sut.AddRow(int64(1), nil)
			_ = sut.AddRow(int64(2), "b")

			// ASSERT
			assertErrorIsNil(t, err)
		})

		t.Run("with wrong number of values", func(t *testing.T) {
			// ACT
			err := sut.AddRow(int64(3))

			// ASSERT
			assertExpectedError(t, InvalidArgumentError{}, err)
		})
	})

	t.Run("ColumnType", func(t *testing.T) {
		testcases := []struct {
			name   string
			column int
			result reflect.Type
		}{
			{name: "declared", column: 0, result: reflect.TypeOf(int64(0))},
			{name: "first non-nil value", column: 1, result: reflect.TypeOf("")},
			{name: "out of range", column: 2, result: nil},
		}
		for _, tc := range testcases {
			t.Run(tc.name, func(t *testing.T) {
				// ACT
				result := sut.ColumnType(tc.column)

				// ASSERT
				wanted := tc.result
				got := result
				if wanted != got {
					t.Errorf("\nwanted %v\ngot    %v", wanted, got)
				}
			})
		}
	})

	t.Run("Value", func(t *testing.T) {
		testcases := []struct {
			name   string
			row    int
			column string
			result any
		}{
			{name: "existing", row: 1, column: "name", result: "b"},
			{name: "null", row: 0, column: "name", result: nil},
			{name: "no such row", row: 5, column: "name", result: nil},
			{name: "no such column", row: 0, column: "other", result: nil},
		}
		for _, tc := range testcases {
			t.Run(tc.name, func(t *testing.T) {
				// ACT
				result := sut.Value(tc.row, tc.column)

				// ASSERT
				wanted := tc.result
				got := result
				if wanted != got {
					t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
				}
			})
		}
	})
}

func TestTableName(t *testing.T) {
	testcases := []struct {
		ix     int
		result string
	}{
		{ix: 0, result: "Table"},
		{ix: 1, result: "Table1"},
		{ix: 12, result: "Table12"},
	}
	for _, tc := range testcases {
		t.Run(tc.result, func(t *testing.T) {
			// ACT
			result := TableName(tc.ix)

			// ASSERT
			wanted := tc.result
			got := result
			if wanted != got {
				t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
			}
		})
	}
}

func TestTableSet_Table(t *testing.T) {
	// ARRANGE
	a := &Table{Name: "Table"}
	sut := &TableSet{Tables: []*Table{a, {Name: "Table1"}}}

	t.Run("existing", func(t *testing.T) {
		wanted := a
		got := sut.Table("Table")
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		wanted := (*Table)(nil)
		got := sut.Table("Table2")
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}
