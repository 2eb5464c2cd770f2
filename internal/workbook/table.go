package workbook

import (
	"errors"
	"fmt"
)

// ErrColumnMismatch is returned when a row does not have one value per column.
var ErrColumnMismatch = errors.New("row does not match table columns")

// ErrNoColumns is returned when a table without columns is written.
var ErrNoColumns = errors.New("table has no columns")

// DataTable is a header plus rows of cell values, written to a sheet
// starting at A1.
type DataTable struct {
	// Name is the Excel table name. When empty, TableN is used.
	Name string
	// Columns are the header cells, left to right.
	Columns []string
	// Rows hold one value per column.
	Rows [][]any
}

// NewDataTable returns an empty table with the given columns.
func NewDataTable(columns ...string) *DataTable {
	return &DataTable{Columns: columns}
}

// AddRow appends a row. The number of values must match the columns.
func (t *DataTable) AddRow(values ...any) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrColumnMismatch, len(values), len(t.Columns))
	}
	row := make([]any, len(values))
	copy(row, values)
	t.Rows = append(t.Rows, row)
	return nil
}

// Len returns the number of data rows.
func (t *DataTable) Len() int {
	return len(t.Rows)
}

// validate checks every row against the header.
func (t *DataTable) validate() error {
	if len(t.Columns) == 0 {
		return ErrNoColumns
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("%w: row %d has %d values for %d columns", ErrColumnMismatch, i+1, len(row), len(t.Columns))
		}
	}
	return nil
}
