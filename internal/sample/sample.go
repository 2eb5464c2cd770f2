// Package sample builds the demonstration workbook: a sheet with a literal
// and a formula, and a timestamp-named sheet holding a titled employee table.
package sample

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ShayCichocki/sheetsmith/internal/workbook"
	"github.com/ShayCichocki/sheetsmith/pkg/models"
)

const (
	// DefaultSheetName is the name of the first sheet.
	DefaultSheetName = "Sample Sheet"
	// DefaultTitle is written above the employee table.
	DefaultTitle = "Employees"
	// DefaultTitleFontSize is the font size of the title row.
	DefaultTitleFontSize = 16.0

	// Greeting is the literal written to A1 of the first sheet.
	Greeting = "Hello World!"
	// GreetingFormula extracts "World" from the greeting. The library
	// normalizes formula text when it adjusts rows, so a saved workbook
	// holds MID(A1,7,5).
	GreetingFormula = "=MID(A1, 7, 5)"

	// sheetNameLayout renders a time as yyyy_MM_dd_HHmmss.
	sheetNameLayout = "2006_01_02_150405"
)

// Options configures CreateSample. Zero values take the defaults.
type Options struct {
	// Now supplies the time used for the table sheet name.
	Now func() time.Time
	// SheetName names the first sheet.
	SheetName string
	// Title is written to the merged title row.
	Title string
	// TitleFontSize is the title's font size.
	TitleFontSize float64
	// Employees replaces the built-in sample rows when non-nil.
	Employees []models.Employee
	// Logger receives progress messages.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.SheetName == "" {
		o.SheetName = DefaultSheetName
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.TitleFontSize <= 0 {
		o.TitleFontSize = DefaultTitleFontSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Result describes a generated workbook.
type Result struct {
	Path       string
	Sheets     []string
	TableSheet string
	Rows       int
	CreatedAt  time.Time
}

// SheetName returns the table sheet name for t: an underscore followed by
// the timestamp in yyyy_MM_dd_HHmmss form.
func SheetName(t time.Time) string {
	return "_" + t.Format(sheetNameLayout)
}

// SampleData returns the employee table for employees, or for the built-in
// sample rows when employees is nil.
func SampleData(employees []models.Employee) (*workbook.DataTable, error) {
	if employees == nil {
		employees = models.SampleEmployees()
	}
	table := workbook.NewDataTable(models.EmployeeColumns...)
	for i, e := range employees {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("employee %d: %w", i+1, err)
		}
		if err := table.AddRow(e.ID, e.Name); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// CreateSample builds the sample workbook and saves it to path.
func CreateSample(ctx context.Context, path string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	b := workbook.New(workbook.WithLogger(opts.Logger))
	defer b.Close()

	if err := b.AddSheet(opts.SheetName); err != nil {
		return nil, err
	}
	if err := b.SetValue(opts.SheetName, "A1", Greeting); err != nil {
		return nil, err
	}
	if err := b.SetFormula(opts.SheetName, "A2", GreetingFormula); err != nil {
		return nil, err
	}

	table, err := SampleData(opts.Employees)
	if err != nil {
		return nil, err
	}

	createdAt := opts.Now()
	tableSheet, err := addSheetWithDataTable(b, table, createdAt, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := b.SaveAs(path); err != nil {
		return nil, err
	}

	return &Result{
		Path:       path,
		Sheets:     b.Sheets(),
		TableSheet: tableSheet,
		Rows:       table.Len(),
		CreatedAt:  createdAt,
	}, nil
}

// addSheetWithDataTable writes table to a timestamp-named sheet and puts a
// merged, styled title row above it.
func addSheetWithDataTable(b *workbook.Builder, table *workbook.DataTable, now time.Time, opts Options) (string, error) {
	name := SheetName(now)

	if err := b.AddDataTable(name, table); err != nil {
		return "", err
	}
	if err := b.InsertRowsAbove(name, 1, 1); err != nil {
		return "", err
	}
	if err := b.SetValue(name, "A1", opts.Title); err != nil {
		return "", err
	}

	rng, err := titleRange(len(table.Columns))
	if err != nil {
		return "", err
	}
	if len(table.Columns) > 1 {
		if err := b.MergeRange(name, rng); err != nil {
			return "", err
		}
	}
	if err := b.StyleRange(name, rng, workbook.Font{Bold: true, Size: opts.TitleFontSize}); err != nil {
		return "", err
	}

	opts.Logger.Debug("table sheet written",
		zap.String("sheet", name),
		zap.String("title_range", rng),
		zap.Int("rows", table.Len()))
	return name, nil
}

// titleRange spans the first row across the table's columns.
func titleRange(columns int) (string, error) {
	end, err := excelize.CoordinatesToCellName(max(columns, 1), 1)
	if err != nil {
		return "", err
	}
	return "A1:" + end, nil
}
