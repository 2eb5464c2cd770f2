// Package workbook builds and inspects OOXML spreadsheets.
// It is a thin layer over excelize: cell semantics, formula evaluation and
// serialization belong to the library, and its errors are returned wrapped
// but otherwise untouched.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// MaxSheetNameLength is the longest sheet name Excel accepts.
const MaxSheetNameLength = 31

// DefaultTableStyle is applied to tables added by AddDataTable.
const DefaultTableStyle = "TableStyleMedium2"

var (
	// ErrEmptySheetName is returned for a blank sheet name.
	ErrEmptySheetName = errors.New("sheet name is empty")
	// ErrSheetNameTooLong is returned for names over MaxSheetNameLength runes.
	ErrSheetNameTooLong = errors.New("sheet name is too long")
	// ErrSheetExists is returned when a sheet name is already taken.
	// Excel compares sheet names case-insensitively.
	ErrSheetExists = errors.New("sheet already exists")
	// ErrUnknownSheet is returned for operations on a sheet that was not added.
	ErrUnknownSheet = errors.New("unknown sheet")
	// ErrInvalidRange is returned for a range that is not "A1:B2" shaped.
	ErrInvalidRange = errors.New("invalid cell range")
)

// Font is the subset of font styling the builder applies.
type Font struct {
	Bold   bool
	Italic bool
	Size   float64
}

// Builder assembles a workbook in memory.
type Builder struct {
	file   *excelize.File
	sheets []string
	tables int
	log    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// New returns an empty workbook builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		file: excelize.NewFile(),
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sheets returns the added sheet names in order.
func (b *Builder) Sheets() []string {
	out := make([]string, len(b.sheets))
	copy(out, b.sheets)
	return out
}

// AddSheet adds a worksheet. The first call takes over the library's
// default sheet, so a built workbook holds exactly the sheets added.
func (b *Builder) AddSheet(name string) error {
	if err := b.checkNewSheetName(name); err != nil {
		return err
	}

	if len(b.sheets) == 0 {
		if err := b.file.SetSheetName(b.file.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename default sheet to %q: %w", name, err)
		}
	} else {
		if _, err := b.file.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}
	}

	b.sheets = append(b.sheets, name)
	b.log.Debug("sheet added", zap.String("sheet", name), zap.Int("count", len(b.sheets)))
	return nil
}

func (b *Builder) checkNewSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptySheetName
	}
	if utf8.RuneCountInString(name) > MaxSheetNameLength {
		return fmt.Errorf("%w: %q has %d characters, max %d", ErrSheetNameTooLong, name, utf8.RuneCountInString(name), MaxSheetNameLength)
	}
	for _, existing := range b.sheets {
		if strings.EqualFold(existing, name) {
			return fmt.Errorf("%w: %q", ErrSheetExists, name)
		}
	}
	return nil
}

func (b *Builder) checkSheet(name string) error {
	for _, existing := range b.sheets {
		if existing == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSheet, name)
}

// SetValue writes a literal value to a cell.
func (b *Builder) SetValue(sheet, cell string, value any) error {
	if err := b.checkSheet(sheet); err != nil {
		return err
	}
	if err := b.file.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// SetFormula writes an A1-style formula to a cell. A leading "=" is optional.
func (b *Builder) SetFormula(sheet, cell, formula string) error {
	if err := b.checkSheet(sheet); err != nil {
		return err
	}
	formula = strings.TrimPrefix(strings.TrimSpace(formula), "=")
	if err := b.file.SetCellFormula(sheet, cell, formula); err != nil {
		return fmt.Errorf("set formula %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// AddDataTable adds a sheet named name holding t's header and rows from A1,
// registered as an Excel table.
func (b *Builder) AddDataTable(name string, t *DataTable) error {
	if t == nil {
		return ErrNoColumns
	}
	if err := t.validate(); err != nil {
		return err
	}
	if err := b.AddSheet(name); err != nil {
		return err
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := b.file.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("write header of %q: %w", name, err)
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		values := row
		if err := b.file.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("write row %d of %q: %w", i+1, name, err)
		}
	}

	if t.Len() == 0 {
		return nil
	}

	end, err := excelize.CoordinatesToCellName(len(t.Columns), t.Len()+1)
	if err != nil {
		return fmt.Errorf("table range: %w", err)
	}
	b.tables++
	tableName := t.Name
	if tableName == "" {
		tableName = fmt.Sprintf("Table%d", b.tables)
	}
	if err := b.file.AddTable(name, &excelize.Table{
		Range:     "A1:" + end,
		Name:      tableName,
		StyleName: DefaultTableStyle,
	}); err != nil {
		return fmt.Errorf("add table %q to %q: %w", tableName, name, err)
	}

	b.log.Debug("data table added",
		zap.String("sheet", name),
		zap.String("table", tableName),
		zap.Int("rows", t.Len()))
	return nil
}

// InsertRowsAbove inserts n empty rows above row (1-based), shifting the
// existing content, tables and merged ranges down.
func (b *Builder) InsertRowsAbove(sheet string, row, n int) error {
	if err := b.checkSheet(sheet); err != nil {
		return err
	}
	if err := b.file.InsertRows(sheet, row, n); err != nil {
		return fmt.Errorf("insert %d rows above %s!%d: %w", n, sheet, row, err)
	}
	return nil
}

// MergeRange merges a range such as "A1:B1".
func (b *Builder) MergeRange(sheet, rng string) error {
	if err := b.checkSheet(sheet); err != nil {
		return err
	}
	start, end, err := SplitRange(rng)
	if err != nil {
		return err
	}
	if err := b.file.MergeCell(sheet, start, end); err != nil {
		return fmt.Errorf("merge %s!%s: %w", sheet, rng, err)
	}
	return nil
}

// StyleRange applies font styling to every cell of a range.
func (b *Builder) StyleRange(sheet, rng string, font Font) error {
	if err := b.checkSheet(sheet); err != nil {
		return err
	}
	start, end, err := SplitRange(rng)
	if err != nil {
		return err
	}
	style, err := b.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: font.Bold, Italic: font.Italic, Size: font.Size},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	if err := b.file.SetCellStyle(sheet, start, end, style); err != nil {
		return fmt.Errorf("style %s!%s: %w", sheet, rng, err)
	}
	return nil
}

// SaveAs writes the workbook to path, creating parent directories.
// The file handle is released before SaveAs returns.
func (b *Builder) SaveAs(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if len(b.sheets) > 0 {
		b.file.SetActiveSheet(0)
	}
	if err := b.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook to %s: %w", path, err)
	}
	b.log.Info("workbook saved", zap.String("path", path), zap.Strings("sheets", b.sheets))
	return nil
}

// WriteTo writes the workbook to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := b.file.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("write workbook: %w", err)
	}
	return n, nil
}

// Close releases the library's temporary resources.
func (b *Builder) Close() error {
	return b.file.Close()
}

// SplitRange splits "A1:B2" into its corners. A single cell "A1" is
// returned as both corners.
func SplitRange(rng string) (string, string, error) {
	parts := strings.Split(strings.TrimSpace(rng), ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}
	for _, p := range parts {
		if _, _, err := excelize.CellNameToCoordinates(p); err != nil {
			return "", "", fmt.Errorf("%w: %q: %v", ErrInvalidRange, rng, err)
		}
	}
	return parts[0], parts[1], nil
}
