package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Summary describes the content of a saved workbook.
type Summary struct {
	Path   string         `json:"path,omitempty"`
	Sheets []SheetSummary `json:"sheets"`
}

// Sheet returns the summary of the named sheet.
func (s *Summary) Sheet(name string) (*SheetSummary, bool) {
	for i := range s.Sheets {
		if s.Sheets[i].Name == name {
			return &s.Sheets[i], true
		}
	}
	return nil, false
}

// SheetSummary describes one worksheet.
type SheetSummary struct {
	Name     string        `json:"name"`
	Rows     [][]string    `json:"rows"`
	Merged   []MergedRange `json:"merged,omitempty"`
	Tables   []TableInfo   `json:"tables,omitempty"`
	Formulas []FormulaCell `json:"formulas,omitempty"`
}

// MergedRange is a merged block and the font of its top-left cell.
type MergedRange struct {
	Range string `json:"range"`
	Value string `json:"value"`
	Font  *Font  `json:"font,omitempty"`
}

// TableInfo is an Excel table registered on a sheet.
type TableInfo struct {
	Name  string `json:"name"`
	Range string `json:"range"`
}

// FormulaCell is a cell holding a formula and its evaluated value.
type FormulaCell struct {
	Cell    string `json:"cell"`
	Formula string `json:"formula"`
	Value   string `json:"value"`
}

// Inspect opens the workbook at path and summarizes it.
func Inspect(path string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	s, err := summarize(f)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// InspectReader summarizes a workbook read from r.
func InspectReader(r io.Reader) (*Summary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	defer f.Close()
	return summarize(f)
}

func summarize(f *excelize.File) (*Summary, error) {
	s := &Summary{}
	for _, name := range f.GetSheetList() {
		sheet, err := summarizeSheet(f, name)
		if err != nil {
			return nil, err
		}
		s.Sheets = append(s.Sheets, *sheet)
	}
	return s, nil
}

func summarizeSheet(f *excelize.File, name string) (*SheetSummary, error) {
	out := &SheetSummary{Name: name}

	height, width, err := extent(f, name)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", name, err)
	}
	out.Rows = rows

	// Formula cells may have no cached value, so GetRows alone can miss
	// them; scan the full extent instead.
	for r := 1; r <= height; r++ {
		for c := 1; c <= width; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(name, cell)
			if err != nil {
				return nil, fmt.Errorf("read formula %s!%s: %w", name, cell, err)
			}
			if formula == "" {
				continue
			}
			value, err := f.CalcCellValue(name, cell)
			if err != nil {
				value = ""
			}
			out.Formulas = append(out.Formulas, FormulaCell{Cell: cell, Formula: formula, Value: value})
		}
	}

	merged, err := f.GetMergeCells(name)
	if err != nil {
		return nil, fmt.Errorf("read merged cells of %q: %w", name, err)
	}
	for _, m := range merged {
		mr := MergedRange{
			Range: m.GetStartAxis() + ":" + m.GetEndAxis(),
			Value: m.GetCellValue(),
		}
		font, err := cellFont(f, name, m.GetStartAxis())
		if err != nil {
			return nil, err
		}
		mr.Font = font
		out.Merged = append(out.Merged, mr)
	}

	tables, err := f.GetTables(name)
	if err != nil {
		return nil, fmt.Errorf("read tables of %q: %w", name, err)
	}
	for _, t := range tables {
		out.Tables = append(out.Tables, TableInfo{Name: t.Name, Range: t.Range})
	}

	return out, nil
}

// extent returns the number of rows and the widest row of a sheet, counting
// rows that hold only formulas.
func extent(f *excelize.File, sheet string) (int, int, error) {
	iter, err := f.Rows(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("iterate rows of %q: %w", sheet, err)
	}
	defer iter.Close()

	height, width := 0, 0
	for iter.Next() {
		height++
		cols, err := iter.Columns()
		if err != nil {
			return 0, 0, fmt.Errorf("read row %d of %q: %w", height, sheet, err)
		}
		if len(cols) > width {
			width = len(cols)
		}
	}
	if height > 0 && width == 0 {
		width = 1
	}
	return height, width, iter.Error()
}

// cellFont returns the font applied to cell, or nil when it has none.
func cellFont(f *excelize.File, sheet, cell string) (*Font, error) {
	idx, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("read style of %s!%s: %w", sheet, cell, err)
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		return nil, fmt.Errorf("read style %d: %w", idx, err)
	}
	if style == nil || style.Font == nil {
		return nil, nil
	}
	return &Font{Bold: style.Font.Bold, Italic: style.Font.Italic, Size: style.Font.Size}, nil
}
