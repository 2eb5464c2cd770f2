// Package render formats workbook summaries, equality reports and history
// for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ShayCichocki/sheetsmith/internal/equality"
	"github.com/ShayCichocki/sheetsmith/internal/state"
	"github.com/ShayCichocki/sheetsmith/internal/workbook"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#45B7D1"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// Summary renders every sheet of a workbook summary.
func Summary(s *workbook.Summary) string {
	var b strings.Builder
	if s.Path != "" {
		b.WriteString(titleStyle.Render(s.Path))
		b.WriteString("\n")
	}
	for _, sheet := range s.Sheets {
		b.WriteString("\n")
		b.WriteString(Sheet(&sheet))
	}
	return b.String()
}

// Sheet renders one sheet: its cells, then formulas, merges and tables.
func Sheet(s *workbook.SheetSummary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sheet: " + s.Name))
	b.WriteString("\n")

	width := 0
	for _, row := range s.Rows {
		width = max(width, len(row))
	}
	if width == 0 {
		b.WriteString(mutedStyle.Render("(empty)"))
		b.WriteString("\n")
	} else {
		headers := []string{"#"}
		for c := 1; c <= width; c++ {
			headers = append(headers, columnName(c))
		}
		t := newTable(headers...)
		for i, row := range s.Rows {
			cells := make([]string, width+1)
			cells[0] = strconv.Itoa(i + 1)
			copy(cells[1:], row)
			t.Row(cells...)
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	for _, f := range s.Formulas {
		fmt.Fprintf(&b, "formula %s: =%s -> %q\n", f.Cell, strings.TrimPrefix(f.Formula, "="), f.Value)
	}
	for _, m := range s.Merged {
		line := fmt.Sprintf("merged %s: %q", m.Range, m.Value)
		if m.Font != nil {
			line += fmt.Sprintf(" (bold=%t size=%g)", m.Font.Bold, m.Font.Size)
		}
		b.WriteString(line + "\n")
	}
	for _, t := range s.Tables {
		fmt.Fprintf(&b, "table %s: %s\n", t.Name, t.Range)
	}
	return b.String()
}

// columnName converts a 1-based column number to its letter name.
func columnName(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// Report renders an equality comparison as one row per person model.
func Report(r equality.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s vs %s %s\n",
		titleStyle.Render(r.Left.First), titleStyle.Render(r.Left.Last),
		titleStyle.Render(r.Right.First), titleStyle.Render(r.Right.Last))

	t := newTable("model", "alias same", "same", "equal", "hash equal")
	for _, o := range r.Outcomes {
		hash := "-"
		if o.Variant == equality.VariantValue {
			hash = yesNo(o.HashEqual)
		}
		t.Row(string(o.Variant), yesNo(o.AliasSame), yesNo(o.Same), yesNo(o.Equal), hash)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}

// Generations renders history records, newest first.
func Generations(gens []state.Generation) string {
	if len(gens) == 0 {
		return mutedStyle.Render("no workbooks generated yet") + "\n"
	}
	t := newTable("id", "created", "path", "table sheet", "rows", "source")
	for _, g := range gens {
		t.Row(shortID(g.ID), g.CreatedAt.Local().Format("2006-01-02 15:04:05"), g.Path, g.TableSheet, strconv.Itoa(g.Rows), g.Source)
	}
	return t.String() + "\n"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
