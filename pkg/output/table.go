package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type TableStyle struct {
	Border      lipgloss.Border
	BorderColor lipgloss.Color
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

func DefaultTableStyle() TableStyle {
	return TableStyle{
		Border:      lipgloss.RoundedBorder(),
		BorderColor: ColorDim,
		HeaderStyle: StyleHeading.Foreground(ColorCyan),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Table collects rows and renders them with lipgloss. Cells may already
// carry ANSI styling.
type Table struct {
	headers []string
	rows    [][]string
	style   TableStyle
}

func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		style:   DefaultTableStyle(),
	}
}

func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

func (t *Table) String() string {
	tbl := table.New().
		Border(t.style.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(t.style.BorderColor)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.style.HeaderStyle.Padding(0, 1)
			}
			return t.style.CellStyle
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}
