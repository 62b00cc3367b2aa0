package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/prepaidmate/internal/client/locale"
	"github.com/dmitrijs2005/prepaidmate/internal/client/models"
)

const (
	colIndex = iota
	colWhen
	colDescription
	colAmount
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	linkStyle     = cellStyle.Underline(true)
	positiveStyle = cellStyle.Foreground(lipgloss.Color("#22C55E")).Align(lipgloss.Right)
	negativeStyle = cellStyle.Foreground(lipgloss.Color("#EF4444")).Align(lipgloss.Right)
)

// AmountStyle returns the terminal style for an amount class.
func AmountStyle(c models.AmountClass) lipgloss.Style {
	if c == models.AmountNegative {
		return negativeStyle
	}
	return positiveStyle
}

// Table renders rows as a bordered table with headers in the formatter's
// language. Linked descriptions are underlined and marked with "*"; their
// row number opens the link.
func (f *Formatter) Table(rows []Row) string {
	data := make([][]string, 0, len(rows))
	for i, r := range rows {
		desc := r.Description
		if r.Link != "" {
			desc += " *"
		}
		data = append(data, []string{index(i), r.When, desc, r.Amount})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))).
		Headers("#",
			f.loc.Sprintf(locale.ColumnDate),
			f.loc.Sprintf(locale.ColumnDescription),
			f.loc.Sprintf(locale.ColumnAmount),
		).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			switch col {
			case colAmount:
				return AmountStyle(rows[row].Class)
			case colDescription:
				if rows[row].Link != "" {
					return linkStyle
				}
			}
			return cellStyle
		})

	return t.String()
}
