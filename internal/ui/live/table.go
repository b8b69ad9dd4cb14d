package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns sizes columns for an 80 column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(80)
}

// columnsForWidth gives the column name the remaining width.
func columnsForWidth(width int) []table.Column {
	const fixed = 10 + 24 + 12 + 9 + 7
	column := max(width-fixed-6, 16)
	return []table.Column{
		{Title: "Question", Width: 10},
		{Title: "Column", Width: column},
		{Title: "Models", Width: 24},
		{Title: "Status", Width: 12},
		{Title: "Time", Width: 9},
		{Title: "Retries", Width: 7},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatQuestionID(row),
			row.Column,
			formatModels(row),
			formatStatus(row, noColor),
			formatRowDuration(row, now),
			formatRetries(row.Retries),
		})
	}
	return rows
}
