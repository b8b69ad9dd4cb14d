package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"judgebench/internal/runner"
)

// formatQuestionID returns the display id for a cell row.
func formatQuestionID(row CellRow) string {
	if row.QuestionID != "" {
		return row.QuestionID
	}
	return "Q" + pad2(row.Row+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatModels renders "judge -> responder" for scoring cells.
func formatModels(row CellRow) string {
	if row.Target == "" {
		return row.Model
	}
	return row.Model + " -> " + row.Target
}

// formatStatus renders a status string for a row.
func formatStatus(row CellRow, noColor bool) string {
	label := string(row.Status)
	if row.Status == runner.CellRetry && row.Attempt > 0 {
		label = "attempt " + fmtInt(row.Attempt)
	}
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row CellRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() && row.FinishedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatRetries formats retry counts for display.
func formatRetries(retries int) string {
	if retries <= 0 {
		return ""
	}
	return fmtInt(retries)
}

// formatPhaseEnd formats a phase completion message.
func formatPhaseEnd(summary runner.PhaseSummary) string {
	return "Phase " + string(summary.Phase) + " finished: " +
		fmtInt(summary.Written) + " written, " +
		fmtInt(summary.Skipped) + " skipped, " +
		fmtInt(summary.Missing) + " missing"
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.CellEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.CellDone:
		color = lipgloss.Color("42")
	case runner.CellRetry:
		color = lipgloss.Color("220")
	case runner.CellMissing:
		color = lipgloss.Color("196")
	case runner.CellRunning:
		color = lipgloss.Color("33")
	case runner.CellQueued, runner.CellSkipped:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
