package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, noColor bool) string {
	line := "Run " + state.RunID
	if state.Experiment != "" {
		line += " | " + state.Experiment
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Retrying: " + fmtInt(counts.Retrying) +
		" Done: " + fmtInt(counts.Done) +
		" Skipped: " + fmtInt(counts.Skipped) +
		" Missing: " + fmtInt(counts.Missing)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderPhaseLine renders the current phase and the ones already finished.
func renderPhaseLine(state State, noColor bool) string {
	if state.Phase == "" {
		return ""
	}
	line := "Phase " + string(state.Phase) + " (" + fmtInt(state.PhaseCells) + " cells)"
	for _, done := range state.Finished {
		if done.Phase == state.Phase {
			continue
		}
		line += " | " + string(done.Phase) + ": " + fmtInt(done.Written) + " written, " + fmtInt(done.Missing) + " missing"
	}
	return stylize(line, noColor, lipgloss.Color("240"))
}

// renderFooter renders the last event line.
func renderFooter(state State, noColor bool) string {
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
