package live

import (
	"fmt"
	"time"

	"judgebench/internal/judge"
	"judgebench/internal/runner"
)

// Reduce applies a cell event to the UI state.
func Reduce(state State, event runner.CellEvent) State {
	state, pos := ensureRow(state, event)
	state.Rows[pos] = applyCellEvent(state.Rows[pos], event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow returns the position of the event's cell, appending it when new.
func ensureRow(state State, event runner.CellEvent) (State, int) {
	key := cellKey{row: event.Row, column: event.Column}
	if pos, ok := state.index[key]; ok {
		return state, pos
	}
	if state.index == nil {
		state.index = map[cellKey]int{}
	}
	state.Rows = append(state.Rows, CellRow{
		Row:        event.Row,
		QuestionID: event.QuestionID,
		Column:     event.Column,
		Model:      event.Model,
		Target:     event.Target,
		Status:     runner.CellQueued,
	})
	pos := len(state.Rows) - 1
	state.index[key] = pos
	return state, pos
}

// applyCellEvent updates a row with the given event.
func applyCellEvent(row CellRow, event runner.CellEvent) CellRow {
	row.Status = event.Type
	switch event.Type {
	case runner.CellRunning:
		if row.StartedAt.IsZero() {
			row.StartedAt = event.EmittedAt
		}
		row.Attempt = 1
	case runner.CellRetry:
		row.Retries++
		row.Attempt = event.Attempt
		row.Error = event.Error
	case runner.CellDone, runner.CellMissing, runner.CellSkipped:
		row.FinishedAt = event.EmittedAt
		row.Error = event.Error
	}
	return row
}

// recount recomputes status counts for the current rows.
func recount(rows []CellRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.CellQueued:
			counts.Queued++
		case runner.CellRunning:
			counts.Running++
		case runner.CellRetry:
			counts.Retrying++
		case runner.CellDone:
			counts.Done++
		case runner.CellMissing:
			counts.Missing++
		case runner.CellSkipped:
			counts.Skipped++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.CellEvent) string {
	cell := fmt.Sprintf("row %d %s", event.Row+1, event.Column)
	switch event.Type {
	case runner.CellRetry:
		return fmt.Sprintf("%s attempt %d/%d: %s", cell, event.Attempt, judge.MaxAttempts, event.Error)
	case runner.CellMissing:
		return fmt.Sprintf("%s left blank: %s", cell, event.Error)
	case runner.CellDone:
		return cell + " written"
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
