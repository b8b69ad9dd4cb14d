package live

import (
	"time"

	"judgebench/internal/runner"
)

// CellRow holds UI state for a single table cell.
type CellRow struct {
	Row        int
	QuestionID string
	Column     string
	Model      string
	Target     string
	Status     runner.CellEventType
	Attempt    int
	Retries    int
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued   int
	Running  int
	Retrying int
	Done     int
	Missing  int
	Skipped  int
}

// State captures the live UI state for the current phase.
type State struct {
	RunID      string
	Experiment string
	Phase      runner.Phase
	PhaseCells int
	StartedAt  time.Time
	LastEvent  string
	Rows       []CellRow
	Counts     StatusCounts
	// Finished holds summaries of completed phases, oldest first.
	Finished []runner.PhaseSummary
	index    map[cellKey]int
}

type cellKey struct {
	row    int
	column string
}

// StartPhase clears per-phase rows.
func (s State) StartPhase(phase runner.Phase, cells int) State {
	s.Phase = phase
	s.PhaseCells = cells
	s.Rows = make([]CellRow, 0, cells)
	s.index = make(map[cellKey]int, cells)
	s.Counts = StatusCounts{}
	s.LastEvent = ""
	return s
}
