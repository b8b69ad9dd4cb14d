package live

import "judgebench/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventPhaseStart signals the start of a phase.
	EventPhaseStart
	// EventCell delivers a cell status update.
	EventCell
	// EventPhaseEnd signals phase completion.
	EventPhaseEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind         EventKind
	RunID        string
	Experiment   string
	Phase        runner.Phase
	Cells        int
	Cell         runner.CellEvent
	PhaseSummary runner.PhaseSummary
}
