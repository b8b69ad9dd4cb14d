package runner

import "time"

// Phase names one pass over the table.
type Phase string

const (
	// PhaseGenerate collects one answer per responder and question.
	PhaseGenerate Phase = "generate"
	// PhaseScore asks every judge to score every answer.
	PhaseScore Phase = "score"
	// PhasePrefer asks every judge to pick the best answer.
	PhasePrefer Phase = "prefer"
	// PhaseAggregate resolves preferences into a majority vote.
	PhaseAggregate Phase = "aggregate"
)

// CellEventType identifies a cell status update for observers.
type CellEventType string

const (
	// CellQueued marks a cell known but not yet processed.
	CellQueued CellEventType = "queued"
	// CellRunning marks an active model call.
	CellRunning CellEventType = "running"
	// CellRetry marks a failed attempt that will be retried.
	CellRetry CellEventType = "retry"
	// CellDone marks a value written and flushed.
	CellDone CellEventType = "done"
	// CellMissing marks a cell left blank after failure.
	CellMissing CellEventType = "missing"
	// CellSkipped marks a cell that already held a value.
	CellSkipped CellEventType = "skipped"
)

// CellEvent carries a single status update for a table cell.
type CellEvent struct {
	Phase      Phase
	Row        int
	QuestionID string
	Column     string
	// Model is the responder in the generate phase and the judge otherwise.
	Model string
	// Target is the responder being scored.
	Target    string
	Type      CellEventType
	Attempt   int
	Value     string
	Error     string
	EmittedAt time.Time
}

// PhaseSummary counts cell outcomes for one phase.
type PhaseSummary struct {
	Phase    Phase
	Written  int
	Skipped  int
	Missing  int
	Duration time.Duration
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Experiment string
	StartedAt  time.Time
	FinishedAt time.Time
	Phases     []PhaseSummary
}

// Missing totals blank cells across phases.
func (s Summary) Missing() int {
	total := 0
	for _, phase := range s.Phases {
		total += phase.Missing
	}
	return total
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, experiment string)
	// OnPhaseStart signals a phase with the number of cells it covers.
	OnPhaseStart(phase Phase, cells int)
	// OnCellEvent delivers a cell status update.
	OnCellEvent(event CellEvent)
	// OnPhaseEnd signals phase completion.
	OnPhaseEnd(summary PhaseSummary)
	// OnRunEnd signals run completion.
	OnRunEnd(summary Summary)
}
