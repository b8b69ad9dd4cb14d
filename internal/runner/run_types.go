package runner

import (
	"errors"
	"time"

	"judgebench/internal/config"
	"judgebench/internal/llm"
)

// ErrInvalidRange is returned when the requested row range is inverted or
// negative.
var ErrInvalidRange = errors.New("invalid row range")

// CompleterFactory binds a model name and role to a chat completer.
type CompleterFactory func(model, role string) llm.Completer

// Recorder receives cell and judge attempt outcomes.
type Recorder interface {
	ObserveCell(phase, outcome string)
	ObserveAttempt(mode, judge, outcome string)
}

// RunDependencies allows injecting factories and clocks for a run.
type RunDependencies struct {
	Completer CompleterFactory
	RunID     func() (string, error)
	Now       func() time.Time
	Recorder  Recorder
}

// RunParams configures a run invocation.
type RunParams struct {
	Experiment   config.Experiment
	SystemPrompt string
	Phases       []Phase
	// Start and End select rows [Start, End). A negative End means every row.
	Start     int
	End       int
	Overwrite bool
	Observer  RunObserver
	Deps      RunDependencies
}

// phaseOrder is the fixed execution order.
var phaseOrder = []Phase{PhaseGenerate, PhaseScore, PhasePrefer, PhaseAggregate}

// orderedPhases dedupes requested phases into execution order.
func orderedPhases(requested []Phase) []Phase {
	want := map[Phase]bool{}
	for _, phase := range requested {
		want[phase] = true
	}
	out := make([]Phase, 0, len(want))
	for _, phase := range phaseOrder {
		if want[phase] {
			out = append(out, phase)
		}
	}
	return out
}

// clampRange resolves [start, end) against a table of n rows.
func clampRange(start, end, n int) (int, int, error) {
	if start < 0 {
		return 0, 0, ErrInvalidRange
	}
	if end < 0 {
		end = max(n, start)
	}
	if start > end {
		return 0, 0, ErrInvalidRange
	}
	return min(start, n), min(end, n), nil
}
