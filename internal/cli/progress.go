package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"judgebench/internal/runner"
)

// plainObserver prints one line per phase and per problem cell.
type plainObserver struct {
	mu  sync.Mutex
	out io.Writer
}

func newPlainObserver(out io.Writer) *plainObserver {
	return &plainObserver{out: out}
}

func (o *plainObserver) OnRunStart(runID string, experiment string) {
	o.printf("Run %s: %s\n", runID, experiment)
}

func (o *plainObserver) OnPhaseStart(phase runner.Phase, cells int) {
	o.printf("Phase %s: %d cells\n", phase, cells)
}

func (o *plainObserver) OnCellEvent(event runner.CellEvent) {
	switch event.Type {
	case runner.CellRetry:
		o.printf("  row %d %s: attempt %d (%s)\n", event.Row, event.Column, event.Attempt, event.Error)
	case runner.CellMissing:
		o.printf("  row %d %s: left blank (%s)\n", event.Row, event.Column, event.Error)
	}
}

func (o *plainObserver) OnPhaseEnd(summary runner.PhaseSummary) {
	o.printf("Phase %s finished in %s: %d written, %d skipped, %d missing\n",
		summary.Phase, summary.Duration.Round(100*time.Millisecond), summary.Written, summary.Skipped, summary.Missing)
}

func (o *plainObserver) OnRunEnd(runner.Summary) {}

func (o *plainObserver) printf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.out, format, args...)
}
