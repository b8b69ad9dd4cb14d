package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"judgebench/internal/judge"
	"judgebench/internal/metrics"
	"judgebench/internal/table"
)

// phaseRun tracks one phase's counters and forwards events.
type phaseRun struct {
	r       *run
	summary PhaseSummary
	started time.Time
	// current is the cell a judge is working on, for retry events.
	current CellEvent
}

func (r *run) beginPhase(phase Phase, cells []CellEvent) *phaseRun {
	p := &phaseRun{r: r, summary: PhaseSummary{Phase: phase}, started: r.now()}
	if observer := r.params.Observer; observer != nil {
		observer.OnPhaseStart(phase, len(cells))
		for _, cell := range cells {
			p.emit(cell, CellQueued)
		}
	}
	return p
}

func (p *phaseRun) end() PhaseSummary {
	p.summary.Duration = p.r.now().Sub(p.started)
	if observer := p.r.params.Observer; observer != nil {
		observer.OnPhaseEnd(p.summary)
	}
	return p.summary
}

func (p *phaseRun) emit(cell CellEvent, eventType CellEventType) {
	observer := p.r.params.Observer
	if observer == nil {
		return
	}
	cell.Phase = p.summary.Phase
	cell.Type = eventType
	cell.EmittedAt = p.r.now()
	observer.OnCellEvent(cell)
}

func (p *phaseRun) record(outcome string) {
	if recorder := p.r.params.Deps.Recorder; recorder != nil {
		recorder.ObserveCell(string(p.summary.Phase), outcome)
	}
}

func (p *phaseRun) start(cell CellEvent) {
	p.current = cell
	p.emit(cell, CellRunning)
}

func (p *phaseRun) skip(cell CellEvent) {
	p.summary.Skipped++
	p.record(metrics.OutcomeSkipped)
	p.emit(cell, CellSkipped)
}

// missing leaves the cell blank so a later run retries it.
func (p *phaseRun) missing(ctx context.Context, cell CellEvent, err error) {
	p.summary.Missing++
	p.record(metrics.OutcomeMissing)
	clog.FromContext(ctx).Warn("cell left blank", "phase", p.summary.Phase, "row", cell.Row, "column", cell.Column, "error", err)
	cell.Error = err.Error()
	p.emit(cell, CellMissing)
}

// write sets values on tbl and flushes it to path before returning.
func (p *phaseRun) write(ctx context.Context, tbl *table.Table, path string, cell CellEvent, values map[string]string) error {
	for column, value := range values {
		if err := tbl.Set(cell.Row, column, value); err != nil {
			return err
		}
	}
	if err := tbl.Save(path); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	p.summary.Written++
	p.record(metrics.OutcomeWritten)
	clog.FromContext(ctx).Debug("cell written", "phase", p.summary.Phase, "row", cell.Row, "column", cell.Column)
	p.emit(cell, CellDone)
	return nil
}

// attemptHook reports judge attempts to metrics and failed ones as retries.
func (p *phaseRun) attemptHook() judge.Option {
	return judge.WithAttemptHook(func(a judge.Attempt) {
		if recorder := p.r.params.Deps.Recorder; recorder != nil {
			recorder.ObserveAttempt(a.Mode, a.Judge, a.Outcome)
		}
		if a.Outcome == judge.OutcomeOK || a.Number >= judge.MaxAttempts {
			return
		}
		cell := p.current
		cell.Attempt = a.Number + 1
		if a.Err != nil {
			cell.Error = a.Err.Error()
		} else {
			cell.Error = a.Outcome
		}
		p.emit(cell, CellRetry)
	})
}
