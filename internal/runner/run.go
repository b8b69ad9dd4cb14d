// Package runner drives the generate, score, prefer and aggregate phases
// over a response table, flushing every written cell before the next call.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/chainguard-dev/clog"

	"judgebench/internal/table"
)

// Run executes the requested phases in order.
func Run(ctx context.Context, params RunParams) (Summary, error) {
	if params.Deps.Completer == nil {
		return Summary{}, fmt.Errorf("completer factory is required")
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Summary{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	exp := params.Experiment
	summary := Summary{RunID: runID, Experiment: exp.Name(), StartedAt: now()}

	log := clog.FromContext(ctx).With("run_id", runID, "experiment", exp.Name())
	ctx = clog.WithLogger(ctx, log)
	if params.Observer != nil {
		params.Observer.OnRunStart(runID, exp.Name())
	}

	r := &run{params: params, now: now}
	var runErr error
	for _, phase := range orderedPhases(params.Phases) {
		log.Infof("phase %s started", phase)
		phaseSummary, err := r.runPhase(ctx, phase)
		summary.Phases = append(summary.Phases, phaseSummary)
		log.Infof("phase %s finished: %d written, %d skipped, %d missing", phase, phaseSummary.Written, phaseSummary.Skipped, phaseSummary.Missing)
		if err != nil {
			runErr = fmt.Errorf("%s phase: %w", phase, err)
			break
		}
	}
	summary.FinishedAt = now()
	if params.Observer != nil {
		params.Observer.OnRunEnd(summary)
	}
	return summary, runErr
}

func ensureRunID(factory func() (string, error)) (string, error) {
	if factory == nil {
		factory = NewRunID
	}
	runID, err := factory()
	if err != nil {
		return "", fmt.Errorf("create run id: %w", err)
	}
	return runID, nil
}

// run holds tables shared between phases of one invocation.
type run struct {
	params     RunParams
	now        func() time.Time
	responses  *table.Table
	judgements *table.Table
}

func (r *run) runPhase(ctx context.Context, phase Phase) (PhaseSummary, error) {
	switch phase {
	case PhaseGenerate:
		return r.generate(ctx)
	case PhaseScore:
		return r.score(ctx)
	case PhasePrefer:
		return r.prefer(ctx)
	case PhaseAggregate:
		return r.aggregate(ctx)
	default:
		return PhaseSummary{Phase: phase}, fmt.Errorf("unknown phase %q", phase)
	}
}
