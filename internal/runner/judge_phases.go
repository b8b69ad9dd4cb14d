package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/chainguard-dev/clog"

	"judgebench/internal/judge"
	"judgebench/internal/llm"
	"judgebench/internal/table"
	"judgebench/internal/vote"
)

var (
	errNoAnswer          = errors.New("no response to judge")
	errIncompleteAnswers = errors.New("incomplete responses")
	errNoPreferences     = errors.New("no preferences recorded")
)

// loadJudgements returns the judgement table with the response columns
// refreshed from the response table. A missing judgement file starts as a
// copy of the responses; a missing response file leaves an existing
// judgement table as it is.
func (r *run) loadJudgements() (*table.Table, error) {
	if r.judgements != nil {
		return r.judgements, nil
	}
	exp := r.params.Experiment
	responses := r.responses
	if responses == nil {
		loaded, err := table.Load(exp.ResponsePath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		responses = loaded
	}
	judgements, existed, err := table.LoadOrNew(exp.JudgementPath)
	if err != nil {
		return nil, err
	}
	switch {
	case responses == nil && !existed:
		return nil, fmt.Errorf("response table %s not found; generate responses first", exp.ResponsePath)
	case !existed:
		judgements = responses.Clone()
	case responses != nil:
		for _, column := range responses.Columns() {
			for row, value := range responses.Column(column) {
				_ = judgements.Set(row, column, value)
			}
		}
	}
	if err := judgements.Save(exp.JudgementPath); err != nil {
		return nil, err
	}
	r.judgements = judgements
	return judgements, nil
}

func (r *run) judgeCells(columns func(judgeModel string) []CellEvent) []CellEvent {
	var cells []CellEvent
	for _, judgeModel := range r.params.Experiment.Judges {
		cells = append(cells, columns(judgeModel)...)
	}
	return cells
}

// score asks every judge for a rubric score of every responder's answer.
func (r *run) score(ctx context.Context) (PhaseSummary, error) {
	exp := r.params.Experiment
	judgements, err := r.loadJudgements()
	if err != nil {
		return PhaseSummary{Phase: PhaseScore}, err
	}
	start, end, err := clampRange(r.params.Start, r.params.End, judgements.Len())
	if err != nil {
		return PhaseSummary{Phase: PhaseScore}, err
	}
	scoreCell := func(judgeModel, responder string, row int) CellEvent {
		return CellEvent{
			Row:        row,
			QuestionID: judgements.Get(row, table.ColumnQuestionID),
			Column:     table.ScoreColumn(judgeModel, responder),
			Model:      judgeModel,
			Target:     responder,
		}
	}
	p := r.beginPhase(PhaseScore, r.judgeCells(func(judgeModel string) []CellEvent {
		var cells []CellEvent
		for row := start; row < end; row++ {
			for _, responder := range exp.LLMs {
				cells = append(cells, scoreCell(judgeModel, responder, row))
			}
		}
		return cells
	}))

	for _, judgeModel := range exp.Judges {
		j := judge.New(judgeModel, r.params.Deps.Completer(judgeModel, llm.RoleJudge), p.attemptHook())
		for row := start; row < end; row++ {
			for _, responder := range exp.LLMs {
				if err := ctx.Err(); err != nil {
					return p.end(), err
				}
				cell := scoreCell(judgeModel, responder, row)
				if !r.params.Overwrite && judgements.Filled(row, cell.Column) {
					p.skip(cell)
					continue
				}
				answer := judgements.Get(row, responder)
				if !judgements.Filled(row, responder) {
					p.missing(ctx, cell, errNoAnswer)
					continue
				}
				p.start(cell)
				result, err := j.Score(ctx, judgements.Get(row, table.ColumnQuestion), answer)
				if err != nil {
					if ctxErr := ctx.Err(); ctxErr != nil {
						return p.end(), ctxErr
					}
					p.missing(ctx, cell, err)
					continue
				}
				cell.Value = strconv.Itoa(result.Value)
				if err := p.write(ctx, judgements, exp.JudgementPath, cell, map[string]string{
					table.ScoreColumn(judgeModel, responder):  cell.Value,
					table.ReasonColumn(judgeModel, responder): result.Justification,
				}); err != nil {
					return p.end(), err
				}
			}
		}
	}
	return p.end(), nil
}

// prefer asks every judge to pick the best answer for each question.
func (r *run) prefer(ctx context.Context) (PhaseSummary, error) {
	exp := r.params.Experiment
	judgements, err := r.loadJudgements()
	if err != nil {
		return PhaseSummary{Phase: PhasePrefer}, err
	}
	start, end, err := clampRange(r.params.Start, r.params.End, judgements.Len())
	if err != nil {
		return PhaseSummary{Phase: PhasePrefer}, err
	}
	preferCell := func(judgeModel string, row int) CellEvent {
		return CellEvent{
			Row:        row,
			QuestionID: judgements.Get(row, table.ColumnQuestionID),
			Column:     table.PreferenceColumn(judgeModel),
			Model:      judgeModel,
		}
	}
	p := r.beginPhase(PhasePrefer, r.judgeCells(func(judgeModel string) []CellEvent {
		var cells []CellEvent
		for row := start; row < end; row++ {
			cells = append(cells, preferCell(judgeModel, row))
		}
		return cells
	}))

	for _, judgeModel := range exp.Judges {
		j := judge.New(judgeModel, r.params.Deps.Completer(judgeModel, llm.RoleJudge), p.attemptHook())
		for row := start; row < end; row++ {
			if err := ctx.Err(); err != nil {
				return p.end(), err
			}
			cell := preferCell(judgeModel, row)
			if !r.params.Overwrite && judgements.Filled(row, cell.Column) {
				p.skip(cell)
				continue
			}
			p.start(cell)
			winner, err := r.pick(ctx, j, judgements, row)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return p.end(), ctxErr
				}
				p.missing(ctx, cell, err)
				continue
			}
			cell.Value = winner
			if err := p.write(ctx, judgements, exp.JudgementPath, cell, map[string]string{cell.Column: winner}); err != nil {
				return p.end(), err
			}
		}
	}
	return p.end(), nil
}

// pick asks j to choose among every responder's answer for row, in
// responder order, and maps the choice back to the responder name.
func (r *run) pick(ctx context.Context, j *judge.Judge, judgements *table.Table, row int) (string, error) {
	responders := r.params.Experiment.LLMs
	answers := judgements.Row(row, responders)
	for i := range answers {
		if !judgements.Filled(row, responders[i]) {
			return "", fmt.Errorf("%w: %s", errIncompleteAnswers, responders[i])
		}
	}
	index, err := j.Prefer(ctx, judgements.Get(row, table.ColumnQuestion), answers)
	if err != nil {
		return "", err
	}
	return responders[index], nil
}

// aggregate resolves each row's preferences into the majority_vote column.
func (r *run) aggregate(ctx context.Context) (PhaseSummary, error) {
	exp := r.params.Experiment
	judgements, err := r.loadJudgements()
	if err != nil {
		return PhaseSummary{Phase: PhaseAggregate}, err
	}
	start, end, err := clampRange(r.params.Start, r.params.End, judgements.Len())
	if err != nil {
		return PhaseSummary{Phase: PhaseAggregate}, err
	}
	judgements.EnsureColumn(table.ColumnMajorityVote)
	voteCell := func(row int) CellEvent {
		return CellEvent{
			Row:        row,
			QuestionID: judgements.Get(row, table.ColumnQuestionID),
			Column:     table.ColumnMajorityVote,
			Model:      exp.TiebreakJudge,
		}
	}
	var cells []CellEvent
	for row := start; row < end; row++ {
		cells = append(cells, voteCell(row))
	}
	p := r.beginPhase(PhaseAggregate, cells)

	tieBreaker := judge.New(exp.TiebreakJudge, r.params.Deps.Completer(exp.TiebreakJudge, llm.RoleJudge), p.attemptHook())
	preferenceColumns := table.PreferenceColumns(exp.Judges)
	for row := start; row < end; row++ {
		if err := ctx.Err(); err != nil {
			return p.end(), err
		}
		cell := voteCell(row)
		if !r.params.Overwrite && judgements.Filled(row, cell.Column) {
			p.skip(cell)
			continue
		}
		votes := judgements.Row(row, preferenceColumns)
		if len(vote.Tally(votes)) == 0 {
			p.missing(ctx, cell, errNoPreferences)
			continue
		}
		p.start(cell)
		decision, err := vote.Resolve(ctx, votes, len(exp.Judges), func(ctx context.Context) (string, error) {
			return r.pick(ctx, tieBreaker, judgements, row)
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return p.end(), ctxErr
			}
			p.missing(ctx, cell, err)
			continue
		}
		cell.Value = decision.Winner
		if decision.TieBroken {
			cell.Value += " (tie-break)"
			clog.FromContext(ctx).Info("tie-break decided row", "row", row, "judge", exp.TiebreakJudge, "winner", decision.Winner, "votes", decision.Counts)
		}
		if err := p.write(ctx, judgements, exp.JudgementPath, cell, map[string]string{table.ColumnMajorityVote: decision.Winner}); err != nil {
			return p.end(), err
		}
	}
	return p.end(), nil
}
