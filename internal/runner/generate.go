package runner

import (
	"context"
	"errors"
	"strings"

	"judgebench/internal/llm"
	"judgebench/internal/question"
	"judgebench/internal/respondent"
	"judgebench/internal/table"
)

var errBlankAnswer = errors.New("blank answer")

// generate fills one column per responder with answers to each question.
func (r *run) generate(ctx context.Context) (PhaseSummary, error) {
	exp := r.params.Experiment
	questions, err := question.Load(exp.DataSource)
	if err != nil {
		return PhaseSummary{Phase: PhaseGenerate}, err
	}
	responses, _, err := table.LoadOrNew(exp.ResponsePath)
	if err != nil {
		return PhaseSummary{Phase: PhaseGenerate}, err
	}
	populateQuestions(responses, questions, exp.LLMs)
	if err := responses.Save(exp.ResponsePath); err != nil {
		return PhaseSummary{Phase: PhaseGenerate}, err
	}
	r.responses = responses

	start, end, err := clampRange(r.params.Start, r.params.End, responses.Len())
	if err != nil {
		return PhaseSummary{Phase: PhaseGenerate}, err
	}
	var cells []CellEvent
	for _, model := range exp.LLMs {
		for row := start; row < end; row++ {
			cells = append(cells, CellEvent{Row: row, QuestionID: responses.Get(row, table.ColumnQuestionID), Column: model, Model: model})
		}
	}
	p := r.beginPhase(PhaseGenerate, cells)

	for _, model := range exp.LLMs {
		resp := respondent.New(model, r.params.SystemPrompt, r.params.Deps.Completer(model, llm.RoleRespondent))
		for row := start; row < end; row++ {
			if err := ctx.Err(); err != nil {
				return p.end(), err
			}
			cell := CellEvent{Row: row, QuestionID: responses.Get(row, table.ColumnQuestionID), Column: model, Model: model}
			if !r.params.Overwrite && responses.Filled(row, model) {
				p.skip(cell)
				continue
			}
			p.start(cell)
			answer, err := resp.Respond(ctx, responses.Get(row, table.ColumnQuestion))
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return p.end(), ctxErr
				}
				p.missing(ctx, cell, err)
				continue
			}
			if strings.TrimSpace(answer) == "" {
				p.missing(ctx, cell, errBlankAnswer)
				continue
			}
			if err := p.write(ctx, responses, exp.ResponsePath, cell, map[string]string{model: answer}); err != nil {
				return p.end(), err
			}
		}
	}
	return p.end(), nil
}

// populateQuestions (re)writes the question metadata columns and makes sure
// every responder has a column.
func populateQuestions(responses *table.Table, questions []question.Question, models []string) {
	responses.EnsureColumn(table.ColumnQuestionID)
	responses.EnsureColumn(table.ColumnQuestion)
	responses.EnsureColumn(table.ColumnTask)
	withTruth := question.HasGroundTruth(questions)
	if withTruth {
		responses.EnsureColumn(table.ColumnGroundTruth)
	}
	for _, model := range models {
		responses.EnsureColumn(model)
	}
	responses.Grow(len(questions))
	for i, q := range questions {
		_ = responses.Set(i, table.ColumnQuestionID, q.ID)
		_ = responses.Set(i, table.ColumnQuestion, q.Text)
		_ = responses.Set(i, table.ColumnTask, q.Task)
		if withTruth {
			_ = responses.Set(i, table.ColumnGroundTruth, q.GroundTruth)
		}
	}
}
