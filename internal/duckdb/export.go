package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/google/uuid"

	"judgebench/internal/config"
	"judgebench/internal/table"
)

// ExportInput is one judgement table to ingest.
type ExportInput struct {
	RunID      string
	Experiment config.Experiment
	Judgements *table.Table
	ExportedAt time.Time
	// Commit and Dirty describe the project checkout, when it is a git repo.
	Commit string
	Dirty  bool
}

// ExportSummary counts the rows written by Export.
type ExportSummary struct {
	ExportID    string
	Rows        int
	Responses   int
	Scores      int
	Preferences int
	Votes       int
}

// MeanScore is a per judge and responder average computed in SQL.
type MeanScore struct {
	Judge     string
	Responder string
	Mean      float64
	Scored    int
}

// Export ingests a judgement table in a single transaction. Columns absent
// from the table are skipped; blank cells are stored as NULL.
func Export(ctx context.Context, db *sql.DB, input ExportInput) (ExportSummary, error) {
	if db == nil {
		return ExportSummary{}, errors.New("duckdb: db is nil")
	}
	if input.Judgements == nil {
		return ExportSummary{}, errors.New("duckdb: judgement table is nil")
	}
	if input.ExportedAt.IsZero() {
		input.ExportedAt = time.Now().UTC()
	}
	exp := input.Experiment
	key, err := ExperimentKey(exp)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("experiment key: %w", err)
	}
	payload, err := ExperimentJSON(exp)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("experiment json: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t := input.Judgements
	summary := ExportSummary{ExportID: uuid.NewString(), Rows: t.Len()}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO exports (export_id, run_id, dataset, category, experiment_key, experiment, vcs_commit, vcs_dirty, row_count, exported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ExportID, nullable(input.RunID), exp.Dataset, exp.Category, key, string(payload),
		nullable(input.Commit), dirtyValue(input), t.Len(), input.ExportedAt,
	); err != nil {
		return ExportSummary{}, fmt.Errorf("insert export: %w", err)
	}

	w := exportWriter{ctx: ctx, tx: tx, exportID: summary.ExportID, t: t}
	if summary.Responses, err = w.responses(exp.LLMs); err != nil {
		return ExportSummary{}, err
	}
	if summary.Scores, err = w.scores(exp.Judges, exp.LLMs); err != nil {
		return ExportSummary{}, err
	}
	if summary.Preferences, err = w.preferences(exp.Judges); err != nil {
		return ExportSummary{}, err
	}
	if summary.Votes, err = w.votes(); err != nil {
		return ExportSummary{}, err
	}
	if err := tx.Commit(); err != nil {
		return ExportSummary{}, fmt.Errorf("commit export: %w", err)
	}
	clog.FromContext(ctx).With("export_id", summary.ExportID).Infof("exported %d rows of %s", summary.Rows, exp.Name())
	return summary, nil
}

// MeanScores reads the mean score view for one export.
func MeanScores(ctx context.Context, db *sql.DB, exportID string) ([]MeanScore, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT judge, responder, mean_score, scored
		 FROM v_mean_scores
		 WHERE export_id = CAST(? AS UUID) AND scored > 0
		 ORDER BY judge, responder`,
		exportID,
	)
	if err != nil {
		return nil, fmt.Errorf("query mean scores: %w", err)
	}
	defer rows.Close()
	var out []MeanScore
	for rows.Next() {
		var mean MeanScore
		if err := rows.Scan(&mean.Judge, &mean.Responder, &mean.Mean, &mean.Scored); err != nil {
			return nil, fmt.Errorf("scan mean score: %w", err)
		}
		out = append(out, mean)
	}
	return out, rows.Err()
}

type exportWriter struct {
	ctx      context.Context
	tx       *sql.Tx
	exportID string
	t        *table.Table
}

func (w exportWriter) responses(responders []string) (int, error) {
	stmt, err := w.tx.PrepareContext(w.ctx,
		`INSERT INTO responses (export_id, row_index, question_id, task, responder, answer) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare responses: %w", err)
	}
	defer stmt.Close()
	count := 0
	for _, responder := range responders {
		if !w.t.HasColumn(responder) {
			continue
		}
		for row := 0; row < w.t.Len(); row++ {
			if _, err := stmt.ExecContext(w.ctx, w.exportID, row, w.questionID(row), nullable(w.t.Get(row, table.ColumnTask)), responder, nullable(w.t.Get(row, responder))); err != nil {
				return count, fmt.Errorf("insert response row %d: %w", row, err)
			}
			count++
		}
	}
	return count, nil
}

func (w exportWriter) scores(judges, responders []string) (int, error) {
	stmt, err := w.tx.PrepareContext(w.ctx,
		`INSERT INTO scores (export_id, row_index, question_id, judge, responder, score, reason) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare scores: %w", err)
	}
	defer stmt.Close()
	count := 0
	for _, judge := range judges {
		for _, responder := range responders {
			column := table.ScoreColumn(judge, responder)
			if !w.t.HasColumn(column) {
				continue
			}
			reasons := table.ReasonColumn(judge, responder)
			for row := 0; row < w.t.Len(); row++ {
				if _, err := stmt.ExecContext(w.ctx, w.exportID, row, w.questionID(row), judge, responder, scoreValue(w.t.Get(row, column)), nullable(w.t.Get(row, reasons))); err != nil {
					return count, fmt.Errorf("insert score row %d: %w", row, err)
				}
				count++
			}
		}
	}
	return count, nil
}

func (w exportWriter) preferences(judges []string) (int, error) {
	stmt, err := w.tx.PrepareContext(w.ctx,
		`INSERT INTO preferences (export_id, row_index, question_id, judge, choice) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare preferences: %w", err)
	}
	defer stmt.Close()
	count := 0
	for _, judge := range judges {
		column := table.PreferenceColumn(judge)
		if !w.t.HasColumn(column) {
			continue
		}
		for row := 0; row < w.t.Len(); row++ {
			if _, err := stmt.ExecContext(w.ctx, w.exportID, row, w.questionID(row), judge, nullable(w.t.Get(row, column))); err != nil {
				return count, fmt.Errorf("insert preference row %d: %w", row, err)
			}
			count++
		}
	}
	return count, nil
}

func (w exportWriter) votes() (int, error) {
	if !w.t.HasColumn(table.ColumnMajorityVote) {
		return 0, nil
	}
	stmt, err := w.tx.PrepareContext(w.ctx,
		`INSERT INTO majority_votes (export_id, row_index, question_id, winner) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare majority votes: %w", err)
	}
	defer stmt.Close()
	for row := 0; row < w.t.Len(); row++ {
		if _, err := stmt.ExecContext(w.ctx, w.exportID, row, w.questionID(row), nullable(w.t.Get(row, table.ColumnMajorityVote))); err != nil {
			return row, fmt.Errorf("insert majority vote row %d: %w", row, err)
		}
	}
	return w.t.Len(), nil
}

func (w exportWriter) questionID(row int) string {
	return w.t.Get(row, table.ColumnQuestionID)
}

// nullable converts a blank cell into a SQL NULL.
func nullable(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func dirtyValue(input ExportInput) interface{} {
	if input.Commit == "" {
		return nil
	}
	return input.Dirty
}

func scoreValue(value string) interface{} {
	score, ok := table.ParseScore(value)
	if !ok {
		return nil
	}
	return score
}
