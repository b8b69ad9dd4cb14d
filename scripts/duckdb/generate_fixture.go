package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"judgebench/internal/config"
	"judgebench/internal/duckdb"
	"judgebench/internal/spec"
	"judgebench/internal/table"
	"judgebench/internal/vote"
)

// fixtureConfig defines the JSON config for generating a judgement fixture.
type fixtureConfig struct {
	Name      string   `json:"name"`
	Questions int      `json:"questions"`
	LLMs      []string `json:"llms"`
	Judges    []string `json:"judges"`
	// BlankEvery leaves every Nth score cell blank; zero keeps them all.
	BlankEvery int `json:"blank_every"`
}

func main() {
	configPath := flag.String("config", "", "path to fixture config JSON")
	outPath := flag.String("out", "", "output judgement CSV path")
	dbPath := flag.String("db", "", "optional duckdb file to export the fixture into")
	flag.Parse()
	if *configPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --config <path> --out <csv file> [--db <duckdb file>]")
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	judgements, err := buildJudgements(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build fixture: %v\n", err)
		os.Exit(1)
	}
	if err := judgements.Save(*outPath); err != nil {
		fmt.Fprintf(os.Stderr, "write fixture: %v\n", err)
		os.Exit(1)
	}
	if *dbPath == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := exportFixture(ctx, *dbPath, cfg, judgements); err != nil {
		fmt.Fprintf(os.Stderr, "export fixture: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (fixtureConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureConfig{}, err
	}
	var cfg fixtureConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fixtureConfig{}, err
	}
	if cfg.Questions < 1 || len(cfg.LLMs) == 0 || len(cfg.Judges) == 0 {
		return fixtureConfig{}, fmt.Errorf("questions, llms and judges are required")
	}
	return cfg, nil
}

// buildJudgements fills a judgement table with deterministic scores and
// preferences so repeated runs produce identical fixtures.
func buildJudgements(cfg fixtureConfig) (*table.Table, error) {
	judgements := table.New(fixtureColumns(cfg)...)
	judgements.Grow(cfg.Questions)
	cell := 0
	for row := 0; row < cfg.Questions; row++ {
		values := map[string]string{
			table.ColumnQuestionID: fmt.Sprintf("q%04d", row+1),
			table.ColumnQuestion:   fmt.Sprintf("Fixture question %d", row+1),
			table.ColumnTask:       fixtureTasks[row%len(fixtureTasks)],
		}
		for i, llm := range cfg.LLMs {
			values[llm] = fmt.Sprintf("%s answer %d", llm, row+1)
			for j, judge := range cfg.Judges {
				cell++
				if cfg.BlankEvery > 0 && cell%cfg.BlankEvery == 0 {
					continue
				}
				values[table.ScoreColumn(judge, llm)] = fmt.Sprintf("%d", fixtureScore(row, i, j))
				values[table.ReasonColumn(judge, llm)] = "fixture"
			}
		}
		votes := make([]string, len(cfg.Judges))
		for j, judge := range cfg.Judges {
			votes[j] = cfg.LLMs[(row+j)%len(cfg.LLMs)]
			values[table.PreferenceColumn(judge)] = votes[j]
		}
		decision, err := vote.Resolve(context.Background(), votes, len(cfg.Judges), func(context.Context) (string, error) {
			return votes[0], nil
		})
		if err != nil {
			return nil, err
		}
		values[table.ColumnMajorityVote] = decision.Winner
		for column, value := range values {
			if err := judgements.Set(row, column, value); err != nil {
				return nil, err
			}
		}
	}
	return judgements, nil
}

// fixtureColumns lists judgement columns in the order the runner writes them.
func fixtureColumns(cfg fixtureConfig) []string {
	columns := []string{table.ColumnQuestionID, table.ColumnQuestion, table.ColumnTask}
	columns = append(columns, cfg.LLMs...)
	for _, judge := range cfg.Judges {
		for _, llm := range cfg.LLMs {
			columns = append(columns, table.ScoreColumn(judge, llm), table.ReasonColumn(judge, llm))
		}
	}
	columns = append(columns, table.PreferenceColumns(cfg.Judges)...)
	return append(columns, table.ColumnMajorityVote)
}

func exportFixture(ctx context.Context, path string, cfg fixtureConfig, judgements *table.Table) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	if err := removeIfExists(path); err != nil {
		return err
	}
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = duckdb.Export(ctx, db, duckdb.ExportInput{
		RunID: deterministicID("run", 0),
		Experiment: config.Experiment{
			Dataset:  "fixture",
			Category: cfg.Name,
			ExperimentConfig: spec.ExperimentConfig{
				LLMs:   cfg.LLMs,
				Judges: cfg.Judges,
			},
		},
		Judgements: judgements,
		ExportedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	return err
}

// fixtureScore spreads scores over the 0..11 rubric range.
func fixtureScore(row, responder, judge int) int {
	return (row*7 + responder*5 + judge*3) % 12
}

var fixtureTasks = []string{"paraphrase", "summarize", "story_generation"}
