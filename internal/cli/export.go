package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"judgebench/internal/duckdb"
	"judgebench/internal/table"
	"judgebench/internal/vcs"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var sel selection
		sel.register(fs)
		dbPath := fs.String("db", "", "DuckDB database file")
		runID := fs.String("run-id", "", "Run id to record with the export")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if *dbPath == "" {
			fmt.Fprintln(stderr, "--db is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		_, exp, err := loadExperiment(sel)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		judgements, err := table.Load(exp.JudgementPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load judgements: %v\n", err)
			return ExitError
		}

		ctx := context.Background()
		db, err := duckdb.Open(ctx, *dbPath)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		defer db.Close()

		input := duckdb.ExportInput{RunID: *runID, Experiment: exp, Judgements: judgements}
		if repo, err := vcs.Discover(ctx, filepath.Dir(exp.JudgementPath)); err == nil {
			if meta, err := repo.Metadata(ctx); err == nil {
				input.Commit = meta.Commit
				input.Dirty = meta.Dirty
			}
		}
		summary, err := duckdb.Export(ctx, db, input)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Export %s: %d rows, %d responses, %d scores, %d preferences, %d votes\n",
			summary.ExportID, summary.Rows, summary.Responses, summary.Scores, summary.Preferences, summary.Votes)

		means, err := duckdb.MeanScores(ctx, db, summary.ExportID)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		for _, mean := range means {
			fmt.Fprintf(stdout, "  %s -> %s: %.2f (%d scored)\n", mean.Judge, mean.Responder, mean.Mean, mean.Scored)
		}
		return ExitOK
	}
}
