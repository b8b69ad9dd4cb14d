package cli

import (
	"flag"
	"fmt"
	"io"

	"judgebench/internal/report"
	"judgebench/internal/table"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var sel selection
		sel.register(fs)
		noCharts := fs.Bool("no-charts", false, "Only print summary tables")
		plotsDir := fs.String("plots-dir", "", "Override plots_dir from the config")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
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

		built := report.Build(exp, judgements)
		if err := report.WriteSummary(stdout, built); err != nil {
			fmt.Fprintf(stderr, "Failed to write summary: %v\n", err)
			return ExitError
		}
		if *noCharts {
			return ExitOK
		}
		dir := exp.PlotsDir
		if *plotsDir != "" {
			dir = *plotsDir
		}
		written, err := report.WriteCharts(built, dir)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write charts: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout)
		for _, path := range written {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		}
		return ExitOK
	}
}
