package cli

import (
	"flag"
	"fmt"
	"io"

	"judgebench/internal/table"
)

// runMissing builds the handler for the missing command. It exits 1 when
// any blank cell is found so scripts can loop until the table is complete.
func runMissing(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var sel selection
		sel.register(fs)
		which := fs.String("table", "judgements", "Table to scan: responses|judgements")
		start := fs.Int("start", 0, "First row index to scan")
		end := fs.Int("end", -1, "Row index to stop before (default: all rows)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		if *start < 0 || (*end >= 0 && *start > *end) {
			fmt.Fprintf(stderr, "invalid row range: --start %d --end %d\n", *start, *end)
			return ExitUsage
		}

		_, exp, err := loadExperiment(sel)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		var path string
		switch *which {
		case "responses":
			path = exp.ResponsePath
		case "judgements":
			path = exp.JudgementPath
		default:
			fmt.Fprintf(stderr, "invalid table %q (expected responses|judgements)\n", *which)
			return ExitUsage
		}
		t, err := table.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load %s: %v\n", *which, err)
			return ExitError
		}

		stop := *end
		if stop < 0 {
			stop = t.Len()
		}
		missing := t.MissingIn(t.Columns(), *start, stop)
		for _, cell := range missing {
			fmt.Fprintf(stdout, "row %d column %d %s\n", cell.Row, cell.Column, cell.Name)
		}
		if len(missing) > 0 {
			fmt.Fprintf(stdout, "%d missing cells in %s\n", len(missing), path)
			return ExitError
		}
		fmt.Fprintf(stdout, "No missing cells in %s\n", path)
		return ExitOK
	}
}
