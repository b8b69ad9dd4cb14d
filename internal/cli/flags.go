package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Default experiment selection.
const (
	defaultDataset  = "livebench"
	defaultCategory = "instruction_following"
)

// selection picks the config file and experiment.
type selection struct {
	configPath string
	dataset    string
	category   string
}

func (s *selection) register(fs *flag.FlagSet) {
	fs.StringVar(&s.configPath, "config", "", "Path to config file (default: search for .judgebench/config.yml)")
	fs.StringVar(&s.dataset, "dataset", defaultDataset, "Dataset key in the config")
	fs.StringVar(&s.category, "category", defaultCategory, "Category within the dataset")
}

// runOptions are shared by commands that drive the runner.
type runOptions struct {
	start       int
	end         int
	overwrite   bool
	uiMode      string
	verbose     bool
	logPath     string
	noColor     bool
	metricsFile string
}

func (o *runOptions) register(fs *flag.FlagSet) {
	fs.IntVar(&o.start, "start", 0, "First row index to process")
	fs.IntVar(&o.end, "end", -1, "Row index to stop before (default: all rows)")
	fs.BoolVar(&o.overwrite, "overwrite", false, "Recompute cells that already hold a value")
	fs.StringVar(&o.uiMode, "ui", "auto", "Console UI mode: auto|live|plain")
	fs.BoolVar(&o.verbose, "verbose", false, "Log debug output (disables the live UI)")
	fs.StringVar(&o.logPath, "log", "", "Write logs to this file")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
}

// parseFlags parses args and reports the exit code to return when parsing
// did not succeed.
func parseFlags(cmd *Command, fs *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}
