package cli

import (
	"flag"
	"fmt"
	"io"
	"sort"

	"judgebench/internal/config"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		specPath := flags.String("config", "", "Path to config file (default: search for .judgebench/config.yml)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		resolvedSpec, err := resolveSpecPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		cfg, err := config.Load(resolvedSpec)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}

		fmt.Fprintln(stdout, "Config OK")
		datasets := make([]string, 0, len(cfg.Datasets))
		for name := range cfg.Datasets {
			datasets = append(datasets, name)
		}
		sort.Strings(datasets)
		for _, dataset := range datasets {
			categories := make([]string, 0, len(cfg.Datasets[dataset]))
			for name := range cfg.Datasets[dataset] {
				categories = append(categories, name)
			}
			sort.Strings(categories)
			for _, category := range categories {
				exp := cfg.Datasets[dataset][category]
				fmt.Fprintf(stdout, "  %s/%s: %d llms, %d judges\n", dataset, category, len(exp.LLMs), len(exp.Judges))
			}
		}
		return ExitOK
	}
}
