package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chainguard-dev/clog"

	"judgebench/internal/llm"
	"judgebench/internal/metrics"
	"judgebench/internal/runner"
	"judgebench/internal/spec"
	"judgebench/internal/ui/live"
)

// Test seams.
var (
	runPhases     = runner.Run
	newCompleters = providerCompleters
	startLiveUI   = func(stdout io.Writer, opts live.Options) liveUI { return live.Start(stdout, opts) }
)

// liveUI is the part of the live controller the CLI drives.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait()
}

// providerCompleters builds one shared SDK client from the config and
// environment and hands out per-model completers.
func providerCompleters(ctx context.Context, cfg spec.ClientConfig, recorder llm.Recorder) (runner.CompleterFactory, error) {
	env, err := llm.LoadEnv(ctx)
	if err != nil {
		return nil, err
	}
	opts := llm.OptionsFromConfig(cfg, env)
	opts.Recorder = recorder
	provider, err := llm.NewProvider(opts)
	if err != nil {
		return nil, err
	}
	return func(model, role string) llm.Completer {
		return provider.Model(model, role)
	}, nil
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var sel selection
		var opts runOptions
		sel.register(fs)
		opts.register(fs)
		respond := fs.Bool("respond", false, "Generate responses")
		score := fs.Bool("score", false, "Ask every judge to score every response")
		prefer := fs.Bool("prefer", false, "Ask every judge to pick the best response, then aggregate")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}

		var phases []runner.Phase
		if *respond {
			phases = append(phases, runner.PhaseGenerate)
		}
		if *score {
			phases = append(phases, runner.PhaseScore)
		}
		if *prefer {
			phases = append(phases, runner.PhasePrefer, runner.PhaseAggregate)
		}
		if len(phases) == 0 {
			fmt.Fprintln(stderr, "select at least one of --respond, --score, --prefer")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		return executePhases(sel, opts, phases, stdout, stderr)
	}
}

// runAggregate builds the handler for the aggregate command.
func runAggregate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		var sel selection
		var opts runOptions
		sel.register(fs)
		opts.register(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		return executePhases(sel, opts, []runner.Phase{runner.PhaseAggregate}, stdout, stderr)
	}
}

// executePhases loads the experiment, wires logging, metrics and the console
// UI, and runs the phases until done or interrupted.
func executePhases(sel selection, opts runOptions, phases []runner.Phase, stdout, stderr io.Writer) int {
	if opts.start < 0 || (opts.end >= 0 && opts.start > opts.end) {
		fmt.Fprintf(stderr, "invalid row range: --start %d --end %d\n", opts.start, opts.end)
		return ExitUsage
	}
	decision, err := resolveUIMode(opts.uiMode, opts.verbose, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return ExitUsage
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}

	cfg, exp, err := loadExperiment(sel)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return ExitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, closeLog, err := setupLogging(ctx, opts, decision.useLive, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to set up logging: %v\n", err)
		return ExitError
	}
	defer closeLog()

	runID, err := runner.NewRunID()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create run id: %v\n", err)
		return ExitError
	}
	m := metrics.New(runID)
	factory, err := newCompleters(ctx, cfg.Client, m)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create LLM client: %v\n", err)
		return ExitError
	}

	params := runner.RunParams{
		Experiment:   exp,
		SystemPrompt: cfg.Client.SystemPrompt,
		Phases:       phases,
		Start:        opts.start,
		End:          opts.end,
		Overwrite:    opts.overwrite,
		Observer:     newPlainObserver(stdout),
		Deps: runner.RunDependencies{
			Completer: factory,
			RunID:     func() (string, error) { return runID, nil },
			Recorder:  m,
		},
	}
	var ui liveUI
	if decision.useLive {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)
		defer cancel()
		ui = startLiveUI(stdout, live.Options{NoColor: opts.noColor, OnInterrupt: cancel})
		params.Observer = ui
	}

	summary, runErr := runPhases(ctx, params)
	if ui != nil {
		ui.Close()
		ui.Wait()
	}
	if opts.metricsFile != "" {
		if err := m.WriteTextfile(opts.metricsFile); err != nil {
			clog.FromContext(ctx).Warnf("write metrics: %v", err)
			fmt.Fprintf(stderr, "Failed to write metrics: %v\n", err)
		}
	}
	if runErr != nil {
		if errors.Is(runErr, runner.ErrInvalidRange) {
			fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
			return ExitUsage
		}
		if errors.Is(runErr, context.Canceled) {
			fmt.Fprintf(stderr, "Run %s interrupted; written cells are kept, rerun to resume\n", summary.RunID)
			return ExitError
		}
		fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
		return ExitError
	}

	fmt.Fprintf(stdout, "Run %s completed\n", summary.RunID)
	for _, phase := range summary.Phases {
		fmt.Fprintf(stdout, "  %-9s %d written, %d skipped, %d missing\n", phase.Phase, phase.Written, phase.Skipped, phase.Missing)
	}
	if missing := summary.Missing(); missing > 0 {
		fmt.Fprintf(stdout, "%d cells left blank; rerun to retry them or see \"judgebench missing\"\n", missing)
	}
	return ExitOK
}
