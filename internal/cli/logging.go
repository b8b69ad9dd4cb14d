package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chainguard-dev/clog"
)

// setupLogging attaches a logger to ctx. Logs go to the --log file when
// given, else to stderr unless the live UI owns the terminal.
func setupLogging(ctx context.Context, opts runOptions, live bool, stderr io.Writer) (context.Context, func(), error) {
	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = stderr
	cleanup := func() {}
	switch {
	case opts.logPath != "":
		if err := os.MkdirAll(filepath.Dir(opts.logPath), 0o755); err != nil {
			return ctx, cleanup, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return ctx, cleanup, fmt.Errorf("open log file: %w", err)
		}
		w = file
		cleanup = func() { _ = file.Close() }
	case live:
		w = io.Discard
	}
	logger := clog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return clog.WithLogger(ctx, logger), cleanup, nil
}
