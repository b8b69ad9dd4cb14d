package live

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"judgebench/internal/runner"
	"judgebench/internal/testutil"
)

// TestControllerDropsEventsWhenFull verifies sends never block the runner.
func TestControllerDropsEventsWhenFull(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		c := newController()
		for i := 0; i < eventBuffer+10; i++ {
			c.OnCellEvent(runner.CellEvent{Row: i})
		}
		if got := len(c.events); got != eventBuffer {
			t.Fatalf("expected full buffer of %d, got %d", eventBuffer, got)
		}
	})
}

// TestControllerIgnoresEventsAfterClose verifies late events are dropped.
func TestControllerIgnoresEventsAfterClose(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		c := newController()
		c.OnRunEnd(runner.Summary{})
		c.OnCellEvent(runner.CellEvent{})
		c.Close()
		count := 0
		for range c.events {
			count++
		}
		if count != 1 {
			t.Fatalf("expected only the run end event, got %d", count)
		}
	})
}

// TestControllerStopsProgramOnRunEnd verifies the UI exits after the run.
func TestControllerStopsProgramOnRunEnd(t *testing.T) {
	c := startProgram(Options{NoColor: true, TickInterval: 10 * time.Millisecond},
		tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutSignalHandler())
	c.OnRunStart("run-1", "livebench_if")
	c.OnPhaseStart(runner.PhaseGenerate, 1)
	c.OnRunEnd(runner.Summary{RunID: "run-1"})

	testutil.Eventually(t, 2*time.Second, 10*time.Millisecond, func() bool {
		select {
		case <-c.done:
			return true
		default:
			return false
		}
	}, "live UI did not exit after run end")
}
