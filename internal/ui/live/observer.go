package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"judgebench/internal/runner"
)

// eventBuffer bounds queued UI events; overflow is dropped.
const eventBuffer = 1024

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	return startProgram(opts, tea.WithOutput(stdout), tea.WithAltScreen())
}

func startProgram(opts Options, programOpts ...tea.ProgramOption) *Controller {
	controller := newController()
	model := NewModel(controller.events, opts)
	controller.program = tea.NewProgram(model, programOpts...)
	go func() {
		_, _ = controller.program.Run()
		close(controller.done)
	}()
	return controller
}

func newController() *Controller {
	return &Controller{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.events)
		c.mu.Unlock()
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, experiment string) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Experiment: experiment})
}

// OnPhaseStart forwards phase start events to the UI.
func (c *Controller) OnPhaseStart(phase runner.Phase, cells int) {
	c.send(Event{Kind: EventPhaseStart, Phase: phase, Cells: cells})
}

// OnCellEvent forwards cell status updates to the UI.
func (c *Controller) OnCellEvent(event runner.CellEvent) {
	c.send(Event{Kind: EventCell, Cell: event})
}

// OnPhaseEnd forwards phase completion events to the UI.
func (c *Controller) OnPhaseEnd(summary runner.PhaseSummary) {
	c.send(Event{Kind: EventPhaseEnd, Phase: summary.Phase, PhaseSummary: summary})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(summary runner.Summary) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
