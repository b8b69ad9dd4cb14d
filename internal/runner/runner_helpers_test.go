package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"judgebench/internal/config"
	"judgebench/internal/llm"
	"judgebench/internal/spec"
	"judgebench/internal/table"
)

type completerFunc func(ctx context.Context, messages []llm.Message) (string, error)

func (f completerFunc) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return f(ctx, messages)
}

// fakeLLM answers every model from one reply function and counts calls.
type fakeLLM struct {
	mu    sync.Mutex
	calls map[string]int
	reply func(model, prompt string) (string, error)
}

func newFakeLLM(reply func(model, prompt string) (string, error)) *fakeLLM {
	return &fakeLLM{calls: map[string]int{}, reply: reply}
}

func (f *fakeLLM) factory(model, _ string) llm.Completer {
	return completerFunc(func(_ context.Context, messages []llm.Message) (string, error) {
		f.mu.Lock()
		f.calls[model]++
		f.mu.Unlock()
		return f.reply(model, messages[len(messages)-1].Content)
	})
}

func (f *fakeLLM) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, n := range f.calls {
		sum += n
	}
	return sum
}

// echoAnswer answers "<model>: <question>".
func echoAnswer(model, prompt string) (string, error) {
	return model + ": " + prompt, nil
}

func testExperiment(t *testing.T, questions int) config.Experiment {
	t.Helper()
	dir := t.TempDir()
	var lines []string
	for i := 0; i < questions; i++ {
		lines = append(lines, fmt.Sprintf(`{"question_id": "q%d", "turns": ["Question %d"], "task": "task%d"}`, i, i, i%2))
	}
	dataPath := filepath.Join(dir, "questions.jsonl")
	if err := os.WriteFile(dataPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	return config.Experiment{
		Dataset:  "livebench",
		Category: "instruction_following",
		ExperimentConfig: spec.ExperimentConfig{
			DataSource:    dataPath,
			LLMs:          []string{"model-a", "model-b"},
			Judges:        []string{"judge-1", "judge-2", "judge-3"},
			TiebreakJudge: "judge-1",
			ResponsePath:  filepath.Join(dir, "out", "responses.csv"),
			JudgementPath: filepath.Join(dir, "out", "judgements.csv"),
		},
	}
}

func testParams(exp config.Experiment, fake *fakeLLM, phases ...Phase) RunParams {
	clock := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return RunParams{
		Experiment:   exp,
		SystemPrompt: "You are a helpful assistant.",
		Phases:       phases,
		End:          -1,
		Deps: RunDependencies{
			Completer: fake.factory,
			RunID:     func() (string, error) { return "run-test", nil },
			Now:       func() time.Time { return clock },
		},
	}
}

func mustLoad(t *testing.T, path string) *table.Table {
	t.Helper()
	tbl, err := table.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return tbl
}

// recordingObserver captures events in order.
type recordingObserver struct {
	mu     sync.Mutex
	runID  string
	phases []Phase
	events []CellEvent
	ended  []PhaseSummary
	final  *Summary
}

func (o *recordingObserver) OnRunStart(runID string, _ string) { o.runID = runID }

func (o *recordingObserver) OnPhaseStart(phase Phase, _ int) {
	o.phases = append(o.phases, phase)
}

func (o *recordingObserver) OnCellEvent(event CellEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) OnPhaseEnd(summary PhaseSummary) { o.ended = append(o.ended, summary) }

func (o *recordingObserver) OnRunEnd(summary Summary) { o.final = &summary }

func (o *recordingObserver) types(column string, row int) []CellEventType {
	var out []CellEventType
	for _, event := range o.events {
		if event.Column == column && event.Row == row {
			out = append(out, event.Type)
		}
	}
	return out
}

type countingRecorder struct {
	cells    map[string]int
	attempts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{cells: map[string]int{}, attempts: map[string]int{}}
}

func (r *countingRecorder) ObserveCell(phase, outcome string) { r.cells[phase+"/"+outcome]++ }

func (r *countingRecorder) ObserveAttempt(mode, _ string, outcome string) {
	r.attempts[mode+"/"+outcome]++
}
