package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"judgebench/internal/llm"
	"judgebench/internal/runner"
	"judgebench/internal/spec"
)

const testConfig = `version: 1
client:
  base_url: "https://llm.example.com/"
  tags: ["useCase:LLMasJudge"]
datasets:
  livebench:
    instruction_following:
      data_source: "data/questions.jsonl"
      llms: ["model-a", "model-b"]
      judges: ["judge-1", "judge-2", "judge-3"]
      response_path: "results/responses.csv"
      judgement_path: "results/judgements.csv"
      plots_dir: "results/plots"
`

const testQuestions = `{"question_id": "q1", "turns": ["Question one"], "task": "paraphrase"}
{"question_id": "q2", "turns": ["Question two"], "task": "summarize"}
`

// writeProject lays out a project root with .judgebench/config.yml and a
// two-question dataset, returning the config path.
func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, ".judgebench", "config.yml")
	files := map[string]string{
		configPath: testConfig,
		filepath.Join(root, "data", "questions.jsonl"): testQuestions,
	}
	for path, body := range files {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return configPath
}

type completerFunc func(ctx context.Context, messages []llm.Message) (string, error)

func (f completerFunc) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return f(ctx, messages)
}

// fakeModels answers respondents with "<model> answer", scores every answer
// 7 and always prefers the first response.
type fakeModels struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeModels) factory(model, role string) llm.Completer {
	return completerFunc(func(_ context.Context, messages []llm.Message) (string, error) {
		f.mu.Lock()
		f.calls++
		f.mu.Unlock()
		prompt := messages[len(messages)-1].Content
		switch {
		case role == llm.RoleRespondent:
			return model + " answer", nil
		case strings.Contains(prompt, "Response 1:"):
			return "1", nil
		default:
			return "Overall Score: 7\nSolid answer.", nil
		}
	})
}

// useFakeModels swaps the LLM provider for fakeModels during a test.
func useFakeModels(t *testing.T) *fakeModels {
	t.Helper()
	fake := &fakeModels{}
	orig := newCompleters
	newCompleters = func(context.Context, spec.ClientConfig, llm.Recorder) (runner.CompleterFactory, error) {
		return fake.factory, nil
	}
	t.Cleanup(func() { newCompleters = orig })
	return fake
}
