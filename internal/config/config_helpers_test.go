package config

import (
	"os"
	"path/filepath"
	"testing"

	"judgebench/internal/spec"
)

// validConfig returns a minimal config used by validation tests.
func validConfig() spec.Config {
	retries := 1
	return spec.Config{
		Version: 1,
		Client: spec.ClientConfig{
			BaseURL:        "https://llm.example.com",
			User:           "internal",
			Tags:           []string{"useCase:LLMasJudge"},
			TimeoutSeconds: 600,
			MaxRetries:     &retries,
		},
		Datasets: map[string]spec.Dataset{
			"livebench": {
				"instruction_following": {
					DataSource:    "questions.jsonl",
					LLMs:          []string{"model-a", "model-b"},
					Judges:        []string{"model-a", "model-b", "model-c"},
					ResponsePath:  "results/responses.csv",
					JudgementPath: "results/judgements.csv",
				},
			},
		},
	}
}

// writeQuestionFile creates the data source referenced by validConfig.
func writeQuestionFile(t *testing.T, dir string) {
	t.Helper()
	payload := `{"question_id": "q1", "turns": ["What is 1+1?"], "task": "math"}
`
	path := filepath.Join(dir, "questions.jsonl")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions file: %v", err)
	}
}
