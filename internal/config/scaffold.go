package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
client:
  base_url: "https://litellm.example.com/"
  user: "internal"
  tags:
    - "useCase:LLMasJudge"
  timeout_seconds: 600
  max_retries: 1

datasets:
  livebench:
    instruction_following:
      data_source: "data/livebench_instruction_following.jsonl"
      llms:
        - "openai/gpt-4o"
        - "anthropic/claude-3-5-sonnet"
        - "gemini/gemini-1.5-pro"
      judges:
        - "openai/gpt-4o"
        - "anthropic/claude-3-5-sonnet"
        - "gemini/gemini-1.5-pro"
      tiebreak_judge: "openai/o1"
      response_path: "results/responses/livebench_instruction_following.csv"
      judgement_path: "results/judgements/livebench_instruction_following.csv"
      plots_dir: "results/plots"
`

// Scaffold writes a starter config file; it refuses to overwrite.
func Scaffold(specPath string) error {
	if specPath == "" {
		return fmt.Errorf("spec path is required")
	}
	if info, err := os.Stat(specPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("spec path %q is a directory", specPath)
		}
		return fmt.Errorf("spec file already exists at %q", specPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat spec path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(specPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(specPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
