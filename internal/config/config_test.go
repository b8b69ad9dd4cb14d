package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"judgebench/internal/spec"
)

// TestNormalizeDefaults verifies client and experiment defaults are filled.
func TestNormalizeDefaults(t *testing.T) {
	cfg := spec.Config{
		Version: 1,
		Datasets: map[string]spec.Dataset{
			"livebench": {"math": {LLMs: []string{" a "}, Judges: []string{"j1", "j2"}}},
		},
	}

	Normalize(&cfg)

	if cfg.Client.User != DefaultUser {
		t.Fatalf("expected default user, got %q", cfg.Client.User)
	}
	if len(cfg.Client.Tags) != 1 || cfg.Client.Tags[0] != DefaultTag {
		t.Fatalf("expected default tag, got %v", cfg.Client.Tags)
	}
	if cfg.Client.MaxRetries == nil || *cfg.Client.MaxRetries != DefaultMaxRetries {
		t.Fatalf("expected default max retries")
	}
	if cfg.Client.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("expected default timeout, got %d", cfg.Client.TimeoutSeconds)
	}
	exp := cfg.Datasets["livebench"]["math"]
	if exp.LLMs[0] != "a" {
		t.Fatalf("expected trimmed model, got %q", exp.LLMs[0])
	}
	if exp.TiebreakJudge != "j1" {
		t.Fatalf("expected tiebreak judge to default to first judge, got %q", exp.TiebreakJudge)
	}
	if exp.PlotsDir != DefaultPlotsDir {
		t.Fatalf("expected default plots dir, got %q", exp.PlotsDir)
	}
}

// TestNormalizeKeepsExplicitZeroRetries verifies an explicit 0 is not overridden.
func TestNormalizeKeepsExplicitZeroRetries(t *testing.T) {
	cfg := validConfig()
	zero := 0
	cfg.Client.MaxRetries = &zero
	Normalize(&cfg)
	if *cfg.Client.MaxRetries != 0 {
		t.Fatalf("expected explicit zero retries to stay, got %d", *cfg.Client.MaxRetries)
	}
}

// TestValidateValidConfig verifies a complete config passes validation.
func TestValidateValidConfig(t *testing.T) {
	dir := t.TempDir()
	writeQuestionFile(t, dir)
	cfg := validConfig()
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected config to validate, got %v", err)
	}
}

// TestValidateCollectsIssues verifies all problems are reported together.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := validConfig()
	cfg.Version = 2
	exp := cfg.Datasets["livebench"]["instruction_following"]
	exp.LLMs = []string{"model-a", "model-a", "question"}
	exp.JudgementPath = ""
	cfg.Datasets["livebench"]["instruction_following"] = exp

	err := Validate(&cfg, t.TempDir())
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	message := err.Error()
	for _, want := range []string{
		"version: unsupported version 2",
		"data_source: file not found",
		"duplicate model \"model-a\"",
		"collides with a table column",
		"judgement_path: is required",
	} {
		if !strings.Contains(message, want) {
			t.Fatalf("expected %q in error, got:\n%s", want, message)
		}
	}
}

// TestValidateRejectsSharedOutputPath verifies responses and judgements use different files.
func TestValidateRejectsSharedOutputPath(t *testing.T) {
	dir := t.TempDir()
	writeQuestionFile(t, dir)
	cfg := validConfig()
	exp := cfg.Datasets["livebench"]["instruction_following"]
	exp.JudgementPath = exp.ResponsePath
	cfg.Datasets["livebench"]["instruction_following"] = exp

	err := Validate(&cfg, dir)
	if err == nil || !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("expected shared path error, got %v", err)
	}
}

// TestValidateRequiresDatasets verifies an empty datasets map is rejected.
func TestValidateRequiresDatasets(t *testing.T) {
	cfg := spec.Config{Version: 1}
	err := Validate(&cfg, ".")
	if err == nil || !strings.Contains(err.Error(), "datasets") {
		t.Fatalf("expected datasets error, got %v", err)
	}
}

// TestLoadResolvesAgainstProjectRoot verifies .judgebench/config.yml resolves data paths from the parent.
func TestLoadResolvesAgainstProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeQuestionFile(t, root)
	configPath := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	payload := `version: 1
datasets:
  livebench:
    math:
      data_source: questions.jsonl
      llms: [model-a]
      judges: [model-a]
      response_path: out/responses.csv
      judgement_path: out/judgements.csv
`
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	exp, err := Select(cfg, "livebench", "math", RepoRootFromConfigPath(configPath))
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if exp.DataSource != filepath.Join(root, "questions.jsonl") {
		t.Fatalf("unexpected data source: %s", exp.DataSource)
	}
	if exp.PlotsDir != filepath.Join(root, DefaultPlotsDir) {
		t.Fatalf("unexpected plots dir: %s", exp.PlotsDir)
	}
	if exp.Name() != "livebench_math" {
		t.Fatalf("unexpected experiment name: %s", exp.Name())
	}
}

// TestSelectUnknownKeys verifies unknown dataset and category names are reported.
func TestSelectUnknownKeys(t *testing.T) {
	cfg := validConfig()
	if _, err := Select(cfg, "mtbench", "writing", "."); err == nil || !strings.Contains(err.Error(), "dataset \"mtbench\"") {
		t.Fatalf("expected dataset error, got %v", err)
	}
	if _, err := Select(cfg, "livebench", "coding", "."); err == nil || !strings.Contains(err.Error(), "category \"coding\"") {
		t.Fatalf("expected category error, got %v", err)
	}
}
