package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestValidateCommandAcceptsConfig verifies a valid project passes.
func TestValidateCommandAcceptsConfig(t *testing.T) {
	configPath := writeProject(t)

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (stderr: %s)", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Config OK") {
		t.Fatalf("expected success message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "livebench/instruction_following: 2 llms, 3 judges") {
		t.Fatalf("expected experiment listing, got %q", out.String())
	}
}

// TestValidateCommandReportsIssues verifies every issue is printed.
func TestValidateCommandReportsIssues(t *testing.T) {
	configPath := writeProject(t)
	broken := strings.Replace(testConfig, `llms: ["model-a", "model-b"]`, `llms: []`, 1)
	if err := os.WriteFile(configPath, []byte(broken), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.Remove(filepath.Join(filepath.Dir(filepath.Dir(configPath)), "data", "questions.jsonl")); err != nil {
		t.Fatalf("remove questions: %v", err)
	}

	var out, err bytes.Buffer
	code := Run([]string{"validate", "--config", configPath}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"Validation failed", "llms", "data_source"} {
		if !strings.Contains(err.String(), want) {
			t.Fatalf("expected %q in stderr, got %q", want, err.String())
		}
	}
}

func TestValidateCommandUnknownFlag(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"validate", "--nope"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
