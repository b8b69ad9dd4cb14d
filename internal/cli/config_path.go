package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"judgebench/internal/config"
	"judgebench/internal/spec"
)

// resolveSpecPath normalizes a config path or finds it from CWD.
func resolveSpecPath(specPath string) (string, error) {
	if strings.TrimSpace(specPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return "", fmt.Errorf("resolve spec path: %w", err)
	}
	return abs, nil
}

// loadExperiment loads the config and selects one dataset category with
// paths resolved against the project root.
func loadExperiment(sel selection) (spec.Config, config.Experiment, error) {
	specPath, err := resolveSpecPath(sel.configPath)
	if err != nil {
		return spec.Config{}, config.Experiment{}, err
	}
	cfg, err := config.Load(specPath)
	if err != nil {
		return spec.Config{}, config.Experiment{}, err
	}
	exp, err := config.Select(cfg, sel.dataset, sel.category, config.RepoRootFromConfigPath(specPath))
	if err != nil {
		return spec.Config{}, config.Experiment{}, err
	}
	return cfg, exp, nil
}
