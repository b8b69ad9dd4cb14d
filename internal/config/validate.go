package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"judgebench/internal/spec"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// reservedColumns are table columns that a model name must not shadow.
var reservedColumns = map[string]struct{}{
	"question_id":   {},
	"question":      {},
	"task":          {},
	"ground_truth":  {},
	"majority_vote": {},
}

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if cfg.Client.TimeoutSeconds < 0 {
		add("client.timeout_seconds", "must be >= 0")
	}
	if cfg.Client.MaxRetries != nil && *cfg.Client.MaxRetries < 0 {
		add("client.max_retries", "must be >= 0")
	}
	for i, tag := range cfg.Client.Tags {
		if tag == "" {
			add(fmt.Sprintf("client.tags[%d]", i), "is required")
		}
	}

	if baseDir == "" {
		baseDir = "."
	}

	if len(cfg.Datasets) == 0 {
		add("datasets", "at least one dataset is required")
	}
	for _, datasetName := range sortedKeys(cfg.Datasets) {
		dataset := cfg.Datasets[datasetName]
		if len(dataset) == 0 {
			add("datasets."+datasetName, "at least one category is required")
			continue
		}
		categories := make([]string, 0, len(dataset))
		for category := range dataset {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			validateExperiment(dataset[category], "datasets."+datasetName+"."+category, baseDir, add)
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func validateExperiment(exp spec.ExperimentConfig, prefix, baseDir string, add func(field, message string)) {
	if exp.DataSource == "" {
		add(prefix+".data_source", "is required")
	} else {
		path := ResolvePath(baseDir, exp.DataSource)
		if info, err := os.Stat(path); err != nil {
			add(prefix+".data_source", fmt.Sprintf("file not found: %s", exp.DataSource))
		} else if info.IsDir() {
			add(prefix+".data_source", fmt.Sprintf("is a directory: %s", exp.DataSource))
		}
	}

	if len(exp.LLMs) == 0 {
		add(prefix+".llms", "at least one model is required")
	}
	validateModels(exp.LLMs, prefix+".llms", add)
	validateModels(exp.Judges, prefix+".judges", add)

	if exp.ResponsePath == "" {
		add(prefix+".response_path", "is required")
	}
	if exp.JudgementPath == "" {
		add(prefix+".judgement_path", "is required")
	}
	if exp.ResponsePath != "" && exp.ResponsePath == exp.JudgementPath {
		add(prefix+".judgement_path", "must differ from response_path")
	}
}

func validateModels(models []string, field string, add func(field, message string)) {
	seen := map[string]struct{}{}
	for i, model := range models {
		itemField := fmt.Sprintf("%s[%d]", field, i)
		if model == "" {
			add(itemField, "is required")
			continue
		}
		if _, reserved := reservedColumns[model]; reserved {
			add(itemField, fmt.Sprintf("model name %q collides with a table column", model))
		}
		if _, exists := seen[model]; exists {
			add(field, fmt.Sprintf("duplicate model %q", model))
			continue
		}
		seen[model] = struct{}{}
	}
}

func sortedKeys(datasets map[string]spec.Dataset) []string {
	keys := make([]string, 0, len(datasets))
	for key := range datasets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
