package config

import (
	"fmt"

	"judgebench/internal/spec"
)

// Experiment is one dataset category with every path resolved against the
// project root.
type Experiment struct {
	Dataset  string
	Category string
	spec.ExperimentConfig
}

// Select looks up a dataset category and resolves its paths.
func Select(cfg spec.Config, dataset, category, root string) (Experiment, error) {
	categories, ok := cfg.Datasets[dataset]
	if !ok {
		return Experiment{}, fmt.Errorf("dataset %q not found in config", dataset)
	}
	exp, ok := categories[category]
	if !ok {
		return Experiment{}, fmt.Errorf("category %q not found in dataset %q config", category, dataset)
	}
	exp.DataSource = ResolvePath(root, exp.DataSource)
	exp.ResponsePath = ResolvePath(root, exp.ResponsePath)
	exp.JudgementPath = ResolvePath(root, exp.JudgementPath)
	exp.PlotsDir = ResolvePath(root, exp.PlotsDir)
	return Experiment{Dataset: dataset, Category: category, ExperimentConfig: exp}, nil
}

// Name returns "<dataset>_<category>", used for output file names.
func (e Experiment) Name() string {
	return e.Dataset + "_" + e.Category
}
