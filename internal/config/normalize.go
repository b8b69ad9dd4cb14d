package config

import (
	"strings"

	"judgebench/internal/spec"
)

// Client defaults mirror the proxy settings the experiments were run with.
const (
	DefaultUser           = "internal"
	DefaultTag            = "useCase:LLMasJudge"
	DefaultTimeoutSeconds = 600
	DefaultMaxRetries     = 1
	DefaultSystemPrompt   = "You are a helpful assistant."
	DefaultPlotsDir       = "results/plots"
)

// Normalize trims values and fills defaults in place.
func Normalize(cfg *spec.Config) {
	client := &cfg.Client
	client.BaseURL = strings.TrimSpace(client.BaseURL)
	client.User = strings.TrimSpace(client.User)
	if client.User == "" {
		client.User = DefaultUser
	}
	client.Tags = trimAll(client.Tags)
	if len(client.Tags) == 0 {
		client.Tags = []string{DefaultTag}
	}
	if client.TimeoutSeconds == 0 {
		client.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if client.MaxRetries == nil {
		retries := DefaultMaxRetries
		client.MaxRetries = &retries
	}
	if strings.TrimSpace(client.SystemPrompt) == "" {
		client.SystemPrompt = DefaultSystemPrompt
	}

	for datasetName, dataset := range cfg.Datasets {
		for category, exp := range dataset {
			exp.DataSource = strings.TrimSpace(exp.DataSource)
			exp.LLMs = trimAll(exp.LLMs)
			exp.Judges = trimAll(exp.Judges)
			exp.TiebreakJudge = strings.TrimSpace(exp.TiebreakJudge)
			if exp.TiebreakJudge == "" && len(exp.Judges) > 0 {
				exp.TiebreakJudge = exp.Judges[0]
			}
			exp.ResponsePath = strings.TrimSpace(exp.ResponsePath)
			exp.JudgementPath = strings.TrimSpace(exp.JudgementPath)
			exp.PlotsDir = strings.TrimSpace(exp.PlotsDir)
			if exp.PlotsDir == "" {
				exp.PlotsDir = DefaultPlotsDir
			}
			dataset[category] = exp
		}
		cfg.Datasets[datasetName] = dataset
	}
}

func trimAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.TrimSpace(value))
	}
	return out
}
