package duckdb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"judgebench/internal/config"
)

// experimentPayload holds the experiment fields that define its results.
// File paths are left out so moved projects keep their key.
type experimentPayload struct {
	Dataset       string   `json:"dataset"`
	Category      string   `json:"category"`
	LLMs          []string `json:"llms"`
	Judges        []string `json:"judges"`
	TiebreakJudge string   `json:"tiebreak_judge"`
}

// ExperimentJSON returns the stored JSON form of an experiment.
func ExperimentJSON(exp config.Experiment) ([]byte, error) {
	return json.Marshal(experimentPayload{
		Dataset:       exp.Dataset,
		Category:      exp.Category,
		LLMs:          exp.LLMs,
		Judges:        exp.Judges,
		TiebreakJudge: exp.TiebreakJudge,
	})
}

// ExperimentKey fingerprints the parts of an experiment that define its
// results, so exports of the same setup can be grouped.
func ExperimentKey(exp config.Experiment) (string, error) {
	data, err := ExperimentJSON(exp)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
