package question

import "errors"

// ErrNoQuestions is returned when a source holds no questions.
var ErrNoQuestions = errors.New("no questions found")

// Spec defines the question document schema loaded from JSON or YAML.
type Spec struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is one benchmark prompt.
type Question struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"question" yaml:"question"`
	Task        string `json:"task" yaml:"task"`
	GroundTruth string `json:"ground_truth,omitempty" yaml:"ground_truth,omitempty"`
}

// HasGroundTruth reports whether any question carries a ground truth.
func HasGroundTruth(questions []Question) bool {
	for _, q := range questions {
		if q.GroundTruth != "" {
			return true
		}
	}
	return false
}
