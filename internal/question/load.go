package question

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxLineBytes bounds a single JSONL record.
const maxLineBytes = 16 << 20

// Load reads questions from a .jsonl dataset export or a versioned JSON/YAML
// question document.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var spec Spec
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		questions, err := parseJSONL(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		spec = Spec{Version: 1, Questions: questions}
	case ".json":
		spec, err = parseJSONSpec(data)
	default:
		spec, err = parseYAMLSpec(data)
	}
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeSpec(spec)
	if err != nil {
		return nil, err
	}
	return normalized.Questions, nil
}

// liveBenchRecord matches one line of a LiveBench style export. The first
// turn is the question text.
type liveBenchRecord struct {
	QuestionID  json.RawMessage `json:"question_id"`
	Turns       []string        `json:"turns"`
	Task        string          `json:"task"`
	GroundTruth json.RawMessage `json:"ground_truth"`
}

func parseJSONL(r io.Reader) ([]Question, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var questions []Question
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var record liveBenchRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("parse jsonl line %d: %w", line, err)
		}
		q := Question{
			ID:          scalarText(record.QuestionID),
			Task:        record.Task,
			GroundTruth: scalarText(record.GroundTruth),
		}
		if len(record.Turns) > 0 {
			q.Text = record.Turns[0]
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read jsonl: %w", err)
	}
	return questions, nil
}

// scalarText renders a JSON string as its value and any other JSON value as
// compact JSON text.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func parseJSONSpec(data []byte) (Spec, error) {
	var spec Spec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Spec{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	return spec, nil
}

func parseYAMLSpec(data []byte) (Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		if err == io.EOF {
			return Spec{}, fmt.Errorf("parse yaml: %w", ErrNoQuestions)
		}
		return Spec{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Spec{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Spec{}, fmt.Errorf("parse yaml: %w", err)
	}
	return spec, nil
}
