// Package report summarizes a judgement table: preference distributions,
// majority votes, mean scores and self-bias.
package report

import (
	"sort"
	"strings"

	"judgebench/internal/config"
	"judgebench/internal/table"
)

// MissingLabel names blank cells in distributions.
const MissingLabel = "missing"

// Slice is one candidate's share of a distribution.
type Slice struct {
	Name  string
	Count int
}

// Distribution counts values of one column.
type Distribution struct {
	Label  string
	Slices []Slice
}

// Total sums every slice.
func (d Distribution) Total() int {
	total := 0
	for _, slice := range d.Slices {
		total += slice.Count
	}
	return total
}

// Count returns the count for name.
func (d Distribution) Count(name string) int {
	for _, slice := range d.Slices {
		if slice.Name == name {
			return slice.Count
		}
	}
	return 0
}

// TaskDistributions groups per-judge distributions for one task.
type TaskDistributions struct {
	Task   string
	Judges []Distribution
}

// MeanScore is a judge's average rubric score for one responder.
type MeanScore struct {
	Judge     string
	Responder string
	Mean      float64
	Scored    int
}

// Bias counts how a judge scored its own answers against the others.
type Bias struct {
	Judge    string
	SelfBias int
	Equal    int
	SelfLess int
	Rows     int
}

// Report is everything derived from one judgement table.
type Report struct {
	Experiment  config.Experiment
	Preferences []Distribution
	ByTask      []TaskDistributions
	Majority    *Distribution
	Means       []MeanScore
	Bias        []Bias
}

// Build derives the report from a judgement table.
func Build(exp config.Experiment, judgements *table.Table) Report {
	report := Report{Experiment: exp}
	judges := judgesWithColumn(judgements, exp.Judges, table.PreferenceColumn)
	if len(judges) > 0 {
		report.Preferences = Preferences(judgements, judges, allRows(judgements))
		report.ByTask = PreferencesByTask(judgements, judges)
	}
	if judgements.HasColumn(table.ColumnMajorityVote) {
		majority := distribution("majority vote", judgements.Column(table.ColumnMajorityVote))
		report.Majority = &majority
	}
	report.Means = MeanScores(judgements, exp.Judges, exp.LLMs)
	report.Bias = SelfBias(judgements, exp.Judges, exp.LLMs)
	return report
}

// Preferences returns one distribution per judge over rows.
func Preferences(judgements *table.Table, judges []string, rows []int) []Distribution {
	out := make([]Distribution, 0, len(judges))
	for _, judge := range judges {
		column := table.PreferenceColumn(judge)
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			values = append(values, judgements.Get(row, column))
		}
		out = append(out, distribution(judge, values))
	}
	return out
}

// PreferencesByTask splits preference distributions by task, in order of
// first appearance.
func PreferencesByTask(judgements *table.Table, judges []string) []TaskDistributions {
	var order []string
	rowsByTask := map[string][]int{}
	for row, task := range judgements.Column(table.ColumnTask) {
		if _, seen := rowsByTask[task]; !seen {
			order = append(order, task)
		}
		rowsByTask[task] = append(rowsByTask[task], row)
	}
	out := make([]TaskDistributions, 0, len(order))
	for _, task := range order {
		out = append(out, TaskDistributions{Task: task, Judges: Preferences(judgements, judges, rowsByTask[task])})
	}
	return out
}

// MeanScores averages parsable scores per judge and responder. Pairs with
// no score are omitted.
func MeanScores(judgements *table.Table, judges, responders []string) []MeanScore {
	var out []MeanScore
	for _, judge := range judges {
		for _, responder := range responders {
			column := table.ScoreColumn(judge, responder)
			if !judgements.HasColumn(column) {
				continue
			}
			sum, n := 0, 0
			for _, value := range judgements.Column(column) {
				score, ok := table.ParseScore(value)
				if !ok {
					continue
				}
				sum += score
				n++
			}
			if n == 0 {
				continue
			}
			out = append(out, MeanScore{Judge: judge, Responder: responder, Mean: float64(sum) / float64(n), Scored: n})
		}
	}
	return out
}

// SelfBias compares, for every judge that is also a responder, its score for
// its own answer with its scores for the other responders. A row counts as
// self_bias when the self score beats every other score, equal when all
// scores match, and self_less when some other score is higher. Rows with a
// missing score are skipped.
func SelfBias(judgements *table.Table, judges, responders []string) []Bias {
	var out []Bias
	for _, judge := range judges {
		if !contains(responders, judge) || len(responders) < 2 {
			continue
		}
		bias := Bias{Judge: judge}
		for row := 0; row < judgements.Len(); row++ {
			self, ok := table.ParseScore(judgements.Get(row, table.ScoreColumn(judge, judge)))
			if !ok {
				continue
			}
			others, ok := otherScores(judgements, row, judge, responders)
			if !ok {
				continue
			}
			bias.Rows++
			best, allEqual := others[0], true
			for _, score := range others {
				best = max(best, score)
				if score != self {
					allEqual = false
				}
			}
			switch {
			case self > best:
				bias.SelfBias++
			case allEqual:
				bias.Equal++
			case self < best:
				bias.SelfLess++
			}
		}
		out = append(out, bias)
	}
	return out
}

func otherScores(judgements *table.Table, row int, judge string, responders []string) ([]int, bool) {
	scores := make([]int, 0, len(responders)-1)
	for _, responder := range responders {
		if responder == judge {
			continue
		}
		score, ok := table.ParseScore(judgements.Get(row, table.ScoreColumn(judge, responder)))
		if !ok {
			return nil, false
		}
		scores = append(scores, score)
	}
	return scores, true
}

func distribution(label string, values []string) Distribution {
	counts := map[string]int{}
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			value = MissingLabel
		}
		counts[value]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	d := Distribution{Label: label, Slices: make([]Slice, 0, len(names))}
	for _, name := range names {
		d.Slices = append(d.Slices, Slice{Name: name, Count: counts[name]})
	}
	return d
}

func judgesWithColumn(judgements *table.Table, judges []string, column func(string) string) []string {
	var out []string
	for _, judge := range judges {
		if judgements.HasColumn(column(judge)) {
			out = append(out, judge)
		}
	}
	return out
}

func allRows(judgements *table.Table) []int {
	rows := make([]int, judgements.Len())
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
