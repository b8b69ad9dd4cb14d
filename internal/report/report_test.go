package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"judgebench/internal/config"
	"judgebench/internal/spec"
	"judgebench/internal/table"
)

func reportExperiment() config.Experiment {
	return config.Experiment{
		Dataset:  "livebench",
		Category: "instruction_following",
		ExperimentConfig: spec.ExperimentConfig{
			LLMs:   []string{"model-a", "model-b"},
			Judges: []string{"model-a", "judge-x"},
		},
	}
}

// judgementTable builds three rows over two tasks with both judges' scores
// and preferences filled in, except one blank preference.
func judgementTable(t *testing.T) *table.Table {
	t.Helper()
	exp := reportExperiment()
	columns := []string{table.ColumnQuestionID, table.ColumnTask}
	for _, j := range exp.Judges {
		for _, r := range exp.LLMs {
			columns = append(columns, table.ScoreColumn(j, r))
		}
	}
	columns = append(columns, table.PreferenceColumns(exp.Judges)...)
	columns = append(columns, table.ColumnMajorityVote)
	tbl := table.New(columns...)
	tbl.Grow(3)
	set := func(row int, column, value string) {
		require.NoError(t, tbl.Set(row, column, value))
	}
	tasks := []string{"paraphrase", "summarize", "paraphrase"}
	selfScores := []string{"9", "5", "7"}
	otherScores := []string{"6", "8", "7"}
	for row := range tasks {
		set(row, table.ColumnQuestionID, string(rune('a'+row)))
		set(row, table.ColumnTask, tasks[row])
		set(row, table.ScoreColumn("model-a", "model-a"), selfScores[row])
		set(row, table.ScoreColumn("model-a", "model-b"), otherScores[row])
		set(row, table.ScoreColumn("judge-x", "model-a"), "10")
		set(row, table.ScoreColumn("judge-x", "model-b"), "4")
		set(row, table.PreferenceColumn("model-a"), "model-a")
		set(row, table.ColumnMajorityVote, "model-a")
	}
	set(0, table.PreferenceColumn("judge-x"), "model-b")
	set(1, table.PreferenceColumn("judge-x"), "model-a")
	return tbl
}

// TestBuildCountsPreferencesWithMissing verifies blank preferences are counted.
func TestBuildCountsPreferencesWithMissing(t *testing.T) {
	report := Build(reportExperiment(), judgementTable(t))

	require.Len(t, report.Preferences, 2)
	require.Equal(t, 3, report.Preferences[0].Count("model-a"))
	judgeX := report.Preferences[1]
	require.Equal(t, "judge-x", judgeX.Label)
	require.Equal(t, 1, judgeX.Count("model-a"))
	require.Equal(t, 1, judgeX.Count("model-b"))
	require.Equal(t, 1, judgeX.Count(MissingLabel))
	require.Equal(t, 3, judgeX.Total())

	require.NotNil(t, report.Majority)
	require.Equal(t, 3, report.Majority.Count("model-a"))
}

// TestPreferencesByTaskKeepsFirstAppearanceOrder verifies task grouping.
func TestPreferencesByTaskKeepsFirstAppearanceOrder(t *testing.T) {
	byTask := PreferencesByTask(judgementTable(t), []string{"judge-x"})

	require.Len(t, byTask, 2)
	require.Equal(t, "paraphrase", byTask[0].Task)
	require.Equal(t, "summarize", byTask[1].Task)
	require.Equal(t, 2, byTask[0].Judges[0].Total())
	require.Equal(t, 1, byTask[0].Judges[0].Count(MissingLabel))
	require.Equal(t, 1, byTask[1].Judges[0].Count("model-a"))
}

// TestMeanScores verifies averages per judge and responder.
func TestMeanScores(t *testing.T) {
	tbl := judgementTable(t)
	require.NoError(t, tbl.Set(2, table.ScoreColumn("judge-x", "model-b"), ""))

	means := MeanScores(tbl, []string{"model-a", "judge-x"}, []string{"model-a", "model-b"})

	require.Len(t, means, 4)
	require.Equal(t, MeanScore{Judge: "model-a", Responder: "model-a", Mean: 7, Scored: 3}, means[0])
	require.Equal(t, MeanScore{Judge: "model-a", Responder: "model-b", Mean: 7, Scored: 3}, means[1])
	require.Equal(t, MeanScore{Judge: "judge-x", Responder: "model-b", Mean: 4, Scored: 2}, means[3])
}

// TestSelfBias verifies greater, equal and lower self scores are classified.
func TestSelfBias(t *testing.T) {
	bias := SelfBias(judgementTable(t), []string{"model-a", "judge-x"}, []string{"model-a", "model-b"})

	require.Equal(t, []Bias{{Judge: "model-a", SelfBias: 1, Equal: 1, SelfLess: 1, Rows: 3}}, bias)
}

// TestSelfBiasSkipsRowsWithMissingScores verifies incomplete rows are ignored.
func TestSelfBiasSkipsRowsWithMissingScores(t *testing.T) {
	tbl := judgementTable(t)
	require.NoError(t, tbl.Set(0, table.ScoreColumn("model-a", "model-b"), ""))
	require.NoError(t, tbl.Set(1, table.ScoreColumn("model-a", "model-a"), ""))

	bias := SelfBias(tbl, []string{"model-a"}, []string{"model-a", "model-b"})

	require.Equal(t, []Bias{{Judge: "model-a", Equal: 1, Rows: 1}}, bias)
}

// TestWriteChartsNamesPages verifies chart files per experiment and task.
func TestWriteChartsNamesPages(t *testing.T) {
	dir := t.TempDir()
	tbl := judgementTable(t)
	require.NoError(t, tbl.Set(1, table.ColumnTask, "story/generation"))

	written, err := WriteCharts(Build(reportExperiment(), tbl), dir)
	require.NoError(t, err)

	base := "livebench_instruction_following"
	want := []string{
		filepath.Join(dir, base+".html"),
		filepath.Join(dir, base+"_task_paraphrase.html"),
		filepath.Join(dir, base+"_task_story_generation.html"),
		filepath.Join(dir, base+"_majority_voting.html"),
		filepath.Join(dir, base+"_mean_scores.html"),
	}
	require.Equal(t, want, written)
	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "judge-x")
}

func TestTaskPageFilesAvoidCollisions(t *testing.T) {
	tasks := []TaskDistributions{{Task: "mean_scores"}, {Task: "story/generation"}, {Task: "story generation"}, {Task: "majority_voting"}}
	require.Equal(t, []string{
		"exp_task_mean_scores",
		"exp_task_story_generation",
		"exp_task_story_generation_2",
		"exp_task_majority_voting",
	}, taskPageFiles("exp", tasks))
}

// TestWriteChartsSkipsEmptyReport verifies nothing is written without data.
func TestWriteChartsSkipsEmptyReport(t *testing.T) {
	dir := t.TempDir()
	written, err := WriteCharts(Build(reportExperiment(), table.New(table.ColumnQuestionID)), dir)
	require.NoError(t, err)
	require.Empty(t, written)
}

// TestWriteSummary verifies the terminal tables include every section.
func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, Build(reportExperiment(), judgementTable(t))))

	out := buf.String()
	for _, want := range []string{"# livebench_instruction_following", "## Preferences", "## Majority vote", "## Mean scores", "## Self bias", "self_less", "3 (100.0%)", "7.00"} {
		require.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
}
