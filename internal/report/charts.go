package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"judgebench/internal/judge"
)

// WriteCharts renders the report's HTML chart pages into dir and returns the
// written paths. Pages without data are skipped.
func WriteCharts(report Report, dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("plots dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	name := report.Experiment.Name()
	var written []string
	writePage := func(file string, page *components.Page) error {
		path := filepath.Join(dir, file+".html")
		if err := renderPage(path, page); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	if len(report.Preferences) > 0 {
		if err := writePage(name, piePage(name+" preferences", report.Preferences)); err != nil {
			return written, err
		}
		files := taskPageFiles(name, report.ByTask)
		for i, task := range report.ByTask {
			title := name + " preferences: " + task.Task
			if err := writePage(files[i], piePage(title, task.Judges)); err != nil {
				return written, err
			}
		}
	}
	if report.Majority != nil {
		if err := writePage(name+"_majority_voting", piePage(name+" majority voting", []Distribution{*report.Majority})); err != nil {
			return written, err
		}
	}
	if len(report.Means) > 0 {
		page := components.NewPage()
		page.PageTitle = name + " mean scores"
		page.AddCharts(meanScoreBar(name, report.Means))
		if err := writePage(name+"_mean_scores", page); err != nil {
			return written, err
		}
	}
	return written, nil
}

// taskPageFiles names per-task pages "<name>_task_<task>". Tasks that clean
// up to the same file name get a numeric suffix.
func taskPageFiles(name string, tasks []TaskDistributions) []string {
	files := make([]string, len(tasks))
	used := make(map[string]bool, len(tasks))
	for i, task := range tasks {
		base := name + "_task_" + fileComponent(task.Task)
		file := base
		for n := 2; used[file]; n++ {
			file = fmt.Sprintf("%s_%d", base, n)
		}
		used[file] = true
		files[i] = file
	}
	return files
}

func piePage(title string, distributions []Distribution) *components.Page {
	page := components.NewPage()
	page.PageTitle = title
	for _, d := range distributions {
		page.AddCharts(pieChart(title, d))
	}
	return page
}

func pieChart(title string, d Distribution) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    d.Label,
		Subtitle: fmt.Sprintf("%s (%d rows)", title, d.Total()),
	}))
	data := make([]opts.PieData, 0, len(d.Slices))
	for _, slice := range d.Slices {
		data = append(data, opts.PieData{Name: slice.Name, Value: slice.Count})
	}
	pie.AddSeries(d.Label, data)
	return pie
}

// meanScoreBar draws one series per judge over the responders.
func meanScoreBar(name string, means []MeanScore) *charts.Bar {
	var judges, responders []string
	values := map[string]map[string]float64{}
	for _, mean := range means {
		if _, ok := values[mean.Judge]; !ok {
			judges = append(judges, mean.Judge)
			values[mean.Judge] = map[string]float64{}
		}
		if !contains(responders, mean.Responder) {
			responders = append(responders, mean.Responder)
		}
		values[mean.Judge][mean.Responder] = mean.Mean
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{
		Title:    "Mean scores",
		Subtitle: fmt.Sprintf("%s (max %d)", name, judge.MaxScore),
	}))
	bar.SetXAxis(responders)
	for _, judgeName := range judges {
		data := make([]opts.BarData, 0, len(responders))
		for _, responder := range responders {
			data = append(data, opts.BarData{Value: values[judgeName][responder]})
		}
		bar.AddSeries(judgeName, data)
	}
	return bar
}

func renderPage(path string, page *components.Page) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	renderErr := page.Render(file)
	closeErr := file.Close()
	if renderErr != nil {
		return renderErr
	}
	return closeErr
}
