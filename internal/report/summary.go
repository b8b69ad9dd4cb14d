package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSummary prints the report as markdown-style tables.
func WriteSummary(w io.Writer, report Report) error {
	if _, err := fmt.Fprintf(w, "# %s\n", report.Experiment.Name()); err != nil {
		return err
	}
	if len(report.Preferences) > 0 {
		if err := writeDistributions(w, "Preferences", report.Preferences); err != nil {
			return err
		}
	}
	if report.Majority != nil {
		if err := writeDistributions(w, "Majority vote", []Distribution{*report.Majority}); err != nil {
			return err
		}
	}
	if len(report.Means) > 0 {
		if err := writeMeans(w, report.Means); err != nil {
			return err
		}
	}
	if len(report.Bias) > 0 {
		if err := writeBias(w, report.Bias); err != nil {
			return err
		}
	}
	return nil
}

func writeDistributions(w io.Writer, heading string, distributions []Distribution) error {
	if _, err := fmt.Fprintf(w, "\n## %s\n\n", heading); err != nil {
		return err
	}
	table := createStandardTable(w, []string{"Source", "Choice", "Count"})
	for _, d := range distributions {
		total := d.Total()
		for _, slice := range d.Slices {
			if err := table.Append([]string{d.Label, slice.Name, formatShare(slice.Count, total)}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}

func writeMeans(w io.Writer, means []MeanScore) error {
	if _, err := fmt.Fprint(w, "\n## Mean scores\n\n"); err != nil {
		return err
	}
	table := createStandardTable(w, []string{"Judge", "Responder", "Mean", "Scored"})
	for _, mean := range means {
		if err := table.Append([]string{mean.Judge, mean.Responder, formatMean(mean.Mean), strconv.Itoa(mean.Scored)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeBias(w io.Writer, bias []Bias) error {
	if _, err := fmt.Fprint(w, "\n## Self bias\n\n"); err != nil {
		return err
	}
	table := createStandardTable(w, []string{"Judge", "self_bias", "equal", "self_less", "Rows"})
	for _, b := range bias {
		row := []string{b.Judge, strconv.Itoa(b.SelfBias), strconv.Itoa(b.Equal), strconv.Itoa(b.SelfLess), strconv.Itoa(b.Rows)}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func createStandardTable(w io.Writer, headers []string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{Left: tw.On, Top: tw.Off, Right: tw.On, Bottom: tw.Off},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
