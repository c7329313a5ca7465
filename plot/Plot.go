package plot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/tabular/experiment/trackers"
)

// SmoothingWindow is the window of the rolling mean of the smoothed
// return chart
const SmoothingWindow = 20

// metric is a column of Records plotted in its own chart
type metric struct {
	title string
	value func(trackers.Record) float64
}

var metrics = []metric{
	{"Cumulative Reward", func(r trackers.Record) float64 { return r.Return }},
	{"Epsilon", func(r trackers.Record) float64 { return r.Epsilon }},
	{"Average Q-Value", func(r trackers.Record) float64 { return r.MeanValue }},
	{"Steps", func(r trackers.Record) float64 { return float64(r.Steps) }},
}

// Render renders an HTML page comparing the argument runs to w. The
// page holds a chart of the smoothed return of each run followed by
// one chart per recorded metric.
func Render(w io.Writer, runs ...Run) error {
	if len(runs) == 0 {
		return fmt.Errorf("render: no runs to plot")
	}

	page := components.NewPage()
	page.PageTitle = "Training Results"

	smoothed := newLine("Performance Comparison",
		fmt.Sprintf("rolling mean over %v records", SmoothingWindow), runs)
	for _, run := range runs {
		smoothed.AddSeries(run.Name,
			lineData(RollingMean(run.Returns(), SmoothingWindow)))
	}
	page.AddCharts(smoothed)

	for _, m := range metrics {
		line := newLine(m.title, "", runs)
		for _, run := range runs {
			line.AddSeries(run.Name, lineData(run.column(m.value)))
		}
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// newLine returns a line chart whose x-axis holds the episodes of the
// longest run
func newLine(title, subtitle string, runs []Run) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
	)

	longest := runs[0]
	for _, run := range runs[1:] {
		if len(run.Records) > len(longest.Records) {
			longest = run
		}
	}

	episodes := make([]string, len(longest.Records))
	for i, episode := range longest.Episodes() {
		episodes[i] = strconv.Itoa(episode)
	}
	line.SetXAxis(episodes)
	return line
}

func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, v := range values {
		items[i] = opts.LineData{Value: v}
	}
	return items
}
