// Package plot draws data sets and regressions as interactive HTML charts.
package plot

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/quartile"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/regression"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

const (
	seriesBox       = "Distribution"
	seriesMild      = "Mild outliers"
	seriesExtreme   = "Extreme outliers"
	seriesFrequency = "Frequency"
	seriesPoints    = "Observations"
	seriesFit       = "Least squares fit"

	pointSize   = 8
	outlierSize = 10
)

// ErrNoSets is returned when a chart needs at least one data set.
var ErrNoSets = errors.New("at least one data set is required")

// Plotter builds themed charts.
type Plotter struct {
	co *ChartOpts
}

// New creates a plotter for the given theme.
func New(theme Theme) *Plotter {
	return &Plotter{co: NewChartOpts(theme)}
}

// BoxPlot draws one box per set. Whiskers end at the most distant values
// inside the mild fences; outliers are drawn as separate points.
func (p *Plotter) BoxPlot(title string, sets ...*statset.Set) (*charts.BoxPlot, error) {
	if len(sets) == 0 {
		return nil, ErrNoSets
	}

	theme := p.co.Theme()
	names := make([]string, len(sets))
	boxes := make([]opts.BoxPlotData, len(sets))

	var mild, extreme []opts.ScatterData

	for i, set := range sets {
		names[i] = setName(set, i)

		info, err := set.Quartiles()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}

		boxes[i] = opts.BoxPlotData{Name: names[i], Value: whiskers(info)}
		mild = appendPoints(mild, names[i], slices.Concat(info.LowerMildOutliers, info.UpperMildOutliers))
		extreme = appendPoints(extreme, names[i], slices.Concat(info.LowerExtremeOutliers, info.UpperExtremeOutliers))
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithInitializationOpts(p.co.Init()),
		charts.WithTitleOpts(p.co.Title(title, "quartiles and outlier fences")),
		charts.WithTooltipOpts(p.co.Tooltip("item")),
		charts.WithLegendOpts(p.co.Legend()),
		charts.WithXAxisOpts(p.co.XAxis("", axisTypeCategory)),
		charts.WithYAxisOpts(p.co.YAxis("value")),
		charts.WithGridOpts(p.co.Grid()),
	)

	box.SetXAxis(names).
		AddSeries(seriesBox, boxes, charts.WithItemStyleOpts(opts.ItemStyle{
			Color:       theme.Background,
			BorderColor: theme.SeriesColor(0),
		}))

	outliers := charts.NewScatter()
	outliers.AddSeries(seriesMild, mild,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: theme.Mild}))
	outliers.AddSeries(seriesExtreme, extreme,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: theme.Extreme}))

	box.Overlap(outliers)

	return box, nil
}

// whiskers returns the box of info with whiskers clipped to the mild fences.
func whiskers(info *quartile.Info) []float64 {
	five := info.FiveNumberSummary()

	low, high := five[1], five[3]
	if len(info.Q1NonOutliers) > 0 {
		low = info.Q1NonOutliers[0]
	}

	if len(info.Q4NonOutliers) > 0 {
		high = info.Q4NonOutliers[len(info.Q4NonOutliers)-1]
	}

	return []float64{low, five[1], five[2], five[3], high}
}

func appendPoints(points []opts.ScatterData, category string, values []float64) []opts.ScatterData {
	for _, v := range values {
		points = append(points, opts.ScatterData{Value: []any{category, v}, SymbolSize: outlierSize})
	}

	return points
}

// Histogram draws the frequency of every distinct value of set, in ascending order.
func (p *Plotter) Histogram(title string, set *statset.Set) *charts.Bar {
	freq := set.FrequencyDistribution()
	values := set.UniqueValues()
	slices.Sort(values)

	labels := make([]string, len(values))
	data := make([]opts.BarData, len(values))

	for i, v := range values {
		labels[i] = strconv.FormatFloat(v, 'g', -1, 64)
		data[i] = opts.BarData{Value: freq.Get(v)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(p.co.Init()),
		charts.WithTitleOpts(p.co.Title(title, setName(set, 0))),
		charts.WithTooltipOpts(p.co.Tooltip("axis")),
		charts.WithXAxisOpts(p.co.XAxis("value", axisTypeCategory)),
		charts.WithYAxisOpts(p.co.YAxis("frequency")),
		charts.WithGridOpts(p.co.Grid()),
	)

	bar.SetXAxis(labels).
		AddSeries(seriesFrequency, data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: p.co.Theme().SeriesColor(1)}))

	return bar
}

// Regression draws the observations of l with its least squares line.
func (p *Plotter) Regression(title string, l *regression.Linear) (*charts.Scatter, error) {
	slope, err := l.Slope()
	if err != nil {
		return nil, fmt.Errorf("plot regression: %w", err)
	}

	intercept, err := l.Intercept()
	if err != nil {
		return nil, fmt.Errorf("plot regression: %w", err)
	}

	xs := l.Independent().Values()
	ys := l.Dependent().Values()

	points := make([]opts.ScatterData, len(xs))
	for i := range xs {
		points[i] = opts.ScatterData{Value: []any{xs[i], ys[i]}, SymbolSize: pointSize}
	}

	xMin, xMax := stats.Min(xs), stats.Max(xs)
	theme := p.co.Theme()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(p.co.Init()),
		charts.WithTitleOpts(p.co.Title(title, fmt.Sprintf("y = %g·x %+g", slope, intercept))),
		charts.WithTooltipOpts(p.co.Tooltip("item")),
		charts.WithLegendOpts(p.co.Legend()),
		charts.WithXAxisOpts(p.co.XAxis(setName(l.Independent(), 0), axisTypeValue)),
		charts.WithYAxisOpts(p.co.YAxis(setName(l.Dependent(), 1))),
		charts.WithGridOpts(p.co.Grid()),
	)

	scatter.AddSeries(seriesPoints, points,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: theme.SeriesColor(0)}))

	fit := charts.NewLine()
	fit.AddSeries(seriesFit, []opts.LineData{
		{Value: []any{xMin, slope*xMin + intercept}},
		{Value: []any{xMax, slope*xMax + intercept}},
	}, charts.WithLineStyleOpts(opts.LineStyle{Color: theme.Fit}))

	scatter.Overlap(fit)

	return scatter, nil
}

// Render writes the charts as one HTML page.
func Render(w io.Writer, title string, chartList ...components.Charter) error {
	page := components.NewPage()
	page.PageTitle = title
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(chartList...)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

func setName(set *statset.Set, i int) string {
	if set.Label() != "" {
		return set.Label()
	}

	return "set " + strconv.Itoa(i+1)
}
