package plot

import (
	"bytes"
	"testing"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/partition"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/regression"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

var fibonacci = []float64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}

func newSet(t *testing.T, values []float64, opts ...statset.Option) *statset.Set {
	t.Helper()

	s, err := statset.New(values, opts...)
	require.NoError(t, err)

	return s
}

func TestParseTheme(t *testing.T) {
	t.Parallel()

	theme, err := ParseTheme("dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, theme)

	_, err = ParseTheme("sepia")
	require.ErrorIs(t, err, ErrUnknownTheme)
}

func TestThemeConfig_SeriesColorCycles(t *testing.T) {
	t.Parallel()

	tc := GetThemeConfig(ThemeLight)
	assert.Equal(t, tc.SeriesColor(0), tc.SeriesColor(len(tc.Series)))
	assert.NotEqual(t, GetThemeConfig(ThemeDark).Background, tc.Background)
}

func TestWhiskers(t *testing.T) {
	t.Parallel()

	// 100 lies beyond the upper extreme fence.
	info, err := newSet(t, []float64{1, 2, 3, 4, 5, 6, 7, 100}).Quartiles()
	require.NoError(t, err)
	require.Contains(t, info.AllOutliers(), 100.0)

	w := whiskers(info)
	require.Len(t, w, 5)
	assert.InDelta(t, 1, w[0], 0)
	assert.Less(t, w[4], 100.0)
	assert.InDelta(t, info.Q2Q3.Value, w[2], 0)
}

func TestAppendPoints(t *testing.T) {
	t.Parallel()

	points := appendPoints(nil, "a", []float64{1, 2})
	require.Len(t, points, 2)
	assert.Equal(t, opts.ScatterData{Value: []any{"a", 2.0}, SymbolSize: outlierSize}, points[1])
}

func TestPlotter_BoxPlot(t *testing.T) {
	t.Parallel()

	p := New(ThemeLight)

	box, err := p.BoxPlot("Spread",
		newSet(t, fibonacci, statset.WithLabel("fib")),
		newSet(t, []float64{1, 2, 3, 4, 5, 6, 7, 100}),
	)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "statkit", box))

	html := buf.String()
	assert.Contains(t, html, "Spread")
	assert.Contains(t, html, "fib")
	assert.Contains(t, html, "set 2")
	assert.Contains(t, html, seriesBox)
	assert.Contains(t, html, seriesExtreme)
}

func TestPlotter_BoxPlotErrors(t *testing.T) {
	t.Parallel()

	p := New(ThemeDark)

	_, err := p.BoxPlot("empty")
	require.ErrorIs(t, err, ErrNoSets)

	_, err = p.BoxPlot("small", newSet(t, []float64{1, 2, 3}, statset.WithLabel("tiny")))
	require.ErrorIs(t, err, partition.ErrInsufficientValues)
	assert.Contains(t, err.Error(), "tiny")
}

func TestPlotter_Histogram(t *testing.T) {
	t.Parallel()

	bar := New(ThemeLight).Histogram("Frequencies", newSet(t, []float64{3, 1, 3, 2.5}))

	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "statkit", bar))

	html := buf.String()
	assert.Contains(t, html, "Frequencies")
	assert.Contains(t, html, seriesFrequency)
	assert.Contains(t, html, "2.5")
}

func TestPlotter_Regression(t *testing.T) {
	t.Parallel()

	x := newSet(t, []float64{1, 2, 3, 4}, statset.WithLabel("height"))
	y := newSet(t, []float64{3, 5, 7, 9}, statset.WithLabel("weight"))

	l, err := regression.NewLinear(x, y)
	require.NoError(t, err)

	scatter, err := New(ThemeLight).Regression("Fit", l)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "statkit", scatter))

	html := buf.String()
	assert.Contains(t, html, "Fit")
	assert.Contains(t, html, "height")
	assert.Contains(t, html, "weight")
	assert.Contains(t, html, seriesPoints)
	assert.Contains(t, html, seriesFit)
}

func TestPlotter_RegressionFitSpansData(t *testing.T) {
	t.Parallel()

	// slope 0.5, intercept 0.75
	x := newSet(t, []float64{3, 1, 4, 2})
	y := newSet(t, []float64{2, 1.5, 3, 1.5})

	l, err := regression.NewLinear(x, y)
	require.NoError(t, err)

	scatter, err := New(ThemeLight).Regression("Fit", l)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "statkit", scatter))
	assert.Contains(t, buf.String(), "[1,1.25]")
	assert.Contains(t, buf.String(), "[4,2.75]")
}

func TestPlotter_RegressionError(t *testing.T) {
	t.Parallel()

	x := newSet(t, []float64{2, 2, 2})
	y := newSet(t, []float64{1, 2, 3})

	l, err := regression.NewLinear(x, y)
	require.NoError(t, err)

	_, err = New(ThemeLight).Regression("flat", l)
	require.ErrorIs(t, err, stats.ErrZeroVariance)
}

func TestRender_MultipleCharts(t *testing.T) {
	t.Parallel()

	p := New(ThemeLight)
	set := newSet(t, fibonacci)

	box, err := p.BoxPlot("Box", set)
	require.NoError(t, err)

	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "Report page", box, p.Histogram("Histogram", set)))

	html := buf.String()
	assert.Contains(t, html, "<title>Report page</title>")
	assert.Contains(t, html, "Box")
	assert.Contains(t, html, "Histogram")
}
