package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/mapx"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	jsonIndent   = "  "
	yamlIndent   = 2
	notAvailable = "n/a"
)

// ErrUnknownFormat is returned for an output format other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown output format")

// Renderer writes reports in one output format.
type Renderer struct {
	format    string
	precision int

	bad  *color.Color
	good *color.Color
	warn *color.Color
}

// New creates a renderer. Precision is the number of decimals printed in text output.
func New(format string, precision int, noColor bool) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	r := &Renderer{
		format:    format,
		precision: max(precision, 0),
		bad:       color.New(color.FgRed),
		good:      color.New(color.FgGreen),
		warn:      color.New(color.FgYellow),
	}

	if noColor {
		r.bad.DisableColor()
		r.good.DisableColor()
		r.warn.DisableColor()
	}

	return r, nil
}

// Format returns the output format.
func (r *Renderer) Format() string { return r.format }

// Summaries writes the summaries side by side, one column per data set.
func (r *Renderer) Summaries(w io.Writer, summaries ...Summary) error {
	if r.format != FormatText {
		if len(summaries) == 1 {
			return r.encode(w, summaries[0])
		}

		return r.encode(w, summaries)
	}

	tbl := newTable()

	header := table.Row{"statistic"}
	for i, s := range summaries {
		header = append(header, columnName(s.Label, i))
	}

	tbl.AppendHeader(header)

	for _, row := range summaryRows {
		line := table.Row{row.name}
		for _, s := range summaries {
			line = append(line, row.cell(r, s))
		}

		tbl.AppendRow(line)
	}

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	for i, s := range summaries {
		err = r.writeErrors(w, columnName(s.Label, i), s.Errors)
		if err != nil {
			return err
		}
	}

	return nil
}

// Regression writes a regression report.
func (r *Renderer) Regression(w io.Writer, reg Regression) error {
	if r.format != FormatText {
		return r.encode(w, reg)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"result", "value"})

	tbl.AppendRows([]table.Row{
		{"independent", columnName(reg.Independent, 0)},
		{"dependent", columnName(reg.Dependent, 1)},
		{"count", humanize.Comma(int64(reg.Count))},
		{"slope", r.number(reg.Slope)},
		{"intercept", r.number(reg.Intercept)},
		{"correlation coefficient", r.number(reg.CorrelationCoefficient)},
		{"covariance", r.number(reg.Covariance)},
		{"standard error", r.number(reg.StandardError)},
		{"slope error", r.number(reg.SlopeError)},
		{"intercept error", r.number(reg.InterceptError)},
	})

	for _, p := range reg.Predictions {
		tbl.AppendRow(table.Row{fmt.Sprintf("y(%s)", r.number(p.X)), r.number(p.Y)})
	}

	tbl.AppendFooter(table.Row{"y =", fmt.Sprintf("%s·x %+.*f", r.number(reg.Slope), r.precision, reg.Intercept)})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write regression: %w", err)
	}

	return nil
}

// Comparison writes a comparison of two data sets.
func (r *Renderer) Comparison(w io.Writer, c Comparison) error {
	if r.format != FormatText {
		return r.encode(w, c)
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"statistic", columnName(c.A, 0), columnName(c.B, 1), "difference %", "equal"})

	differing := 0

	for _, row := range c.Rows {
		equal := r.good.Sprint("yes")
		if !row.Equal {
			equal = r.warn.Sprint("no")
			differing++
		}

		tbl.AppendRow(table.Row{
			row.Statistic,
			r.number(row.A),
			r.number(row.B),
			r.number(row.DifferencePercent),
			equal,
		})
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("tolerance %s%%", r.number(c.TolerancePercent)),
		"", "",
		fmt.Sprintf("%d differ", differing),
		"",
	})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write comparison: %w", err)
	}

	return nil
}

func (r *Renderer) encode(w io.Writer, v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", jsonIndent)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}

	return nil
}

func (r *Renderer) writeErrors(w io.Writer, name string, errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}

	for _, slot := range mapx.SortedKeys(errs) {
		_, err := r.bad.Fprintf(w, "%s: %s\n", name, errs[slot])
		if err != nil {
			return fmt.Errorf("write errors: %w", err)
		}
	}

	return nil
}

// number rounds v to precision decimals and formats it with thousands separators.
func (r *Renderer) number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', r.precision, 64), 64)
	if err != nil {
		rounded = v
	}

	return humanize.Commaf(rounded)
}

func (r *Renderer) optional(v *float64) string {
	if v == nil {
		return r.bad.Sprint(notAvailable)
	}

	return r.number(*v)
}

func (r *Renderer) numbers(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = r.number(v)
	}

	return strings.Join(parts, ", ")
}

type summaryRow struct {
	name string
	cell func(r *Renderer, s Summary) string
}

func optionalRow(name string, get func(Summary) *float64) summaryRow {
	return summaryRow{name: name, cell: func(r *Renderer, s Summary) string { return r.optional(get(s)) }}
}

func quartileRow(name string, get func(*Renderer, *QuartileSummary) string) summaryRow {
	return summaryRow{name: name, cell: func(r *Renderer, s Summary) string {
		if s.Quartiles == nil {
			return r.bad.Sprint(notAvailable)
		}

		return get(r, s.Quartiles)
	}}
}

func outlierCell(r *Renderer, outliers []float64) string {
	if len(outliers) == 0 {
		return "-"
	}

	return r.warn.Sprint(r.numbers(outliers))
}

var summaryRows = []summaryRow{
	{"count", func(_ *Renderer, s Summary) string { return humanize.Comma(int64(s.Count)) }},
	{"kind", func(_ *Renderer, s Summary) string {
		if s.Sample {
			return "sample"
		}

		return "population"
	}},
	{"unique values", func(_ *Renderer, s Summary) string { return humanize.Comma(int64(s.Unique)) }},
	{"sum", func(r *Renderer, s Summary) string { return r.number(s.Sum) }},
	optionalRow("arithmetic mean", func(s Summary) *float64 { return s.Mean }),
	optionalRow("geometric mean", func(s Summary) *float64 { return s.GeometricMean }),
	optionalRow("harmonic mean", func(s Summary) *float64 { return s.HarmonicMean }),
	optionalRow("quadratic mean", func(s Summary) *float64 { return s.QuadraticMean }),
	optionalRow("cubic mean", func(s Summary) *float64 { return s.CubicMean }),
	{"modes", func(r *Renderer, s Summary) string {
		if s.Modes == nil {
			return r.bad.Sprint(notAvailable)
		}

		return fmt.Sprintf("%s (×%d)", r.numbers(s.Modes), s.ModeFrequency)
	}},
	optionalRow("minimum", func(s Summary) *float64 { return s.Minimum }),
	optionalRow("maximum", func(s Summary) *float64 { return s.Maximum }),
	optionalRow("range", func(s Summary) *float64 { return s.Range }),
	optionalRow("median", func(s Summary) *float64 { return s.Median }),
	optionalRow("low median", func(s Summary) *float64 { return s.LowMedian }),
	optionalRow("high median", func(s Summary) *float64 { return s.HighMedian }),
	optionalRow("variance", func(s Summary) *float64 { return s.Variance }),
	optionalRow("standard deviation", func(s Summary) *float64 { return s.StandardDeviation }),
	optionalRow("skew", func(s Summary) *float64 { return s.Skew }),
	optionalRow("kurtosis excess", func(s Summary) *float64 { return s.KurtosisExcess }),
	quartileRow("five-number summary", func(r *Renderer, q *QuartileSummary) string { return r.numbers(q.FiveNumber[:]) }),
	quartileRow("iqr", func(r *Renderer, q *QuartileSummary) string { return r.number(q.IQR) }),
	quartileRow("mild fences", func(r *Renderer, q *QuartileSummary) string {
		return r.numbers([]float64{q.LowerMildFence, q.UpperMildFence})
	}),
	quartileRow("extreme fences", func(r *Renderer, q *QuartileSummary) string {
		return r.numbers([]float64{q.LowerExtremeFence, q.UpperExtremeFence})
	}),
	quartileRow("mild outliers", func(r *Renderer, q *QuartileSummary) string { return outlierCell(r, q.MildOutliers) }),
	quartileRow("extreme outliers", func(r *Renderer, q *QuartileSummary) string { return outlierCell(r, q.ExtremeOutliers) }),
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.DrawBorder = false
	// Labels name data sets and must not be upper-cased.
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

func columnName(label string, i int) string {
	if label != "" {
		return label
	}

	return "set " + strconv.Itoa(i+1)
}
