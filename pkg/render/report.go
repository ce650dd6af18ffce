// Package render turns statistic sets and regressions into reports and
// writes them as text tables, JSON or YAML.
package render

import (
	"math"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/regression"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
	"github.com/Sumatoshi-tech/statkit/pkg/statset"
)

// Summary is the descriptive-statistics report of one data set.
// A statistic that cannot be computed is omitted and its error is kept in Errors.
type Summary struct {
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Count  int    `json:"count"           yaml:"count"`
	Sample bool   `json:"sample"          yaml:"sample"`
	Unique int    `json:"unique_values"   yaml:"unique_values"`

	Sum           float64  `json:"sum"                      yaml:"sum"`
	Mean          *float64 `json:"arithmetic_mean,omitempty" yaml:"arithmetic_mean,omitempty"`
	GeometricMean *float64 `json:"geometric_mean,omitempty"  yaml:"geometric_mean,omitempty"`
	HarmonicMean  *float64 `json:"harmonic_mean,omitempty"   yaml:"harmonic_mean,omitempty"`
	QuadraticMean *float64 `json:"quadratic_mean,omitempty"  yaml:"quadratic_mean,omitempty"`
	CubicMean     *float64 `json:"cubic_mean,omitempty"      yaml:"cubic_mean,omitempty"`

	Modes         []float64 `json:"modes,omitempty"          yaml:"modes,omitempty"`
	ModeFrequency int       `json:"mode_frequency,omitempty" yaml:"mode_frequency,omitempty"`

	Minimum    *float64 `json:"minimum,omitempty"     yaml:"minimum,omitempty"`
	Maximum    *float64 `json:"maximum,omitempty"     yaml:"maximum,omitempty"`
	Range      *float64 `json:"range,omitempty"       yaml:"range,omitempty"`
	Median     *float64 `json:"median,omitempty"      yaml:"median,omitempty"`
	LowMedian  *float64 `json:"low_median,omitempty"  yaml:"low_median,omitempty"`
	HighMedian *float64 `json:"high_median,omitempty" yaml:"high_median,omitempty"`

	Variance          *float64 `json:"variance,omitempty"           yaml:"variance,omitempty"`
	StandardDeviation *float64 `json:"standard_deviation,omitempty" yaml:"standard_deviation,omitempty"`
	Skew              *float64 `json:"skew,omitempty"               yaml:"skew,omitempty"`
	KurtosisExcess    *float64 `json:"kurtosis_excess,omitempty"    yaml:"kurtosis_excess,omitempty"`

	Quartiles *QuartileSummary `json:"quartiles,omitempty" yaml:"quartiles,omitempty"`

	Errors map[string]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// QuartileSummary is the box-plot view of a data set.
type QuartileSummary struct {
	FiveNumber        [5]float64 `json:"five_number_summary" yaml:"five_number_summary"`
	IQR               float64    `json:"iqr"                 yaml:"iqr"`
	LowerExtremeFence float64    `json:"lower_extreme_fence" yaml:"lower_extreme_fence"`
	LowerMildFence    float64    `json:"lower_mild_fence"    yaml:"lower_mild_fence"`
	UpperMildFence    float64    `json:"upper_mild_fence"    yaml:"upper_mild_fence"`
	UpperExtremeFence float64    `json:"upper_extreme_fence" yaml:"upper_extreme_fence"`
	MildOutliers      []float64  `json:"mild_outliers"       yaml:"mild_outliers"`
	ExtremeOutliers   []float64  `json:"extreme_outliers"    yaml:"extreme_outliers"`
}

// NewSummary computes every statistic of set.
func NewSummary(set *statset.Set) Summary {
	s := Summary{
		Label:  set.Label(),
		Count:  set.Len(),
		Sample: set.IsSample(),
		Unique: set.UniqueValueCount(),
		Sum:    set.Sum(),
		Errors: map[string]string{},
	}

	s.Mean = s.keep(statset.SlotArithmeticMean, set.ArithmeticMean)
	s.GeometricMean = s.keep(statset.SlotGeometricMean, realPart(set.GeometricMean))
	s.HarmonicMean = s.keep(statset.SlotHarmonicMean, realPart(set.HarmonicMean))
	s.QuadraticMean = s.keep(statset.SlotQuadraticMean, set.QuadraticMean)
	s.CubicMean = s.keep(statset.SlotCubicMean, set.CubicMean)

	modes, err := set.Modes()
	if err != nil {
		s.Errors[statset.SlotModes] = err.Error()
	} else {
		s.Modes = modes
		s.ModeFrequency, _ = set.ModeFrequency()
	}

	s.Minimum = s.keep(statset.SlotMinimum, set.Minimum)
	s.Maximum = s.keep(statset.SlotMaximum, set.Maximum)
	s.Range = s.keep(statset.SlotRange, set.Range)
	s.Median = s.keep(statset.SlotMedian, set.Median)
	s.LowMedian = s.keep(statset.SlotLowMedian, set.LowMedian)
	s.HighMedian = s.keep(statset.SlotHighMedian, set.HighMedian)

	s.Variance = s.keep(statset.SlotVariance, set.Variance)
	s.StandardDeviation = s.keep(statset.SlotStandardDeviation, set.StandardDeviation)
	s.Skew = s.keep(statset.SlotSkew, set.Skew)
	s.KurtosisExcess = s.keep(statset.SlotKurtosisExcess, set.KurtosisExcess)

	info, err := set.Quartiles()
	if err != nil {
		s.Errors[statset.SlotQuartiles] = err.Error()
	} else {
		s.Quartiles = &QuartileSummary{
			FiveNumber:        info.FiveNumberSummary(),
			IQR:               info.IQR,
			LowerExtremeFence: info.LowerExtremeFence,
			LowerMildFence:    info.LowerMildFence,
			UpperMildFence:    info.UpperMildFence,
			UpperExtremeFence: info.UpperExtremeFence,
			MildOutliers:      append(append([]float64{}, info.LowerMildOutliers...), info.UpperMildOutliers...),
			ExtremeOutliers:   append(append([]float64{}, info.LowerExtremeOutliers...), info.UpperExtremeOutliers...),
		}
	}

	if len(s.Errors) == 0 {
		s.Errors = nil
	}

	return s
}

func (s *Summary) keep(slot string, get func() (float64, error)) *float64 {
	v, err := get()
	if err != nil {
		s.Errors[slot] = err.Error()

		return nil
	}

	return &v
}

func realPart(get func() (stats.Root, error)) func() (float64, error) {
	return func() (float64, error) {
		root, err := get()
		if err != nil {
			return 0, err
		}

		return root.RealValue()
	}
}

// Regression is the report of a simple linear regression.
type Regression struct {
	Independent string `json:"independent,omitempty" yaml:"independent,omitempty"`
	Dependent   string `json:"dependent,omitempty"   yaml:"dependent,omitempty"`
	Count       int    `json:"count"                 yaml:"count"`

	Slope                  float64 `json:"slope"                   yaml:"slope"`
	Intercept              float64 `json:"intercept"               yaml:"intercept"`
	CorrelationCoefficient float64 `json:"correlation_coefficient" yaml:"correlation_coefficient"`
	Covariance             float64 `json:"covariance"              yaml:"covariance"`
	StandardError          float64 `json:"standard_error"          yaml:"standard_error"`
	SlopeError             float64 `json:"slope_error"             yaml:"slope_error"`
	InterceptError         float64 `json:"intercept_error"         yaml:"intercept_error"`

	Predictions []Prediction `json:"predictions,omitempty" yaml:"predictions,omitempty"`
}

// Prediction is the fitted dependent value at X.
type Prediction struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewRegression computes every result of l and predicts the dependent value at each of xs.
func NewRegression(l *regression.Linear, xs ...float64) (Regression, error) {
	err := l.Compute()
	if err != nil {
		return Regression{}, err
	}

	r := Regression{
		Independent: l.Independent().Label(),
		Dependent:   l.Dependent().Label(),
		Count:       l.Independent().Len(),
	}

	// Compute succeeded, so every result is cached.
	r.Slope, _ = l.Slope()
	r.Intercept, _ = l.Intercept()
	r.CorrelationCoefficient, _ = l.CorrelationCoefficient()
	r.Covariance, _ = l.Covariance()
	r.StandardError, _ = l.StandardError()
	r.SlopeError, _ = l.SlopeError()
	r.InterceptError, _ = l.InterceptError()

	for _, x := range xs {
		y, err := l.Predict(x)
		if err != nil {
			return Regression{}, err
		}

		r.Predictions = append(r.Predictions, Prediction{X: x, Y: y})
	}

	return r, nil
}

// Comparison is the statistic-by-statistic comparison of two data sets.
type Comparison struct {
	A                string          `json:"a"                 yaml:"a"`
	B                string          `json:"b"                 yaml:"b"`
	TolerancePercent float64         `json:"tolerance_percent" yaml:"tolerance_percent"`
	Rows             []ComparisonRow `json:"statistics"        yaml:"statistics"`
}

// ComparisonRow compares one statistic. DifferencePercent is the signed
// relative difference of B from A.
type ComparisonRow struct {
	Statistic         string  `json:"statistic"          yaml:"statistic"`
	A                 float64 `json:"a"                  yaml:"a"`
	B                 float64 `json:"b"                  yaml:"b"`
	DifferencePercent float64 `json:"difference_percent" yaml:"difference_percent"`
	Equal             bool    `json:"equal"              yaml:"equal"`
}

const percent = 100

type statisticPair struct {
	name string
	a, b *float64
}

// NewComparison compares the statistics both summaries could compute.
func NewComparison(a, b Summary, tolerancePercent float64) (Comparison, error) {
	c := Comparison{A: a.Label, B: b.Label, TolerancePercent: tolerancePercent}

	sumA, sumB := a.Sum, b.Sum

	pairs := []statisticPair{
		{statset.SlotSum, &sumA, &sumB},
		{statset.SlotArithmeticMean, a.Mean, b.Mean},
		{statset.SlotMedian, a.Median, b.Median},
		{statset.SlotMinimum, a.Minimum, b.Minimum},
		{statset.SlotMaximum, a.Maximum, b.Maximum},
		{statset.SlotRange, a.Range, b.Range},
		{statset.SlotVariance, a.Variance, b.Variance},
		{statset.SlotStandardDeviation, a.StandardDeviation, b.StandardDeviation},
		{statset.SlotSkew, a.Skew, b.Skew},
		{statset.SlotKurtosisExcess, a.KurtosisExcess, b.KurtosisExcess},
	}

	for _, p := range pairs {
		if p.a == nil || p.b == nil {
			continue
		}

		diff := stats.RelativeDifference(*p.a, *p.b, stats.Signed(), stats.Scale(percent))

		equal, err := stats.LessEqual(math.Abs(diff), tolerancePercent, 0)
		if err != nil {
			return Comparison{}, err
		}

		c.Rows = append(c.Rows, ComparisonRow{
			Statistic:         p.name,
			A:                 *p.a,
			B:                 *p.b,
			DifferencePercent: diff,
			Equal:             equal,
		})
	}

	return c, nil
}
