// Package quartile computes quartiles, interquartile fences and outliers of a data set.
package quartile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/partition"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
)

// ErrNegativeMultiplier is returned for a negative outlier fence multiplier.
var ErrNegativeMultiplier = errors.New("fence multiplier must be non-negative")

// Default outlier fence multipliers, in interquartile ranges.
const (
	DefaultMildMultiplier    = 1.5
	DefaultExtremeMultiplier = 3.0
)

// Fence is a median-like boundary between two partitions of the sorted data.
// Position indexes the sorted data when InDataSet is true and is -1 otherwise.
type Fence struct {
	Value     float64 `json:"value"       yaml:"value"`
	Position  int     `json:"position"    yaml:"position"`
	InDataSet bool    `json:"in_data_set" yaml:"in_data_set"`
}

// Multipliers scale the interquartile range into the four outlier fences.
type Multipliers struct {
	LowerMild    float64 `json:"lower_mild"    yaml:"lower_mild"`
	UpperMild    float64 `json:"upper_mild"    yaml:"upper_mild"`
	LowerExtreme float64 `json:"lower_extreme" yaml:"lower_extreme"`
	UpperExtreme float64 `json:"upper_extreme" yaml:"upper_extreme"`
}

// Validate rejects negative multipliers.
func (m Multipliers) Validate() error {
	sides := []struct {
		name  string
		value float64
	}{
		{"lower mild", m.LowerMild},
		{"upper mild", m.UpperMild},
		{"lower extreme", m.LowerExtreme},
		{"upper extreme", m.UpperExtreme},
	}

	for _, side := range sides {
		if side.value < 0 {
			return fmt.Errorf("%w: %s %v", ErrNegativeMultiplier, side.name, side.value)
		}
	}

	return nil
}

type config struct {
	behavior partition.MedianBehavior
	mild     float64
	extreme  float64

	lowerMild    *float64
	upperMild    *float64
	lowerExtreme *float64
	upperExtreme *float64
}

func (c config) multipliers() Multipliers {
	pick := func(override *float64, fallback float64) float64 {
		if override != nil {
			return *override
		}

		return fallback
	}

	return Multipliers{
		LowerMild:    pick(c.lowerMild, c.mild),
		UpperMild:    pick(c.upperMild, c.mild),
		LowerExtreme: pick(c.lowerExtreme, c.extreme),
		UpperExtreme: pick(c.upperExtreme, c.extreme),
	}
}

// Option configures Compute.
type Option func(*config)

// WithMedianBehavior sets how odd-length partitions share their middle element.
func WithMedianBehavior(b partition.MedianBehavior) Option {
	return func(c *config) { c.behavior = b }
}

// WithMildMultiplier sets the mild multiplier for both sides.
func WithMildMultiplier(m float64) Option {
	return func(c *config) { c.mild = m }
}

// WithExtremeMultiplier sets the extreme multiplier for both sides.
func WithExtremeMultiplier(m float64) Option {
	return func(c *config) { c.extreme = m }
}

// WithLowerMildMultiplier overrides the lower mild multiplier.
func WithLowerMildMultiplier(m float64) Option {
	return func(c *config) { c.lowerMild = &m }
}

// WithUpperMildMultiplier overrides the upper mild multiplier.
func WithUpperMildMultiplier(m float64) Option {
	return func(c *config) { c.upperMild = &m }
}

// WithLowerExtremeMultiplier overrides the lower extreme multiplier.
func WithLowerExtremeMultiplier(m float64) Option {
	return func(c *config) { c.lowerExtreme = &m }
}

// WithUpperExtremeMultiplier overrides the upper extreme multiplier.
func WithUpperExtremeMultiplier(m float64) Option {
	return func(c *config) { c.upperExtreme = &m }
}

// WithMultipliers sets all four multipliers at once.
func WithMultipliers(m Multipliers) Option {
	return func(c *config) {
		c.lowerMild = &m.LowerMild
		c.upperMild = &m.UpperMild
		c.lowerExtreme = &m.LowerExtreme
		c.upperExtreme = &m.UpperExtreme
	}
}

// Info holds the quartile decomposition of a data set.
type Info struct {
	Sorted []float64 `json:"-" yaml:"-"`

	Q1 []float64 `json:"q1" yaml:"q1"`
	Q2 []float64 `json:"q2" yaml:"q2"`
	Q3 []float64 `json:"q3" yaml:"q3"`
	Q4 []float64 `json:"q4" yaml:"q4"`

	Q1Q2 Fence `json:"q1_q2_fence" yaml:"q1_q2_fence"`
	Q2Q3 Fence `json:"q2_q3_fence" yaml:"q2_q3_fence"`
	Q3Q4 Fence `json:"q3_q4_fence" yaml:"q3_q4_fence"`

	IQR         float64     `json:"iqr"         yaml:"iqr"`
	Multipliers Multipliers `json:"multipliers" yaml:"multipliers"`

	LowerExtremeFence float64 `json:"lower_extreme_fence" yaml:"lower_extreme_fence"`
	LowerMildFence    float64 `json:"lower_mild_fence"    yaml:"lower_mild_fence"`
	UpperMildFence    float64 `json:"upper_mild_fence"    yaml:"upper_mild_fence"`
	UpperExtremeFence float64 `json:"upper_extreme_fence" yaml:"upper_extreme_fence"`

	LowerExtremeOutliers []float64 `json:"lower_extreme_outliers" yaml:"lower_extreme_outliers"`
	LowerMildOutliers    []float64 `json:"lower_mild_outliers"    yaml:"lower_mild_outliers"`
	UpperMildOutliers    []float64 `json:"upper_mild_outliers"    yaml:"upper_mild_outliers"`
	UpperExtremeOutliers []float64 `json:"upper_extreme_outliers" yaml:"upper_extreme_outliers"`

	Q1NonOutliers []float64 `json:"q1_non_outliers" yaml:"q1_non_outliers"`
	Q4NonOutliers []float64 `json:"q4_non_outliers" yaml:"q4_non_outliers"`
}

// Compute sorts a copy of values and derives its quartile information.
// With the default median behavior at least four values are required.
func Compute(values []float64, opts ...Option) (*Info, error) {
	cfg := config{
		behavior: partition.ExcludeBoth,
		mild:     DefaultMildMultiplier,
		extreme:  DefaultExtremeMultiplier,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	mult := cfg.multipliers()

	err := mult.Validate()
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	lowerPlan, upperPlan, err := partition.SplitPlan(len(sorted), cfg.behavior)
	if err != nil {
		return nil, fmt.Errorf("quartiles: %w", err)
	}

	info := &Info{Sorted: sorted, Multipliers: mult}

	info.Q2Q3, err = medianFence(sorted, 0)
	if err != nil {
		return nil, err
	}

	lowerHalf := partition.Take(sorted, lowerPlan)
	upperHalf := partition.Take(sorted, upperPlan)

	info.Q1, info.Q2, info.Q1Q2, err = splitHalf(lowerHalf, lowerPlan.Start, cfg.behavior)
	if err != nil {
		return nil, err
	}

	info.Q3, info.Q4, info.Q3Q4, err = splitHalf(upperHalf, upperPlan.Start, cfg.behavior)
	if err != nil {
		return nil, err
	}

	info.classify()

	return info, nil
}

func splitHalf(half []float64, offset int, behavior partition.MedianBehavior) (lower, upper []float64, fence Fence, err error) {
	fence, err = medianFence(half, offset)
	if err != nil {
		return nil, nil, Fence{}, err
	}

	lp, up, err := partition.SplitPlan(len(half), behavior)
	if err != nil {
		return nil, nil, Fence{}, fmt.Errorf("quartiles: %w", err)
	}

	return partition.Take(half, lp), partition.Take(half, up), fence, nil
}

// medianFence locates the median of sorted; offset makes the position absolute.
func medianFence(sorted []float64, offset int) (Fence, error) {
	positions, err := stats.MedianPositions(len(sorted))
	if err != nil {
		return Fence{}, fmt.Errorf("quartiles: %w", err)
	}

	if len(positions) == 1 {
		p := positions[0]

		return Fence{Value: sorted[p], Position: offset + p, InDataSet: true}, nil
	}

	lo, hi := sorted[positions[0]], sorted[positions[1]]

	return Fence{Value: (lo + hi) / 2, Position: -1}, nil
}

func (info *Info) classify() {
	info.IQR = info.Q3Q4.Value - info.Q1Q2.Value

	m := info.Multipliers
	info.LowerExtremeFence = info.Q1Q2.Value - info.IQR*m.LowerExtreme
	info.LowerMildFence = info.Q1Q2.Value - info.IQR*m.LowerMild
	info.UpperMildFence = info.Q3Q4.Value + info.IQR*m.UpperMild
	info.UpperExtremeFence = info.Q3Q4.Value + info.IQR*m.UpperExtreme

	info.LowerExtremeOutliers = filter(info.Q1, func(x float64) bool { return x <= info.LowerExtremeFence })
	info.LowerMildOutliers = filter(info.Q1, func(x float64) bool {
		return x <= info.LowerMildFence && x > info.LowerExtremeFence
	})
	info.UpperMildOutliers = filter(info.Q4, func(x float64) bool {
		return x >= info.UpperMildFence && x < info.UpperExtremeFence
	})
	info.UpperExtremeOutliers = filter(info.Q4, func(x float64) bool { return x >= info.UpperExtremeFence })
	info.Q1NonOutliers = filter(info.Q1, func(x float64) bool { return x > info.LowerMildFence })
	info.Q4NonOutliers = filter(info.Q4, func(x float64) bool { return x < info.UpperMildFence })
}

// LowerOutliers returns the extreme then the mild lower outliers.
func (info *Info) LowerOutliers() []float64 {
	return slices.Concat(info.LowerExtremeOutliers, info.LowerMildOutliers)
}

// UpperOutliers returns the mild then the extreme upper outliers.
func (info *Info) UpperOutliers() []float64 {
	return slices.Concat(info.UpperMildOutliers, info.UpperExtremeOutliers)
}

// AllOutliers returns every outlier in ascending order.
func (info *Info) AllOutliers() []float64 {
	return slices.Concat(info.LowerOutliers(), info.UpperOutliers())
}

// FiveNumberSummary returns minimum, lower fence, median, upper fence and maximum.
func (info *Info) FiveNumberSummary() [5]float64 {
	return [5]float64{
		info.Q1[0],
		info.Q1Q2.Value,
		info.Q2Q3.Value,
		info.Q3Q4.Value,
		info.Q4[len(info.Q4)-1],
	}
}

// Clone returns a deep copy of info. Fences and multipliers are values;
// every slice is copied.
func (info *Info) Clone() *Info {
	out := *info

	for _, slice := range []*[]float64{
		&out.Sorted, &out.Q1, &out.Q2, &out.Q3, &out.Q4,
		&out.LowerExtremeOutliers, &out.LowerMildOutliers,
		&out.UpperMildOutliers, &out.UpperExtremeOutliers,
		&out.Q1NonOutliers, &out.Q4NonOutliers,
	} {
		*slice = slices.Clone(*slice)
	}

	return &out
}

func filter(values []float64, keep func(float64) bool) []float64 {
	out := make([]float64, 0)

	for _, v := range values {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}
