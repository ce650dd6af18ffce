// Package partition plans how a sorted sequence is cut into contiguous groups.
package partition

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Validation errors.
var (
	ErrInsufficientValues     = errors.New("insufficient number of values")
	ErrInsufficientPartitions = errors.New("insufficient number of partitions")
	ErrUnknownMedianBehavior  = errors.New("unknown median behavior")
)

// MedianBehavior controls which half receives the middle element when an
// odd-length sequence is split.
type MedianBehavior uint8

// Median behaviors. IncludeBoth is IncludeLow|IncludeHigh.
const (
	ExcludeBoth MedianBehavior = 0
	IncludeLow  MedianBehavior = 1
	IncludeHigh MedianBehavior = 2
	IncludeBoth                = IncludeLow | IncludeHigh
)

// Includes reports whether every bit of flag is set in b.
func (b MedianBehavior) Includes(flag MedianBehavior) bool {
	return b&flag == flag && flag != ExcludeBoth
}

// String returns the behavior name.
func (b MedianBehavior) String() string {
	switch b {
	case ExcludeBoth:
		return "exclude-both"
	case IncludeLow:
		return "include-low"
	case IncludeHigh:
		return "include-high"
	case IncludeBoth:
		return "include-both"
	default:
		return fmt.Sprintf("median-behavior(%d)", uint8(b))
	}
}

// ParseMedianBehavior parses a behavior name as produced by String.
// Underscores are accepted in place of dashes.
func ParseMedianBehavior(s string) (MedianBehavior, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")

	for _, b := range []MedianBehavior{ExcludeBoth, IncludeLow, IncludeHigh, IncludeBoth} {
		if b.String() == name {
			return b, nil
		}
	}

	return ExcludeBoth, fmt.Errorf("%w: %q", ErrUnknownMedianBehavior, s)
}

// PlanValue describes the contiguous slice [Start, Start+Length).
type PlanValue struct {
	Start  int
	Length int
}

// End returns the exclusive end index.
func (p PlanValue) End() int {
	return p.Start + p.Length
}

// SplitPlan cuts count items into a lower and an upper half.
// Even counts split at the midpoint; for odd counts behavior decides
// whether the middle element joins each half.
func SplitPlan(count int, behavior MedianBehavior) (lower, upper PlanValue, err error) {
	if count < 2 {
		return PlanValue{}, PlanValue{}, fmt.Errorf("%w to split: %d", ErrInsufficientValues, count)
	}

	split := count / 2

	if count%2 == 0 {
		return PlanValue{0, split}, PlanValue{split, count - split}, nil
	}

	low := split
	if !behavior.Includes(IncludeLow) {
		low--
	}

	up := split
	if !behavior.Includes(IncludeHigh) {
		up++
	}

	return PlanValue{0, low + 1}, PlanValue{up, count - up}, nil
}

// Fencing rounds a fractional partition boundary to an index.
type Fencing func(float64) float64

type planConfig struct {
	fencing Fencing
}

// Option configures PartitionPlan.
type Option func(*planConfig)

// WithFencing replaces the default round-to-nearest boundary rounding.
func WithFencing(fn Fencing) Option {
	return func(c *planConfig) {
		if fn != nil {
			c.fencing = fn
		}
	}
}

// PartitionPlan divides count items into n contiguous, gap-free groups of
// near-equal size. Group i ends at fencing(i·count/n).
func PartitionPlan(n, count int, opts ...Option) ([]PlanValue, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInsufficientPartitions, n)
	}

	if count < n {
		return nil, fmt.Errorf("%w: %d into %d partitions", ErrInsufficientValues, count, n)
	}

	if n == 1 {
		return []PlanValue{{0, count}}, nil
	}

	cfg := planConfig{fencing: math.Round}

	for _, opt := range opts {
		opt(&cfg)
	}

	ideal := float64(count) / float64(n)
	plan := make([]PlanValue, 0, n)
	start := 0

	for i := 1; i <= n; i++ {
		end := int(cfg.fencing(float64(i)*ideal)) - 1
		plan = append(plan, PlanValue{start, end - start + 1})
		start = end + 1
	}

	return plan, nil
}

// Take returns the sub-slice of values described by plan.
func Take[T any](values []T, plan PlanValue) []T {
	return values[plan.Start:plan.End()]
}

// Split sorts a copy of values and cuts it per SplitPlan.
func Split[T cmp.Ordered](values []T, behavior MedianBehavior) (lower, upper []T, err error) {
	lp, up, err := SplitPlan(len(values), behavior)
	if err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Take(sorted, lp), Take(sorted, up), nil
}

// Partition sorts a copy of values and cuts it per PartitionPlan.
func Partition[T cmp.Ordered](n int, values []T, opts ...Option) ([][]T, error) {
	plan, err := PartitionPlan(n, len(values), opts...)
	if err != nil {
		return nil, err
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	out := make([][]T, 0, len(plan))

	for _, p := range plan {
		out = append(out, Take(sorted, p))
	}

	return out, nil
}
