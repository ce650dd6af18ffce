package stats

import (
	"slices"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/counter"
)

// Modes returns every value sharing the highest frequency, in first-occurrence order.
func Modes[K comparable](values ...K) ([]K, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}

	return ModesOf[K](counter.New(values...))
}

// ModesOf returns the keys of c sharing the highest frequency, in key order.
func ModesOf[K comparable](c counter.Reader[K]) ([]K, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrNoValues
	}

	top, err := c.MostCommonFrequencies(1)
	if err != nil {
		return nil, err
	}

	return c.ValuesWithFrequencies(func(f int) bool { return f == top[0] }), nil
}

// MedianPositions returns the index of the middle element for odd n,
// or the two central indexes for even n.
func MedianPositions(n int) ([]int, error) {
	if n < 1 {
		return nil, ErrNoValues
	}

	mid := n / 2
	if n%2 == 1 {
		return []int{mid}, nil
	}

	return []int{mid - 1, mid}, nil
}

// Medians returns the one or two central values. Unless sorted is true
// a sorted copy of values is used.
func Medians(values []float64, sorted bool) ([]float64, error) {
	positions, err := MedianPositions(len(values))
	if err != nil {
		return nil, err
	}

	if !sorted {
		values = slices.Clone(values)
		slices.Sort(values)
	}

	out := make([]float64, 0, len(positions))

	for _, p := range positions {
		out = append(out, values[p])
	}

	return out, nil
}

// Median returns the central value, or the mean of the two central values
// for even-length input.
func Median(values []float64, sorted bool) (float64, error) {
	medians, err := Medians(values, sorted)
	if err != nil {
		return 0, err
	}

	return Sum(medians) / float64(len(medians)), nil
}
