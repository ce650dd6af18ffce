package statset

import (
	"slices"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/counter"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/quartile"
	"github.com/Sumatoshi-tech/statkit/pkg/alg/stats"
)

// Sorted returns the values in ascending order.
func (s *Set) Sorted() []float64 {
	sorted := infallible(s, SlotSorted, &s.sorted, func() []float64 {
		out := slices.Clone(s.values)
		slices.Sort(out)

		return out
	})

	return slices.Clone(sorted)
}

// FrequencyDistribution returns how often each value occurs. Keys keep
// first-occurrence order.
func (s *Set) FrequencyDistribution() *counter.Frozen[float64] {
	return infallible(s, SlotFrequency, &s.frequency, func() *counter.Frozen[float64] {
		return counter.Freeze(s.values...)
	})
}

// UniqueValues returns the distinct values in first-occurrence order.
func (s *Set) UniqueValues() []float64 {
	unique := infallible(s, SlotUniqueValues, &s.unique, func() []float64 {
		return s.FrequencyDistribution().Keys()
	})

	return slices.Clone(unique)
}

// UniqueValueCount returns the number of distinct values.
func (s *Set) UniqueValueCount() int {
	return len(s.UniqueValues())
}

// Sum returns Σx.
func (s *Set) Sum() float64 {
	return infallible(s, SlotSum, &s.sum, func() float64 {
		return stats.Sum(s.values)
	})
}

// SquaredSum returns (Σx)².
func (s *Set) SquaredSum() float64 {
	return infallible(s, SlotSquaredSum, &s.squaredSum, func() float64 {
		sum := s.Sum()

		return sum * sum
	})
}

// SumOfSquares returns Σx².
func (s *Set) SumOfSquares() float64 {
	return infallible(s, SlotSumOfSquares, &s.sumOfSquares, func() float64 {
		var total float64

		for _, v := range s.values {
			total += v * v
		}

		return total
	})
}

// ArithmeticMean returns Σx/n.
func (s *Set) ArithmeticMean() (float64, error) {
	return cached(s, SlotArithmeticMean, &s.arithmetic, func() (float64, error) {
		return stats.ArithmeticMean(s.values)
	})
}

// GeometricMean returns the n-th root of the product of the values.
// The root is imaginary when the product is negative and n is even.
func (s *Set) GeometricMean() (stats.Root, error) {
	return cached(s, SlotGeometricMean, &s.geometric, func() (stats.Root, error) {
		return stats.GeometricMean(s.values)
	})
}

// HarmonicMean returns n / Σ(1/x).
func (s *Set) HarmonicMean() (stats.Root, error) {
	return cached(s, SlotHarmonicMean, &s.harmonic, func() (stats.Root, error) {
		return stats.HarmonicMean(s.values)
	})
}

// QuadraticMean returns the root mean square.
func (s *Set) QuadraticMean() (float64, error) {
	return cached(s, SlotQuadraticMean, &s.quadratic, func() (float64, error) {
		return stats.QuadraticMean(s.values)
	})
}

// CubicMean returns the cube root of the mean cube.
func (s *Set) CubicMean() (float64, error) {
	return cached(s, SlotCubicMean, &s.cubic, func() (float64, error) {
		return stats.CubicMean(s.values)
	})
}

// Modes returns every value sharing the highest frequency.
func (s *Set) Modes() ([]float64, error) {
	modes, err := cached(s, SlotModes, &s.modes, func() ([]float64, error) {
		return stats.ModesOf[float64](s.FrequencyDistribution())
	})

	return slices.Clone(modes), err
}

// ModeFrequency returns how often the modes occur.
func (s *Set) ModeFrequency() (int, error) {
	return cached(s, SlotModeFrequency, &s.modeFrequency, func() (int, error) {
		modes, err := s.Modes()
		if err != nil {
			return 0, err
		}

		return s.FrequencyDistribution().Get(modes[0]), nil
	})
}

// MostFrequentValues returns the values with the highest frequency.
func (s *Set) MostFrequentValues() ([]float64, error) {
	values, err := cached(s, SlotMostFrequentValues, &s.mostFrequent, func() ([]float64, error) {
		return s.valuesAtFrequency((*counter.Frozen[float64]).MostCommonFrequencies)
	})

	return slices.Clone(values), err
}

// LeastFrequentValues returns the values with the lowest frequency.
func (s *Set) LeastFrequentValues() ([]float64, error) {
	values, err := cached(s, SlotLeastFrequentValues, &s.leastFrequent, func() ([]float64, error) {
		return s.valuesAtFrequency((*counter.Frozen[float64]).LeastCommonFrequencies)
	})

	return slices.Clone(values), err
}

func (s *Set) valuesAtFrequency(pick func(*counter.Frozen[float64], int) ([]int, error)) ([]float64, error) {
	dist := s.FrequencyDistribution()
	if dist.Len() == 0 {
		return nil, stats.ErrNoValues
	}

	frequencies, err := pick(dist, 1)
	if err != nil {
		return nil, err
	}

	return dist.ValuesWithFrequencies(func(f int) bool { return f == frequencies[0] }), nil
}

// Quartiles returns a copy of the quartile decomposition of the values.
func (s *Set) Quartiles() (*quartile.Info, error) {
	info, err := s.quartileInfo()
	if err != nil {
		return nil, err
	}

	return info.Clone(), nil
}

// quartileInfo returns the cached decomposition shared by the median and
// summary statistics. It must not escape the Set.
func (s *Set) quartileInfo() (*quartile.Info, error) {
	return cached(s, SlotQuartiles, &s.quartiles, func() (*quartile.Info, error) {
		return quartile.Compute(s.values, s.quartileOpts...)
	})
}

// Minimum returns the first entry of the five-number summary.
func (s *Set) Minimum() (float64, error) {
	return cached(s, SlotMinimum, &s.minimum, func() (float64, error) {
		return s.summaryEntry(0)
	})
}

// Maximum returns the last entry of the five-number summary.
func (s *Set) Maximum() (float64, error) {
	return cached(s, SlotMaximum, &s.maximum, func() (float64, error) {
		return s.summaryEntry(4)
	})
}

func (s *Set) summaryEntry(i int) (float64, error) {
	info, err := s.quartileInfo()
	if err != nil {
		return 0, err
	}

	return info.FiveNumberSummary()[i], nil
}

// Range returns Maximum − Minimum.
func (s *Set) Range() (float64, error) {
	return cached(s, SlotRange, &s.valueRange, func() (float64, error) {
		lo, err := s.Minimum()
		if err != nil {
			return 0, err
		}

		hi, err := s.Maximum()
		if err != nil {
			return 0, err
		}

		return hi - lo, nil
	})
}

// Median returns the fence between the second and third quartiles.
func (s *Set) Median() (float64, error) {
	return cached(s, SlotMedian, &s.median, func() (float64, error) {
		info, err := s.quartileInfo()
		if err != nil {
			return 0, err
		}

		return info.Q2Q3.Value, nil
	})
}

// LowMedian returns the median when it is a data point, otherwise the
// largest value below it.
func (s *Set) LowMedian() (float64, error) {
	return cached(s, SlotLowMedian, &s.lowMedian, func() (float64, error) {
		info, err := s.quartileInfo()
		if err != nil {
			return 0, err
		}

		if info.Q2Q3.InDataSet {
			return info.Q2Q3.Value, nil
		}

		return info.Q2[len(info.Q2)-1], nil
	})
}

// HighMedian returns the median when it is a data point, otherwise the
// smallest value above it.
func (s *Set) HighMedian() (float64, error) {
	return cached(s, SlotHighMedian, &s.highMedian, func() (float64, error) {
		info, err := s.quartileInfo()
		if err != nil {
			return 0, err
		}

		if info.Q2Q3.InDataSet {
			return info.Q2Q3.Value, nil
		}

		return info.Q3[0], nil
	})
}

// MedianCount returns how often the median occurs in the data,
// 0 when the median is not a data point.
func (s *Set) MedianCount() (int, error) {
	return cached(s, SlotMedianCount, &s.medianCount, func() (int, error) {
		info, err := s.quartileInfo()
		if err != nil {
			return 0, err
		}

		if !info.Q2Q3.InDataSet {
			return 0, nil
		}

		return s.FrequencyDistribution().Get(info.Q2Q3.Value), nil
	})
}

// Variance returns the second central moment divided by n.
func (s *Set) Variance() (float64, error) {
	return cached(s, SlotVariance, &s.variance, func() (float64, error) {
		return s.withMean(stats.Variance)
	})
}

// StandardDeviation returns the square root of Variance.
func (s *Set) StandardDeviation() (float64, error) {
	return cached(s, SlotStandardDeviation, &s.stdDev, func() (float64, error) {
		return s.withMean(stats.StandardDeviation)
	})
}

// Skew returns m3 / (variance·sd) / n.
func (s *Set) Skew() (float64, error) {
	return cached(s, SlotSkew, &s.skew, func() (float64, error) {
		return s.withMean(stats.Skew)
	})
}

// KurtosisExcess returns m4 / variance² / n − 3.
func (s *Set) KurtosisExcess() (float64, error) {
	return cached(s, SlotKurtosisExcess, &s.kurtosis, func() (float64, error) {
		return s.withMean(stats.KurtosisExcess)
	})
}

// withMean evaluates a moment statistic around the cached arithmetic mean.
func (s *Set) withMean(moment func(mean float64, values []float64) (float64, error)) (float64, error) {
	mean, err := s.ArithmeticMean()
	if err != nil {
		return 0, err
	}

	return moment(mean, s.values)
}

// StandardScores returns a Set of (x − mean) / sd, carrying this Set's
// sample flag.
func (s *Set) StandardScores() (*Set, error) {
	return cached(s, SlotStandardScores, &s.scores, func() (*Set, error) {
		mean, err := s.ArithmeticMean()
		if err != nil {
			return nil, err
		}

		sd, err := s.StandardDeviation()
		if err != nil {
			return nil, err
		}

		if sd == 0 {
			return nil, stats.ErrZeroVariance
		}

		scores := s.Transform(func(x float64) float64 { return stats.StandardScore(x, mean, sd) })
		scores.sample = s.sample

		return scores, nil
	})
}

// ArithmeticMeanWith computes a weighted arithmetic mean without caching it.
func (s *Set) ArithmeticMeanWith(opts ...stats.MeanOption) (float64, error) {
	return stats.ArithmeticMean(s.values, opts...)
}

// GeometricMeanWith computes a weighted geometric mean without caching it.
func (s *Set) GeometricMeanWith(opts ...stats.MeanOption) (stats.Root, error) {
	return stats.GeometricMean(s.values, opts...)
}

// HarmonicMeanWith computes a weighted harmonic mean without caching it.
func (s *Set) HarmonicMeanWith(opts ...stats.MeanOption) (stats.Root, error) {
	return stats.HarmonicMean(s.values, opts...)
}

// QuadraticMeanWith computes a weighted quadratic mean without caching it.
func (s *Set) QuadraticMeanWith(opts ...stats.MeanOption) (float64, error) {
	return stats.QuadraticMean(s.values, opts...)
}

// CubicMeanWith computes a weighted cubic mean without caching it.
func (s *Set) CubicMeanWith(opts ...stats.MeanOption) (float64, error) {
	return stats.CubicMean(s.values, opts...)
}

// GeneralizedMean computes the power mean of the values without caching it.
func (s *Set) GeneralizedMean(power float64, opts ...stats.MeanOption) (stats.Root, error) {
	return stats.GeneralizedMean(power, s.values, opts...)
}

// Percentile returns the p-th percentile using linear interpolation.
func (s *Set) Percentile(p float64) float64 {
	return stats.Percentile(s.values, p)
}
