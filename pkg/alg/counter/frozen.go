package counter

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/mapx"
	"github.com/Sumatoshi-tech/statkit/pkg/cache"
)

// Frozen is an immutable Counter. It implements Reader but not Mutator.
// The expansion and the hash are computed once and cached.
type Frozen[K comparable] struct {
	c *Counter[K]

	expansion cache.Cell[[]K]
	hash      cache.Cell[uint64]
}

// Freeze counts values into a Frozen counter.
func Freeze[K comparable](values ...K) *Frozen[K] {
	return &Frozen[K]{c: New(values...)}
}

// Len returns the number of distinct keys.
func (f *Frozen[K]) Len() int { return f.c.Len() }

// Get returns the frequency of key, 0 when absent.
func (f *Frozen[K]) Get(key K) int { return f.c.Get(key) }

// Contains reports whether key is present.
func (f *Frozen[K]) Contains(key K) bool { return f.c.Contains(key) }

// Keys returns the keys in insertion order.
func (f *Frozen[K]) Keys() []K { return f.c.Keys() }

// Total returns the sum of all frequencies.
func (f *Frozen[K]) Total() int { return f.c.Total() }

// Each calls fn for every key in insertion order.
func (f *Frozen[K]) Each(fn func(key K, frequency int)) { f.c.Each(fn) }

// ToSlice returns the cached expansion. The caller owns the returned slice.
func (f *Frozen[K]) ToSlice() []K {
	values, _ := f.expansion.Get(func() ([]K, error) {
		return f.c.ToSlice(), nil
	})

	return mapx.CloneSlice(values)
}

// MostCommonFrequencies returns the n highest distinct frequency values.
func (f *Frozen[K]) MostCommonFrequencies(n int) ([]int, error) {
	return f.c.MostCommonFrequencies(n)
}

// LeastCommonFrequencies returns the n lowest distinct frequency values.
func (f *Frozen[K]) LeastCommonFrequencies(n int) ([]int, error) {
	return f.c.LeastCommonFrequencies(n)
}

// ValuesWithFrequencies returns the keys whose frequency satisfies pred.
func (f *Frozen[K]) ValuesWithFrequencies(pred func(frequency int) bool) []K {
	return f.c.ValuesWithFrequencies(pred)
}

// MostCommon returns up to n entries ordered from most to least frequent.
func (f *Frozen[K]) MostCommon(n int) []Entry[K] { return f.c.MostCommon(n) }

// LeastCommon returns up to n entries ordered from least to most frequent.
func (f *Frozen[K]) LeastCommon(n int) []Entry[K] { return f.c.LeastCommon(n) }

// Xor returns a frozen symmetric difference.
func (f *Frozen[K]) Xor(other Reader[K]) *Frozen[K] {
	return &Frozen[K]{c: f.c.Xor(other)}
}

// UniqueFrom returns a frozen copy without the excluded keys.
func (f *Frozen[K]) UniqueFrom(excluded ...K) *Frozen[K] {
	return &Frozen[K]{c: f.c.UniqueFrom(excluded...)}
}

// Mutable returns a mutable deep copy.
func (f *Frozen[K]) Mutable() *Counter[K] {
	return f.c.Copy()
}

// Hash returns a hash of the key/frequency pairs that ignores insertion order.
func (f *Frozen[K]) Hash() uint64 {
	h, _ := f.hash.Get(func() (uint64, error) {
		var (
			sum uint64
			buf []byte
		)

		f.c.Each(func(k K, freq int) {
			buf = fmt.Appendf(buf[:0], "%v\x00%d", k, freq)
			sum += xxhash.Sum64(buf)
		})

		return sum, nil
	})

	return h
}

// Equal reports whether both counters hold the same keys with the same frequencies.
func (f *Frozen[K]) Equal(other Reader[K]) bool {
	if other == nil || f.Len() != other.Len() {
		return false
	}

	for _, k := range f.c.order {
		if !other.Contains(k) || other.Get(k) != f.c.counts[k] {
			return false
		}
	}

	return true
}

// String formats the counter as key:frequency pairs.
func (f *Frozen[K]) String() string {
	return "frozen" + formatEntries(f)
}
