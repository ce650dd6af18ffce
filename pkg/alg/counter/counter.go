// Package counter provides a multiset that maps keys to integer frequencies.
//
// Frequencies are not constrained to be positive: algebra over the
// frequency view can produce zero or negative counts and they are kept.
// Such keys contribute nothing to ToSlice.
//
// Keys follow Go map equality, so a NaN key never matches another NaN:
// every NaN counted becomes a separate key. Reject NaN before counting
// floating point data.
package counter

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/statkit/pkg/alg/mapx"
)

// Counter errors.
var (
	// ErrNonPositiveQuantity is returned when a frequency query asks for fewer than one result.
	ErrNonPositiveQuantity = errors.New("quantity must be positive")

	// ErrOverflow is returned when a view operator yields a key or frequency
	// its type cannot hold. The Counter is left unchanged.
	ErrOverflow = errors.New("result out of range")
)

// Reader is the read-only surface shared by Counter and Frozen.
type Reader[K comparable] interface {
	Len() int
	Get(key K) int
	Contains(key K) bool
	Keys() []K
	Total() int
	Each(fn func(key K, frequency int))
	ToSlice() []K
	MostCommonFrequencies(n int) ([]int, error)
	LeastCommonFrequencies(n int) ([]int, error)
	ValuesWithFrequencies(pred func(frequency int) bool) []K
}

// Mutator is implemented by types whose frequencies can change after construction.
// Frozen does not implement it.
type Mutator[K comparable] interface {
	Set(key K, frequency int)
	Update(values ...K)
	Subtract(values ...K)
	Delete(key K) bool
	Pop(key K) (int, bool)
	PopItem() (K, int, bool)
	Clear()
}

// Entry is a key with its frequency.
type Entry[K comparable] struct {
	Key       K
	Frequency int
}

// Counter is a mutable frequency distribution. Keys keep insertion order.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// New counts values. An empty input yields an empty Counter.
func New[K comparable](values ...K) *Counter[K] {
	c := &Counter[K]{counts: make(map[K]int, len(values))}
	c.Update(values...)

	return c
}

// FromMap builds a Counter that reuses the frequencies of m verbatim,
// including zero and negative ones. Key order follows map iteration.
func FromMap[K comparable](m map[K]int) *Counter[K] {
	c := &Counter[K]{counts: mapx.Clone(m), order: make([]K, 0, len(m))}
	if c.counts == nil {
		c.counts = make(map[K]int)
	}

	for k := range c.counts {
		c.order = append(c.order, k)
	}

	return c
}

// FromCounter re-derives a Counter from the expansion of r,
// so keys with non-positive frequencies are dropped.
func FromCounter[K comparable](r Reader[K]) *Counter[K] {
	return New(r.ToSlice()...)
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Get returns the frequency of key, 0 when absent.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Contains reports whether key is present (with any frequency).
func (c *Counter[K]) Contains(key K) bool {
	_, ok := c.counts[key]

	return ok
}

// Keys returns the keys in insertion order.
func (c *Counter[K]) Keys() []K {
	return mapx.CloneSlice(c.order)
}

// Total returns the sum of all frequencies.
func (c *Counter[K]) Total() int {
	total := 0

	for _, f := range c.counts {
		total += f
	}

	return total
}

// Each calls fn for every key in insertion order.
func (c *Counter[K]) Each(fn func(key K, frequency int)) {
	for _, k := range c.order {
		fn(k, c.counts[k])
	}
}

// Set assigns the frequency of key, adding the key if needed.
func (c *Counter[K]) Set(key K, frequency int) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}

	c.counts[key] = frequency
}

// Update adds one occurrence for each value.
func (c *Counter[K]) Update(values ...K) {
	for _, v := range values {
		c.Set(v, c.counts[v]+1)
	}
}

// Subtract removes one occurrence for each value. Frequencies may go negative.
func (c *Counter[K]) Subtract(values ...K) {
	for _, v := range values {
		c.Set(v, c.counts[v]-1)
	}
}

// Delete removes key and reports whether it was present.
func (c *Counter[K]) Delete(key K) bool {
	if _, ok := c.counts[key]; !ok {
		return false
	}

	delete(c.counts, key)

	c.order = slices.DeleteFunc(c.order, func(k K) bool { return k == key })

	return true
}

// Pop removes key and returns its frequency.
func (c *Counter[K]) Pop(key K) (int, bool) {
	f, ok := c.counts[key]
	if ok {
		c.Delete(key)
	}

	return f, ok
}

// PopItem removes and returns the most recently inserted key.
func (c *Counter[K]) PopItem() (K, int, bool) {
	if len(c.order) == 0 {
		var zero K

		return zero, 0, false
	}

	key := c.order[len(c.order)-1]
	f := c.counts[key]
	c.Delete(key)

	return key, f, true
}

// Clear removes every key.
func (c *Counter[K]) Clear() {
	clear(c.counts)
	c.order = c.order[:0]
}

// Copy returns an independent copy.
func (c *Counter[K]) Copy() *Counter[K] {
	return &Counter[K]{counts: mapx.Clone(c.counts), order: mapx.CloneSlice(c.order)}
}

// ToSlice expands the distribution into raw values grouped by key.
func (c *Counter[K]) ToSlice() []K {
	out := make([]K, 0, len(c.order))

	for _, k := range c.order {
		for range max(c.counts[k], 0) {
			out = append(out, k)
		}
	}

	return out
}

// Xor returns the keys present in exactly one of c and other,
// each with the frequency it has in the operand that holds it.
func (c *Counter[K]) Xor(other Reader[K]) *Counter[K] {
	out := &Counter[K]{counts: make(map[K]int)}

	for _, k := range c.order {
		if !other.Contains(k) {
			out.Set(k, c.counts[k])
		}
	}

	other.Each(func(k K, f int) {
		if !c.Contains(k) {
			out.Set(k, f)
		}
	})

	return out
}

// XorMap is Xor against a plain frequency map.
func (c *Counter[K]) XorMap(m map[K]int) *Counter[K] {
	return c.Xor(FromMap(m))
}

// UniqueFrom returns a copy without the excluded keys.
func (c *Counter[K]) UniqueFrom(excluded ...K) *Counter[K] {
	out := c.Copy()

	for _, k := range excluded {
		out.Delete(k)
	}

	return out
}

// MostCommonFrequencies returns the n highest distinct frequency values, highest first.
func (c *Counter[K]) MostCommonFrequencies(n int) ([]int, error) {
	return selectFrequencies(c.counts, n, func(a, b int) int { return cmp.Compare(b, a) })
}

// LeastCommonFrequencies returns the n lowest distinct frequency values, lowest first.
func (c *Counter[K]) LeastCommonFrequencies(n int) ([]int, error) {
	return selectFrequencies(c.counts, n, cmp.Compare[int])
}

// ValuesWithFrequencies returns, in insertion order, the keys whose frequency satisfies pred.
func (c *Counter[K]) ValuesWithFrequencies(pred func(frequency int) bool) []K {
	var out []K

	for _, k := range c.order {
		if pred(c.counts[k]) {
			out = append(out, k)
		}
	}

	return out
}

// MostCommon returns up to n entries ordered from most to least frequent.
// Ties keep insertion order. n <= 0 returns every entry.
func (c *Counter[K]) MostCommon(n int) []Entry[K] {
	return c.rank(n, func(a, b Entry[K]) int { return cmp.Compare(b.Frequency, a.Frequency) })
}

// LeastCommon returns up to n entries ordered from least to most frequent.
// Ties keep insertion order. n <= 0 returns every entry.
func (c *Counter[K]) LeastCommon(n int) []Entry[K] {
	return c.rank(n, func(a, b Entry[K]) int { return cmp.Compare(a.Frequency, b.Frequency) })
}

// Immutable returns a frozen deep copy.
func (c *Counter[K]) Immutable() *Frozen[K] {
	return &Frozen[K]{c: c.Copy()}
}

// String formats the counter as key:frequency pairs.
func (c *Counter[K]) String() string {
	return formatEntries(c)
}

func (c *Counter[K]) rank(n int, order func(a, b Entry[K]) int) []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))

	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Frequency: c.counts[k]})
	}

	slices.SortStableFunc(entries, order)

	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}

	return entries
}

func selectFrequencies[K comparable](counts map[K]int, n int, order func(a, b int) int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrNonPositiveQuantity, n)
	}

	seen := make(map[int]struct{}, len(counts))
	distinct := make([]int, 0, len(counts))

	for _, f := range counts {
		if _, ok := seen[f]; ok {
			continue
		}

		seen[f] = struct{}{}
		distinct = append(distinct, f)
	}

	slices.SortFunc(distinct, order)

	if n < len(distinct) {
		distinct = distinct[:n]
	}

	return distinct, nil
}

func formatEntries[K comparable](r Reader[K]) string {
	buf := []byte("{")
	first := true

	r.Each(func(k K, f int) {
		if !first {
			buf = append(buf, ", "...)
		}

		first = false
		buf = fmt.Appendf(buf, "%v: %d", k, f)
	})

	return string(append(buf, '}'))
}
