// Package mapx holds the generic map and slice helpers shared by the counters and reports.
package mapx

import (
	"cmp"
	"maps"
	"slices"
)

// Numeric is the constraint for keys that counters can shift and scale.
// Unsigned integers are excluded: negation has no in-range result for them.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// Clone returns a shallow copy of m, nil for a nil map.
func Clone[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}

	out := make(map[K]V, len(m))
	maps.Copy(out, m)

	return out
}

// SortedKeys returns the keys of m in ascending order, nil for a nil map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	if m == nil {
		return nil
	}

	keys := slices.AppendSeq(make([]K, 0, len(m)), maps.Keys(m))
	slices.Sort(keys)

	return keys
}
