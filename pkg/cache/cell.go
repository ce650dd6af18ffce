// Package cache provides write-once cache cells for lazily derived values.
package cache

import (
	"errors"
	"sync"
)

// ErrAlreadySet is returned when a value is stored into a cell that already holds one.
var ErrAlreadySet = errors.New("a value has already been cached")

// ErrEmpty is returned when reading a cell that holds no value.
var ErrEmpty = errors.New("no value has been cached")

// Cell holds at most one computed value.
// A successful computation is stored once and returned on every later call;
// a failed computation leaves the cell empty.
// Cells are safe for concurrent use and must not be copied after first use.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	set   bool
}

// Get returns the cached value, computing it with compute on the first call.
// compute runs with the cell locked; it must not read the same cell.
func (c *Cell[T]) Get(compute func() (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set {
		return c.value, nil
	}

	value, err := compute()
	if err != nil {
		var zero T

		return zero, err
	}

	c.value = value
	c.set = true

	return value, nil
}

// Set stores value. It fails with ErrAlreadySet when a value is present
// unless override is true.
func (c *Cell[T]) Set(value T, override bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.set && !override {
		return ErrAlreadySet
	}

	c.value = value
	c.set = true

	return nil
}

// Value returns the cached value or ErrEmpty.
func (c *Cell[T]) Value() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.set {
		var zero T

		return zero, ErrEmpty
	}

	return c.value, nil
}

// HasValue reports whether a value has been cached.
func (c *Cell[T]) HasValue() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.set
}

// Clear drops the cached value and reports whether one was present.
func (c *Cell[T]) Clear() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	had := c.set

	var zero T

	c.value = zero
	c.set = false

	return had
}
