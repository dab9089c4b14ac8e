// Package extent accumulates the minimum and maximum of a stream of values.
package extent

import "golang.org/x/exp/constraints"

// Number is the set of types an Extent can track.
type Number interface {
	constraints.Integer | constraints.Float
}

// Extent tracks the smallest and largest value seen so far.
// The zero value is an empty extent.
type Extent[T Number] struct {
	min, max T
	n        int
}

// Of returns the extent of vs.
func Of[T Number](vs ...T) Extent[T] {
	var e Extent[T]
	for _, v := range vs {
		e.Include(v)
	}
	return e
}

// Include widens the extent to contain v.
// NaN values are ignored.
func (e *Extent[T]) Include(v T) {
	if v != v {
		return
	}
	if e.n == 0 {
		e.min, e.max = v, v
	} else {
		e.min = min(e.min, v)
		e.max = max(e.max, v)
	}
	e.n++
}

// Union returns an extent covering both e and o.
func (e Extent[T]) Union(o Extent[T]) Extent[T] {
	if o.n == 0 {
		return e
	}
	if e.n == 0 {
		return o
	}
	return Extent[T]{
		min: min(e.min, o.min),
		max: max(e.max, o.max),
		n:   e.n + o.n,
	}
}

// Empty reports whether no value has been included.
func (e Extent[T]) Empty() bool {
	return e.n == 0
}

// Count returns the number of values included.
func (e Extent[T]) Count() int {
	return e.n
}

// Min returns the smallest value, or zero for an empty extent.
func (e Extent[T]) Min() T {
	return e.min
}

// Max returns the largest value, or zero for an empty extent.
func (e Extent[T]) Max() T {
	return e.max
}

// Bounds returns [min, max].
func (e Extent[T]) Bounds() [2]T {
	return [2]T{e.min, e.max}
}
