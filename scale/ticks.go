package scale

import "time"

// Tick is a representative domain value placed on an axis.
type Tick[T any] struct {
	Value T
	Pos   float64
	Label string

	// Primary marks the axis line. Only the first tick of a sequence is
	// primary; the rest are gridlines.
	Primary bool
}

// Formatter renders a tick value as label text.
type Formatter[T any] func(T) string

// LinearTicks returns the ticks of s labelled by format. A nil format uses
// DefaultFormat.
//
// count is a target, not a bound: the step is the 1-2-5 increment nearest
// to a count-way split, and a niced domain contributes both endpoints, so
// [0, 100] with count 4 yields the six ticks 0, 20, ..., 100.
func LinearTicks(s Linear, count int, format Formatter[float64]) []Tick[float64] {
	if format == nil {
		format = DefaultFormat
	}
	return place(s.Ticks(count), s.Map, format)
}

// DateTicks returns the ticks of s labelled by format. A nil format uses
// DateFormat. As with LinearTicks, count is a target for the interval
// choice and the result may hold more ticks.
func DateTicks(s Time, count int, format Formatter[time.Time]) []Tick[time.Time] {
	if format == nil {
		format = DateFormat
	}
	return place(s.Ticks(count), s.Map, format)
}

func place[T any](values []T, pos func(T) float64, format Formatter[T]) []Tick[T] {
	if len(values) == 0 {
		return nil
	}
	ticks := make([]Tick[T], len(values))
	for i, v := range values {
		ticks[i] = Tick[T]{
			Value:   v,
			Pos:     pos(v),
			Label:   format(v),
			Primary: i == 0,
		}
	}
	return ticks
}
