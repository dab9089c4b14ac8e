// Package scale maps data domains onto pixel ranges.
//
// It provides the value types the chart assemblers are built from:
//
//   - Linear, Time and Pow scales with exact endpoint mapping
//   - Nice rounding and tick selection on a 1-2-5 step ladder
//   - BandLayout, which partitions a range into padded per-field slots
//   - Tick generation with caller-supplied label formatters
//
// All types are immutable values. Methods that adjust a scale return a
// modified copy, so scales can be shared freely between goroutines.
//
// # Nice rounding
//
// Nice and Ticks share one step selection (TickIncrement), so the ticks
// of a niced domain always include both endpoints:
//
//	d := scale.Nice([2]float64{0.23, 0.87}, 10) // [0.2, 0.9]
//	scale.Ticks(d[0], d[1], 10)                  // 0.2, 0.25, ..., 0.9 (15 values)
//
// # Degenerate domains
//
// A domain whose endpoints are equal maps every value to the start of
// the range instead of dividing by zero.
package scale
