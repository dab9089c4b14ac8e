package scale

import "time"

// Time is a linear scale whose domain is an instant interval.
// Instants are interpolated on their Unix millisecond value, so the
// endpoint and degenerate rules of Linear apply unchanged.
type Time struct {
	Domain [2]time.Time
	Range  [2]float64
}

// NewTime returns a time scale from domain to rng.
func NewTime(domain [2]time.Time, rng [2]float64) Time {
	return Time{Domain: domain, Range: rng}
}

// Map transforms an instant into the range.
func (s Time) Map(t time.Time) float64 {
	return s.linear().Map(float64(t.UnixMilli()))
}

// Degenerate reports whether both domain endpoints are the same instant.
func (s Time) Degenerate() bool {
	return s.Domain[0].Equal(s.Domain[1])
}

// Ticks returns calendar-aligned instants within the domain, in UTC.
func (s Time) Ticks(count int) []time.Time {
	return TimeTicks(s.Domain[0], s.Domain[1], count)
}

func (s Time) linear() Linear {
	return Linear{
		Domain: [2]float64{float64(s.Domain[0].UnixMilli()), float64(s.Domain[1].UnixMilli())},
		Range:  s.Range,
	}
}
