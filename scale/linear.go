package scale

// Linear maps a numeric domain onto a pixel range by affine interpolation.
//
// Map(Domain[0]) == Range[0] and Map(Domain[1]) == Range[1] hold exactly.
// A degenerate domain (both endpoints equal) maps every value to Range[0].
//
// Linear is an immutable value; Nice and the With methods return copies.
type Linear struct {
	Domain [2]float64
	Range  [2]float64

	// Clamp restricts the output to Range for inputs outside Domain.
	Clamp bool
}

// NewLinear returns a linear scale from domain to rng.
func NewLinear(domain, rng [2]float64) Linear {
	return Linear{Domain: domain, Range: rng}
}

// Degenerate reports whether the domain collapses to a single value.
func (s Linear) Degenerate() bool {
	return s.Domain[0] == s.Domain[1]
}

// Map transforms a domain value into the range.
func (s Linear) Map(v float64) float64 {
	if s.Degenerate() {
		return s.Range[0]
	}
	t := (v - s.Domain[0]) / (s.Domain[1] - s.Domain[0])
	if s.Clamp {
		t = clampUnit(t)
	}
	return lerp(s.Range[0], s.Range[1], t)
}

// Invert transforms a range value back into the domain.
// A degenerate scale inverts every value to Domain[0].
func (s Linear) Invert(p float64) float64 {
	if s.Range[0] == s.Range[1] || s.Degenerate() {
		return s.Domain[0]
	}
	t := (p - s.Range[0]) / (s.Range[1] - s.Range[0])
	if s.Clamp {
		t = clampUnit(t)
	}
	return lerp(s.Domain[0], s.Domain[1], t)
}

// Nice returns a copy whose domain is extended to round values for count
// ticks. The range is left untouched.
func (s Linear) Nice(count int) Linear {
	s.Domain = Nice(s.Domain, count)
	return s
}

// WithRange returns a copy mapping onto rng.
func (s Linear) WithRange(rng [2]float64) Linear {
	s.Range = rng
	return s
}

// Ticks returns round domain values for count ticks.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.Domain[0], s.Domain[1], count)
}

// lerp interpolates so that t == 0 yields a and t == 1 yields b exactly.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func clampUnit(t float64) float64 {
	return min(max(t, 0), 1)
}
