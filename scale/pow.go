package scale

import "math"

// Pow maps a domain onto a range through a power curve:
//
//	Map(v) = Range[0] + ((v-Domain[0]) / (Domain[1]-Domain[0]))^Exponent * (Range[1]-Range[0])
//
// Exponents below one fall off fast near Domain[0]; the charts use this to
// fade older release channels.
type Pow struct {
	Exponent float64
	Domain   [2]float64
	Range    [2]float64

	// Clamp restricts the output to Range for inputs outside Domain.
	Clamp bool
}

// NewPow returns a power scale with the given exponent.
func NewPow(exponent float64, domain, rng [2]float64) Pow {
	return Pow{Exponent: exponent, Domain: domain, Range: rng}
}

// Map transforms a domain value into the range. A degenerate domain maps
// every value to Range[0].
func (s Pow) Map(v float64) float64 {
	if s.Domain[0] == s.Domain[1] {
		return s.Range[0]
	}
	t := (v - s.Domain[0]) / (s.Domain[1] - s.Domain[0])
	if s.Clamp {
		t = clampUnit(t)
	}
	// Keep the curve odd-symmetric so values below Domain[0] stay ordered.
	if t < 0 {
		t = -math.Pow(-t, s.Exponent)
	} else {
		t = math.Pow(t, s.Exponent)
	}
	return lerp(s.Range[0], s.Range[1], t)
}
