package scale

import "math"

// Thresholds for promoting a raw step to the next round multiple.
var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// TickIncrement returns the round step that splits [start, stop] into
// roughly count intervals. Steps are 1, 2 or 5 times a power of ten.
//
// A positive result is the step itself. A negative result -k encodes
// a fractional step of 1/k, which keeps steps like 0.1 exact when tick
// values are later computed as i/k. Zero means no step exists
// (degenerate interval or non-positive count).
func TickIncrement(start, stop float64, count int) float64 {
	if count <= 0 || start == stop || math.IsNaN(start) || math.IsNaN(stop) {
		return 0
	}
	step := (stop - start) / float64(count)
	if step < 0 {
		step = -step
	}
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}
	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}

// TickStep returns the signed step between ticks over [start, stop].
// Unlike TickIncrement the result is always the actual step.
func TickStep(start, stop float64, count int) float64 {
	inc := TickIncrement(start, stop, count)
	if inc < 0 {
		inc = -1 / inc
	}
	if stop < start {
		return -inc
	}
	return inc
}

// Nice extends domain outward so both endpoints fall on multiples of the
// step chosen for count ticks. The domain never shrinks, and applying
// Nice to its own output returns it unchanged.
//
// A degenerate domain (min == max) is returned as is. With count 1 a
// domain spanning zero never settles on one step; refinement stops after
// ten rounds and idempotence does not hold.
func Nice(domain [2]float64, count int) [2]float64 {
	start, stop := domain[0], domain[1]
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prev float64
	for range 10 {
		step := TickIncrement(start, stop, count)
		if step == prev {
			break
		}
		if step == 0 {
			return domain
		}
		start = stepValue(floorIndex(start, step), step)
		stop = stepValue(ceilIndex(stop, step), step)
		prev = step
	}

	if reversed {
		return [2]float64{stop, start}
	}
	return [2]float64{start, stop}
}

// Ticks returns the round values in [start, stop] spaced by the step
// TickIncrement chooses for count. The same step drives Nice, so the
// ticks of a niced domain include both of its endpoints.
//
// count steers the step choice only. The result commonly holds count+1
// values and may hold up to about twice count.
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}
	step := TickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) {
		return nil
	}

	var ticks []float64
	for i, hi := ceilIndex(start, step), floorIndex(stop, step); i <= hi; i++ {
		ticks = append(ticks, stepValue(i, step))
	}

	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// stepValue returns the i-th multiple of an encoded step (see TickIncrement).
func stepValue(i, step float64) float64 {
	if step > 0 {
		return i * step
	}
	return i / -step
}

func stepQuotient(x, step float64) float64 {
	if step > 0 {
		return x / step
	}
	return x * -step
}

// nearInteger reports the integer q rounds to when q is within float
// noise of it.
func nearInteger(q float64) (float64, bool) {
	r := math.Round(q)
	return r, math.Abs(q-r) <= 1e-9*max(1, math.Abs(r))
}

// floorIndex returns the index of the largest step multiple <= x.
// Quotients within float noise of an integer snap to it as long as the
// multiple still does not exceed x; this keeps Nice idempotent.
func floorIndex(x, step float64) float64 {
	q := stepQuotient(x, step)
	if r, ok := nearInteger(q); ok && stepValue(r, step) <= x {
		return r
	}
	return math.Floor(q)
}

// ceilIndex returns the index of the smallest step multiple >= x.
func ceilIndex(x, step float64) float64 {
	q := stepQuotient(x, step)
	if r, ok := nearInteger(q); ok && stepValue(r, step) >= x {
		return r
	}
	return math.Ceil(q)
}
