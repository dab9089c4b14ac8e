package scale

import (
	"math"
	"sort"
	"time"
)

type calendarUnit uint8

const (
	unitSecond calendarUnit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitMonth
	unitYear
)

const (
	durationDay   = 24 * time.Hour
	durationWeek  = 7 * durationDay
	durationMonth = 30 * durationDay
	durationYear  = 365 * durationDay
)

// tickInterval is a calendar interval that keeps every step-th boundary.
type tickInterval struct {
	unit calendarUnit
	step int
	span time.Duration
}

// tickIntervals is sorted by span.
var tickIntervals = []tickInterval{
	{unitSecond, 1, time.Second},
	{unitSecond, 5, 5 * time.Second},
	{unitSecond, 15, 15 * time.Second},
	{unitSecond, 30, 30 * time.Second},
	{unitMinute, 1, time.Minute},
	{unitMinute, 5, 5 * time.Minute},
	{unitMinute, 15, 15 * time.Minute},
	{unitMinute, 30, 30 * time.Minute},
	{unitHour, 1, time.Hour},
	{unitHour, 3, 3 * time.Hour},
	{unitHour, 6, 6 * time.Hour},
	{unitHour, 12, 12 * time.Hour},
	{unitDay, 1, durationDay},
	{unitDay, 2, 2 * durationDay},
	{unitWeek, 1, durationWeek},
	{unitMonth, 1, durationMonth},
	{unitMonth, 3, 3 * durationMonth},
	{unitYear, 1, durationYear},
}

// TimeTicks returns roughly count instants in [start, stop] that fall on
// calendar boundaries: whole seconds through whole years, weeks starting
// on Sunday. The interval whose span is closest (by ratio) to
// (stop-start)/count is used. All arithmetic is done in UTC.
func TimeTicks(start, stop time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	start, stop = start.UTC(), stop.UTC()
	reversed := stop.Before(start)
	if reversed {
		start, stop = stop, start
	}

	var ticks []time.Time
	iv, ok := chooseInterval(start, stop, count)
	if ok {
		ticks = iv.between(start, stop)
	} else {
		ticks = millisecondTicks(start, stop, count)
	}

	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// chooseInterval picks the calendar interval for count ticks over
// [start, stop]. It reports false when the interval is finer than a
// second and millisecond ticks are needed.
func chooseInterval(start, stop time.Time, count int) (tickInterval, bool) {
	target := float64(stop.Sub(start)) / float64(count)
	i := sort.Search(len(tickIntervals), func(i int) bool {
		return float64(tickIntervals[i].span) > target
	})
	switch i {
	case 0:
		return tickInterval{}, false
	case len(tickIntervals):
		years := float64(durationYear)
		step := TickStep(float64(start.UnixNano())/years, float64(stop.UnixNano())/years, count)
		return tickInterval{unit: unitYear, step: max(int(step), 1), span: durationYear}, true
	}
	lo, hi := tickIntervals[i-1], tickIntervals[i]
	if target/float64(lo.span) < float64(hi.span)/target {
		return lo, true
	}
	return hi, true
}

// between returns the boundaries of iv in [start, stop].
func (iv tickInterval) between(start, stop time.Time) []time.Time {
	var ticks []time.Time
	t := floorUnit(start, iv.unit)
	if t.Before(start) {
		t = nextUnit(t, iv.unit)
	}
	for ; !t.After(stop); t = nextUnit(t, iv.unit) {
		if iv.keep(t) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

func (iv tickInterval) keep(t time.Time) bool {
	if iv.step <= 1 {
		return true
	}
	var field int
	switch iv.unit {
	case unitSecond:
		field = t.Second()
	case unitMinute:
		field = t.Minute()
	case unitHour:
		field = t.Hour()
	case unitDay:
		field = t.Day() - 1
	case unitMonth:
		field = int(t.Month()) - 1
	case unitYear:
		field = t.Year()
	default:
		return true
	}
	return field%iv.step == 0
}

func floorUnit(t time.Time, u calendarUnit) time.Time {
	y, m, d := t.Date()
	switch u {
	case unitSecond:
		return t.Truncate(time.Second)
	case unitMinute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC)
	case unitHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, time.UTC)
	case unitDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case unitWeek:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
	case unitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

func nextUnit(t time.Time, u calendarUnit) time.Time {
	switch u {
	case unitSecond:
		return t.Add(time.Second)
	case unitMinute:
		return t.Add(time.Minute)
	case unitHour:
		return t.Add(time.Hour)
	case unitDay:
		return t.AddDate(0, 0, 1)
	case unitWeek:
		return t.AddDate(0, 0, 7)
	case unitMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(1, 0, 0)
	}
}

func millisecondTicks(start, stop time.Time, count int) []time.Time {
	a, b := float64(start.UnixMilli()), float64(stop.UnixMilli())
	step := math.Floor(max(TickStep(a, b, count), 1))
	var ticks []time.Time
	for v := math.Ceil(a/step) * step; v <= b; v += step {
		ticks = append(ticks, time.UnixMilli(int64(v)).UTC())
	}
	return ticks
}
