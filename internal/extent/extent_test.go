package extent

import (
	"math"
	"testing"
)

func TestExtentEmpty(t *testing.T) {
	var e Extent[float64]
	if !e.Empty() {
		t.Error("zero Extent should be empty")
	}
	if e.Count() != 0 {
		t.Errorf("Count() = %d, want 0", e.Count())
	}
}

func TestExtentOf(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		min, max float64
	}{
		{"single", []float64{3}, 3, 3},
		{"ascending", []float64{1, 2, 3}, 1, 3},
		{"descending", []float64{9, 4, -2}, -2, 9},
		{"first is max", []float64{10, 1, 5}, 1, 10},
		{"nan ignored", []float64{math.NaN(), 2, math.NaN(), 7}, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Of(tt.values...)
			if e.Min() != tt.min || e.Max() != tt.max {
				t.Errorf("Of(%v) = [%v, %v], want [%v, %v]", tt.values, e.Min(), e.Max(), tt.min, tt.max)
			}
		})
	}
}

func TestExtentIntegers(t *testing.T) {
	e := Of[int64](1_577_836_800_000, 1_579_046_400_000, 1_578_441_600_000)
	want := [2]int64{1_577_836_800_000, 1_579_046_400_000}
	if e.Bounds() != want {
		t.Errorf("Bounds() = %v, want %v", e.Bounds(), want)
	}
}

func TestExtentUnion(t *testing.T) {
	a := Of(1.0, 4.0)
	b := Of(-3.0, 2.0)
	u := a.Union(b)
	if u.Min() != -3 || u.Max() != 4 {
		t.Errorf("Union = [%v, %v], want [-3, 4]", u.Min(), u.Max())
	}
	if u.Count() != 4 {
		t.Errorf("Count() = %d, want 4", u.Count())
	}

	var empty Extent[float64]
	if got := empty.Union(a); got != a {
		t.Errorf("empty.Union(a) = %+v, want %+v", got, a)
	}
	if got := a.Union(empty); got != a {
		t.Errorf("a.Union(empty) = %+v, want %+v", got, a)
	}
}
