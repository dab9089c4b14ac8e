package scale

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

func TestLinearMap(t *testing.T) {
	s := NewLinear([2]float64{0, 10}, [2]float64{100, 0})

	tests := []struct {
		v, want float64
	}{
		{0, 100},
		{10, 0},
		{5, 50},
		{2.5, 75},
		{20, -100},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); got != tt.want {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLinearClamp(t *testing.T) {
	s := Linear{Domain: [2]float64{0, 10}, Range: [2]float64{0, 100}, Clamp: true}
	if got := s.Map(20); got != 100 {
		t.Errorf("Map(20) = %v, want 100", got)
	}
	if got := s.Map(-5); got != 0 {
		t.Errorf("Map(-5) = %v, want 0", got)
	}
}

func TestLinearDegenerate(t *testing.T) {
	s := NewLinear([2]float64{4, 4}, [2]float64{30, 80})
	if !s.Degenerate() {
		t.Fatal("Degenerate() = false, want true")
	}
	for _, v := range []float64{-1, 4, 100} {
		if got := s.Map(v); got != 30 {
			t.Errorf("Map(%v) = %v, want 30", v, got)
		}
	}
	if got := s.Invert(55); got != 4 {
		t.Errorf("Invert(55) = %v, want 4", got)
	}
}

func TestLinearInvert(t *testing.T) {
	s := NewLinear([2]float64{0, 10}, [2]float64{100, 0})
	if got := s.Invert(25); got != 7.5 {
		t.Errorf("Invert(25) = %v, want 7.5", got)
	}
}

func TestLinearExactEndpoints(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := range 2000 {
		a := r.NormFloat64() * 1e3
		b := a + r.ExpFloat64()*1e2
		p := r.Float64() * 800
		q := r.Float64() * 800
		s := NewLinear([2]float64{a, b}, [2]float64{p, q}).Nice(2 + r.IntN(10))

		if got := s.Map(s.Domain[0]); got != p {
			t.Fatalf("#%d: Map(%v) = %v, want %v", i, s.Domain[0], got, p)
		}
		if got := s.Map(s.Domain[1]); got != q {
			t.Fatalf("#%d: Map(%v) = %v, want %v", i, s.Domain[1], got, q)
		}
	}
}

func TestLinearNiceKeepsRange(t *testing.T) {
	s := NewLinear([2]float64{1, 99}, [2]float64{0, 500}).Nice(10)
	if s.Domain != [2]float64{0, 100} {
		t.Errorf("Nice(10).Domain = %v, want [0 100]", s.Domain)
	}
	if s.Range != [2]float64{0, 500} {
		t.Errorf("Nice(10).Range = %v, want [0 500]", s.Range)
	}
}

func TestPowMap(t *testing.T) {
	s := Pow{Exponent: 0.5, Domain: [2]float64{0, 2}, Range: [2]float64{1, 0.25}, Clamp: true}

	if got := s.Map(0); got != 1 {
		t.Errorf("Map(0) = %v, want 1", got)
	}
	if got := s.Map(2); got != 0.25 {
		t.Errorf("Map(2) = %v, want 0.25", got)
	}
	want := 1 - 0.75*math.Sqrt(0.5)
	if got := s.Map(1); math.Abs(got-want) > 1e-12 {
		t.Errorf("Map(1) = %v, want %v", got, want)
	}
	if got := s.Map(7); got != 0.25 {
		t.Errorf("Map(7) = %v, want 0.25 (clamped)", got)
	}
}

func TestPowOpacityMonotonic(t *testing.T) {
	s := Pow{Exponent: 0.5, Domain: [2]float64{0, 2}, Range: [2]float64{1, 0.25}, Clamp: true}

	prev := math.Inf(1)
	for i := range 10 {
		got := s.Map(float64(i))
		if got > prev {
			t.Errorf("Map(%d) = %v, greater than Map(%d) = %v", i, got, i-1, prev)
		}
		if got < 0.25 || got > 1 {
			t.Errorf("Map(%d) = %v, outside [0.25, 1]", i, got)
		}
		prev = got
	}
}

func TestPowDegenerate(t *testing.T) {
	s := NewPow(2, [2]float64{1, 1}, [2]float64{10, 20})
	if got := s.Map(5); got != 10 {
		t.Errorf("Map(5) = %v, want 10", got)
	}
}

func TestTimeMap(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC)
	s := NewTime([2]time.Time{start, end}, [2]float64{25, 525})

	if got := s.Map(start); got != 25 {
		t.Errorf("Map(start) = %v, want 25", got)
	}
	if got := s.Map(end); got != 525 {
		t.Errorf("Map(end) = %v, want 525", got)
	}
	if got := s.Map(start.AddDate(0, 0, 5)); got != 275 {
		t.Errorf("Map(start+5d) = %v, want 275", got)
	}

	flat := NewTime([2]time.Time{start, start}, [2]float64{25, 525})
	if !flat.Degenerate() {
		t.Error("Degenerate() = false, want true")
	}
	if got := flat.Map(end); got != 25 {
		t.Errorf("degenerate Map(end) = %v, want 25", got)
	}
}
