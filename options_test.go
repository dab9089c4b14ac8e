package chart

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gg"
)

func TestEvolutionDefaults(t *testing.T) {
	o := evolutionOptions(nil)

	if !slices.Equal(o.fields, []string{FieldP50, FieldP95}) {
		t.Errorf("fields = %v, want [p50Avg p95Avg]", o.fields)
	}
	if o.padding != 0.1 {
		t.Errorf("padding = %v, want 0.1", o.padding)
	}
	if o.ticks != 10 {
		t.Errorf("ticks = %d, want 10", o.ticks)
	}
	if o.leading != "nightly" {
		t.Errorf("leading = %q, want nightly", o.leading)
	}
	if o.margins != (Margins{Left: 50, Right: 5}) {
		t.Errorf("margins = %+v, want left 50 right 5", o.margins)
	}
}

func TestBurnupDefaults(t *testing.T) {
	o := burnupOptions(nil)

	if o.ticks != 4 || o.dateTicks != 6 {
		t.Errorf("ticks = %d/%d, want 4/6", o.ticks, o.dateTicks)
	}
	if o.margins != (Margins{Top: 2, Bottom: 20, Left: 25}) {
		t.Errorf("margins = %+v, want top 2 bottom 20 left 25", o.margins)
	}
}

func TestOptionLabel(t *testing.T) {
	o := evolutionOptions([]Option{WithFieldLabels(map[string]string{"a": "Alpha", "b": ""})})

	tests := []struct{ field, want string }{
		{"a", "Alpha"},
		{"b", "b"},
		{FieldP50, FieldP50},
	}
	for _, tt := range tests {
		if got := o.label(tt.field); got != tt.want {
			t.Errorf("label(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}

	if got := evolutionOptions(nil).label(FieldP95); got != "95th Percentile" {
		t.Errorf("default label(p95Avg) = %q, want %q", got, "95th Percentile")
	}
}

func TestOptionPalette(t *testing.T) {
	red, green, blue := gg.Hex("#ff0000"), gg.Hex("#00ff00"), gg.Hex("#0000ff")
	o := evolutionOptions([]Option{WithPalette(red, green, blue)})
	for i, want := range []gg.RGBA{red, green, blue, red} {
		if got := o.color(i); got != want {
			t.Errorf("color(%d) = %v, want %v", i, got, want)
		}
	}

	if got := evolutionOptions([]Option{WithPalette()}).color(1); got != DefaultPalette[1] {
		t.Errorf("empty palette color(1) = %v, want default", got)
	}
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	o := burnupOptions([]Option{
		nil,
		WithTickCount(0),
		WithDateTickCount(-3),
		WithFontSize(0),
		WithAreaOpacity(2),
	})
	if o.ticks != 4 || o.dateTicks != 6 || o.fontSize != 11 {
		t.Errorf("ticks=%d dateTicks=%d fontSize=%v, want defaults", o.ticks, o.dateTicks, o.fontSize)
	}
	if o.areaOpacity != 1 {
		t.Errorf("areaOpacity = %v, want clamped to 1", o.areaOpacity)
	}
}

func TestOptionsDoNotAlias(t *testing.T) {
	fields := []string{"a", "b"}
	o := evolutionOptions([]Option{WithFields(fields...)})
	fields[0] = "z"
	if o.fields[0] != "a" {
		t.Error("WithFields kept a reference to the caller's slice")
	}
}

func TestSizeValidate(t *testing.T) {
	if err := (Size{Width: 1, Height: 1}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (Size{Width: 10}).Validate(); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Validate() = %v, want ErrInvalidSize", err)
	}
}

func TestKindAndStateStrings(t *testing.T) {
	if KindEvolution.String() != "evolution" || KindBurnup.String() != "burnup" {
		t.Errorf("Kind strings = %q, %q", KindEvolution, KindBurnup)
	}
	if Kind(9).String() != "Kind(9)" {
		t.Errorf("Kind(9).String() = %q", Kind(9).String())
	}
	if StateEmpty.String() != "empty" || StateReady.String() != "ready" {
		t.Errorf("State strings = %q, %q", StateEmpty, StateReady)
	}
}
