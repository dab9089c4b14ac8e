package chart

import (
	"maps"
	"slices"

	"github.com/gogpu/gg"
)

// Default evolution fields and their display labels.
const (
	FieldP50 = "p50Avg"
	FieldP95 = "p95Avg"
)

// DefaultFieldLabels maps the default evolution fields to display labels.
// Fields without an entry are labelled with their raw name.
var DefaultFieldLabels = map[string]string{
	FieldP50: "50th Percentile",
	FieldP95: "95th Percentile",
}

// DefaultPalette colors field 0 and field 1 of the evolution chart, and
// the open and total series of the burn-up chart.
var DefaultPalette = []gg.RGBA{
	gg.Hex("#FF8C8E"),
	gg.Hex("#B6D806"),
}

// DefaultLeadingChannel is the bleeding-edge channel whose series get a
// version label.
const DefaultLeadingChannel = "nightly"

// Margins reserve room around the plot area for axis labels.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Option configures an assembly.
type Option func(*options)

type options struct {
	fields      []string
	labels      map[string]string
	palette     []gg.RGBA
	padding     float64
	leading     string
	ticks       int
	dateTicks   int
	margins     Margins
	fontSize    float64
	areaOpacity float64
}

func evolutionOptions(opts []Option) options {
	o := options{
		fields:    []string{FieldP50, FieldP95},
		labels:    DefaultFieldLabels,
		palette:   DefaultPalette,
		padding:   0.1,
		leading:   DefaultLeadingChannel,
		ticks:     10,
		dateTicks: 6,
		margins:   Margins{Left: 50, Right: 5},
		fontSize:  11,
	}
	return o.apply(opts)
}

func burnupOptions(opts []Option) options {
	o := options{
		palette:     DefaultPalette,
		ticks:       4,
		dateTicks:   6,
		margins:     Margins{Top: 2, Bottom: 20, Left: 25},
		fontSize:    11,
		areaOpacity: 0.35,
	}
	return o.apply(opts)
}

func (o options) apply(opts []Option) options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if len(o.palette) == 0 {
		o.palette = DefaultPalette
	}
	return o
}

// label returns the display label of field, or field itself.
func (o options) label(field string) string {
	if l, ok := o.labels[field]; ok && l != "" {
		return l
	}
	return field
}

// color returns the palette entry for series i, cycling the palette.
func (o options) color(i int) gg.RGBA {
	return o.palette[i%len(o.palette)]
}

// WithFields sets the evolution fields, one band each, top to bottom.
func WithFields(fields ...string) Option {
	return func(o *options) {
		o.fields = slices.Clone(fields)
	}
}

// WithFieldLabels sets the display labels of fields. Fields missing from
// labels fall back to their raw name.
func WithFieldLabels(labels map[string]string) Option {
	return func(o *options) {
		o.labels = maps.Clone(labels)
	}
}

// WithPalette sets the series colors. An empty palette keeps the default.
func WithPalette(colors ...gg.RGBA) Option {
	return func(o *options) {
		o.palette = slices.Clone(colors)
	}
}

// WithBandPadding sets the fraction of each evolution band left empty.
// It must be in [0, 1).
func WithBandPadding(p float64) Option {
	return func(o *options) {
		o.padding = p
	}
}

// WithLeadingChannel names the channel whose series are labelled with
// "<version>/<channel>". An empty name disables the labels.
func WithLeadingChannel(name string) Option {
	return func(o *options) {
		o.leading = name
	}
}

// WithTickCount sets the requested number of value-axis ticks.
func WithTickCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.ticks = n
		}
	}
}

// WithDateTickCount sets the requested number of date-axis ticks.
func WithDateTickCount(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.dateTicks = n
		}
	}
}

// WithMargins replaces the plot margins.
func WithMargins(m Margins) Option {
	return func(o *options) {
		o.margins = m
	}
}

// WithFontSize sets the label font size in pixels.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.fontSize = size
		}
	}
}

// WithAreaOpacity sets the opacity of burn-up area fills.
func WithAreaOpacity(a float64) Option {
	return func(o *options) {
		o.areaOpacity = min(max(a, 0), 1)
	}
}
