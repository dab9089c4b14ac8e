package scale

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPadding is returned when a band padding fraction is
	// outside [0, 1).
	ErrInvalidPadding = errors.New("scale: band padding must be in [0, 1)")

	// ErrNoFields is returned when a band layout is requested for zero fields.
	ErrNoFields = errors.New("scale: band layout needs at least one field")
)

// Band is one field's slot in a partitioned range.
//
// Start and Width describe the whole slot; bands produced by BandLayout
// are contiguous, so their widths sum to the partitioned length.
// Padding is the fraction of Width left empty, split evenly between
// both sides of the content.
type Band struct {
	Field   string
	Start   float64
	Width   float64
	Padding float64
}

// End returns the far edge of the slot.
func (b Band) End() float64 {
	return b.Start + b.Width
}

// Inner returns the start and width of the padded content area.
func (b Band) Inner() (start, width float64) {
	pad := b.Width * b.Padding
	return b.Start + pad/2, b.Width - pad
}

// Scale returns a linear scale from domain into the content area. The
// scale is inverted: domain[1] maps to the top (smaller pixel value) of
// the band and domain[0] to its bottom.
func (b Band) Scale(domain [2]float64) Linear {
	start, width := b.Inner()
	return NewLinear(domain, [2]float64{start + width, start})
}

// BandLayout partitions rng into one band per field, in field order.
// Each band is (rng[1]-rng[0])/len(fields) wide; band 0 starts at rng[0],
// which is the top of a vertical axis in screen coordinates.
func BandLayout(fields []string, rng [2]float64, padding float64) ([]Band, error) {
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	if padding < 0 || padding >= 1 || padding != padding {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidPadding, padding)
	}

	length := rng[1] - rng[0]
	w := length / float64(len(fields))
	bands := make([]Band, len(fields))
	for i, f := range fields {
		start := rng[0] + float64(i)*w
		// Pin the last band to the range end so the widths sum exactly.
		width := w
		if i == len(fields)-1 {
			width = rng[1] - start
		}
		bands[i] = Band{Field: f, Start: start, Width: width, Padding: padding}
	}
	return bands, nil
}

// BandScales lays out fields over rng and returns one inverted linear
// scale per field, built over that field's domain.
func BandScales(fields []string, domains map[string][2]float64, rng [2]float64, padding float64) ([]Linear, error) {
	bands, err := BandLayout(fields, rng, padding)
	if err != nil {
		return nil, err
	}
	scales := make([]Linear, len(bands))
	for i, b := range bands {
		scales[i] = b.Scale(domains[b.Field])
	}
	return scales, nil
}
