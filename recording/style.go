package recording

import (
	"strings"

	"github.com/gogpu/gg"
)

// Style describes how a primitive is painted.
type Style struct {
	// Color is the stroke color of lines and the fill color of areas and text.
	Color gg.RGBA

	// Opacity scales the alpha of Color. Backends multiply the two.
	Opacity float64

	// Width is the stroke width in pixels. Ignored for fills.
	Width float64

	// Class is a space-separated list of style classes, emitted as-is by
	// markup backends so the output can be themed externally.
	Class string
}

// DefaultStyle is opaque black, one pixel wide.
var DefaultStyle = Style{Color: gg.Black, Opacity: 1, Width: 1}

// NewStyle returns DefaultStyle painted in c.
func NewStyle(c gg.RGBA) Style {
	s := DefaultStyle
	s.Color = c
	return s
}

// WithOpacity returns a copy of s with the given opacity.
func (s Style) WithOpacity(o float64) Style {
	s.Opacity = o
	return s
}

// WithWidth returns a copy of s with the given stroke width.
func (s Style) WithWidth(w float64) Style {
	s.Width = w
	return s
}

// WithClass returns a copy of s with classes appended to its class list.
func (s Style) WithClass(classes ...string) Style {
	all := make([]string, 0, len(classes)+1)
	if s.Class != "" {
		all = append(all, s.Class)
	}
	for _, c := range classes {
		if c != "" {
			all = append(all, c)
		}
	}
	s.Class = strings.Join(all, " ")
	return s
}

// Paint returns the color with Opacity folded into its alpha.
func (s Style) Paint() gg.RGBA {
	c := s.Color
	c.A *= min(max(s.Opacity, 0), 1)
	return c
}
