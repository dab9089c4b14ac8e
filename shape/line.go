// Package shape builds chart geometry from ordered data.
//
// Line and Area turn a sequence of data values plus coordinate accessors
// into [gg.Path] geometry with straight segments between points. The
// accessors are evaluated once per point, in order.
package shape

import "github.com/gogpu/gg"

// Line returns a polyline through (x(p), y(p)) for each point in order.
//
// An empty input yields an empty path. A single point yields a lone
// MoveTo, which strokes to nothing.
func Line[T any](points []T, x, y func(T) float64) *gg.Path {
	path := gg.NewPath()
	for i, p := range points {
		if i == 0 {
			path.MoveTo(x(p), y(p))
			continue
		}
		path.LineTo(x(p), y(p))
	}
	return path
}

// Pairs returns the number of coordinate pairs path references.
func Pairs(path *gg.Path) int {
	if path == nil {
		return 0
	}
	return len(path.Coords()) / 2
}

// Points returns the end points of every segment of path, in order.
// Close verbs contribute no point.
func Points(path *gg.Path) []gg.Point {
	if path == nil {
		return nil
	}
	var pts []gg.Point
	path.Iterate(func(verb gg.PathVerb, coords []float64) {
		if n := len(coords); n >= 2 {
			pts = append(pts, gg.Pt(coords[n-2], coords[n-1]))
		}
	})
	return pts
}
