package shape

import "github.com/gogpu/gg"

// Area returns a closed ribbon between a lower and an upper boundary.
//
// The upper boundary (x, y1) is traced left to right, then the lower
// boundary (x, y0) right to left, and the subpath is closed. Points where
// both boundaries coincide still produce their two vertices, so the ring
// always has 2*len(points) vertices and closes back to its first point.
func Area[T any](points []T, x, y0, y1 func(T) float64) *gg.Path {
	path := gg.NewPath()
	if len(points) == 0 {
		return path
	}

	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = x(p)
		if i == 0 {
			path.MoveTo(xs[i], y1(p))
			continue
		}
		path.LineTo(xs[i], y1(p))
	}
	for i := len(points) - 1; i >= 0; i-- {
		path.LineTo(xs[i], y0(points[i]))
	}
	path.Close()
	return path
}
