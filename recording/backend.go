package recording

import (
	"io"

	"github.com/gogpu/gg"
)

// Backend is the interface that all output backends must implement.
// Backends receive chart primitives and translate them to their output
// format (raster pixels, SVG elements, etc.).
//
// Drawing methods do not return errors. A backend that fails mid-way
// remembers the first error and reports it from End, so Playback stays a
// straight loop.
//
// Backends are created via the registry using NewBackend(name) and
// registered via Register() in their init() functions.
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register("svg", func() recording.Backend {
//	        return NewBackend()
//	    })
//	}
type Backend interface {
	// Begin initializes the backend for a canvas of the given size.
	// It must be called before any drawing method and may be called again
	// to start a fresh canvas.
	Begin(width, height int) error

	// End finalizes the output and returns the first error encountered
	// since Begin. After End, WriterBackend output can be read.
	End() error

	// StrokePath strokes path with style.Color at style.Width.
	StrokePath(path *gg.Path, style Style)

	// FillPath fills a closed path with style.Color.
	FillPath(path *gg.Path, style Style)

	// DrawLine strokes a single segment.
	DrawLine(seg Segment, style Style)

	// DrawText draws a label. The position is the baseline origin,
	// adjusted horizontally by the anchor.
	DrawText(t TextCommand)
}

// TickDrawer is implemented by backends that render a tick as one unit,
// such as markup backends that group the rule with its label.
type TickDrawer interface {
	DrawTick(t TickCommand)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)

	// ContentType returns the media type of the output, e.g. "image/png".
	ContentType() string
}
