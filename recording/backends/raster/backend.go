// Package raster provides the "png" backend for the recording system.
// It renders recordings to pixel images using gg.Context.
//
// Paths are replayed verb by verb onto the context; stroke and fill alpha
// is the style color alpha multiplied by the style opacity. Labels use
// the Go Regular font at the size given by each text command.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/chart/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("png")
//	if err := rec.Playback(backend); err != nil {
//	    return err
//	}
//	backend.(recording.WriterBackend).WriteTo(w)
package raster

import (
	"errors"
	"image"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/recording"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

func init() {
	recording.Register("png", func() recording.Backend {
		return NewBackend()
	})
}

// DefaultFontSize is used for text commands that carry no size.
const DefaultFontSize = 11

// ErrNotRendered is returned when output is requested before End.
var ErrNotRendered = errors.New("raster: nothing rendered")

// Background is painted over the whole canvas by Begin.
var Background = gg.White

// fontSource parses the embedded Go Regular font once per process.
var fontSource = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// Backend renders recordings to a pixel image using gg.Context.
// It implements recording.Backend and recording.WriterBackend.
type Backend struct {
	ctx    *gg.Context
	width  int
	height int
	faces  map[float64]text.Face
	img    image.Image
	err    error
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates a width x height canvas filled with Background.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return chart.ErrInvalidSize
	}
	b.width = width
	b.height = height
	b.img = nil
	b.err = nil
	b.faces = make(map[float64]text.Face)
	b.ctx = gg.NewContext(width, height)
	b.ctx.ClearWithColor(Background)
	return nil
}

// End flushes the canvas and captures the image for output.
func (b *Backend) End() error {
	if b.ctx == nil {
		return ErrNotRendered
	}
	if err := b.ctx.Close(); err != nil && b.err == nil {
		b.err = err
	}
	b.img = b.ctx.Image()
	b.ctx = nil

	if b.err != nil {
		chart.Logger().Warn("raster: render failed", "error", b.err)
	}
	return b.err
}

// StrokePath strokes path with the style color and width.
func (b *Backend) StrokePath(path *gg.Path, style recording.Style) {
	if path == nil || path.NumVerbs() < 2 {
		return
	}
	b.applyStyle(style)
	b.ctx.SetLineWidth(style.Width)
	b.keep(b.ctx.StrokePath(path))
}

// FillPath fills path with the style color.
func (b *Backend) FillPath(path *gg.Path, style recording.Style) {
	if path == nil || path.NumVerbs() < 2 {
		return
	}
	b.applyStyle(style)
	b.keep(b.ctx.FillPath(path))
}

// DrawLine strokes a single segment.
func (b *Backend) DrawLine(seg recording.Segment, style recording.Style) {
	b.applyStyle(style)
	b.ctx.SetLineWidth(style.Width)
	b.ctx.MoveTo(seg.From.X, seg.From.Y)
	b.ctx.LineTo(seg.To.X, seg.To.Y)
	b.keep(b.ctx.Stroke())
}

// DrawText draws a label with its baseline at t.Y.
func (b *Backend) DrawText(t recording.TextCommand) {
	face, err := b.face(t.Size)
	if err != nil {
		b.keep(err)
		return
	}
	b.ctx.SetFont(face)
	b.applyStyle(t.Style)

	w, _ := text.Measure(t.Text, face)
	b.ctx.DrawString(t.Text, t.X-w*t.Anchor.Fraction(), t.Y)
}

// WriteTo encodes the rendered image as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.img == nil {
		return 0, ErrNotRendered
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// ContentType returns "image/png".
func (*Backend) ContentType() string {
	return "image/png"
}

// Image returns the rendered image, or nil before End.
func (b *Backend) Image() image.Image {
	return b.img
}

// Width returns the canvas width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the canvas height.
func (b *Backend) Height() int {
	return b.height
}

func (b *Backend) applyStyle(style recording.Style) {
	c := style.Paint()
	b.ctx.SetRGBA(c.R, c.G, c.B, c.A)
}

func (b *Backend) face(size float64) (text.Face, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	if f, ok := b.faces[size]; ok {
		return f, nil
	}
	src, err := fontSource()
	if err != nil {
		return nil, err
	}
	f := src.Face(size)
	b.faces[size] = f
	return f, nil
}

// keep records the first drawing error.
func (b *Backend) keep(err error) {
	if err != nil && b.err == nil {
		b.err = err
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
