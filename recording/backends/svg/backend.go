// Package svg provides the "svg" backend for the recording system.
//
// The output is a standalone SVG document with one element per primitive:
// series as <path>, ticks as <g class="tick ..."> groups holding a <line>
// and a <text>, and annotations as <text>. Style classes are kept on the
// elements so pages can restyle the chart with CSS.
//
//	import _ "github.com/gogpu/chart/recording/backends/svg"
//
//	backend, _ := recording.NewBackend("svg")
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/recording"
	"github.com/gogpu/gg"
)

func init() {
	recording.Register("svg", func() recording.Backend {
		return NewBackend()
	})
}

// DefaultFontSize is used for text commands that carry no size.
const DefaultFontSize = 11

// ErrNotRendered is returned when output is requested before End.
var ErrNotRendered = errors.New("svg: nothing rendered")

// Backend writes recordings as SVG markup.
// It implements recording.Backend, recording.TickDrawer and
// recording.WriterBackend.
type Backend struct {
	buf  bytes.Buffer
	open bool
	done bool
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.TickDrawer    = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a new SVG backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin starts a new document of the given size.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return chart.ErrInvalidSize
	}
	b.buf.Reset()
	b.open, b.done = true, false
	fmt.Fprintf(&b.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	return nil
}

// End closes the document.
func (b *Backend) End() error {
	if !b.open {
		return ErrNotRendered
	}
	b.buf.WriteString("</svg>\n")
	b.open, b.done = false, true
	return nil
}

// StrokePath writes an unfilled <path>.
func (b *Backend) StrokePath(path *gg.Path, style recording.Style) {
	d := PathData(path)
	if d == "" {
		return
	}
	b.buf.WriteString(`<path d="`)
	b.buf.WriteString(d)
	b.buf.WriteString(`" fill="none"`)
	b.strokeAttrs(style)
	b.classAttr(style.Class)
	b.buf.WriteString("/>\n")
}

// FillPath writes a filled <path>.
func (b *Backend) FillPath(path *gg.Path, style recording.Style) {
	d := PathData(path)
	if d == "" {
		return
	}
	b.buf.WriteString(`<path d="`)
	b.buf.WriteString(d)
	b.buf.WriteString(`"`)
	b.fillAttrs(style)
	b.classAttr(style.Class)
	b.buf.WriteString("/>\n")
}

// DrawLine writes a <line>.
func (b *Backend) DrawLine(seg recording.Segment, style recording.Style) {
	b.line(seg, style)
	b.buf.WriteString("\n")
}

// DrawText writes a <text> element.
func (b *Backend) DrawText(t recording.TextCommand) {
	b.text(t)
	b.buf.WriteString("\n")
}

// DrawTick writes a <g> group holding the tick's rule and label. The group
// is classed "tick-axis" for the primary tick and "tick-secondary" for
// the others, after any classes from the tick style.
func (b *Backend) DrawTick(t recording.TickCommand) {
	kind := "tick-secondary"
	if t.Primary {
		kind = "tick-axis"
	}
	style := t.Style
	if style.Class == "" {
		style.Class = "tick"
	}
	b.buf.WriteString("<g")
	b.classAttr(style.WithClass(kind).Class)
	b.buf.WriteString(">")
	if t.Ruled {
		style.Class = ""
		b.line(t.Rule, style)
	}
	if t.Label.Text != "" {
		b.text(t.Label)
	}
	b.buf.WriteString("</g>\n")
}

// WriteTo writes the finished document.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.done {
		return 0, ErrNotRendered
	}
	n, err := w.Write(b.buf.Bytes())
	return int64(n), err
}

// ContentType returns "image/svg+xml".
func (*Backend) ContentType() string {
	return "image/svg+xml"
}

// Bytes returns the finished document, or nil before End.
func (b *Backend) Bytes() []byte {
	if !b.done {
		return nil
	}
	return b.buf.Bytes()
}

func (b *Backend) line(seg recording.Segment, style recording.Style) {
	fmt.Fprintf(&b.buf, `<line x1="%s" y1="%s" x2="%s" y2="%s"`,
		num(seg.From.X), num(seg.From.Y), num(seg.To.X), num(seg.To.Y))
	b.strokeAttrs(style)
	b.classAttr(style.Class)
	b.buf.WriteString("/>")
}

func (b *Backend) text(t recording.TextCommand) {
	size := t.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	fmt.Fprintf(&b.buf, `<text x="%s" y="%s" font-size="%s"`, num(t.X), num(t.Y), num(size))
	if t.Anchor != recording.AnchorStart {
		fmt.Fprintf(&b.buf, ` text-anchor="%s"`, t.Anchor)
	}
	b.fillAttrs(t.Style)
	b.classAttr(t.Style.Class)
	b.buf.WriteString(">")
	// bytes.Buffer writes never fail.
	_ = xml.EscapeText(&b.buf, []byte(t.Text))
	b.buf.WriteString("</text>")
}

func (b *Backend) strokeAttrs(style recording.Style) {
	c := style.Paint()
	fmt.Fprintf(&b.buf, ` stroke="%s" stroke-width="%s"`, hexColor(c), num(style.Width))
	if c.A < 1 {
		fmt.Fprintf(&b.buf, ` stroke-opacity="%s"`, num(c.A))
	}
}

func (b *Backend) fillAttrs(style recording.Style) {
	c := style.Paint()
	fmt.Fprintf(&b.buf, ` fill="%s"`, hexColor(c))
	if c.A < 1 {
		fmt.Fprintf(&b.buf, ` fill-opacity="%s"`, num(c.A))
	}
}

func (b *Backend) classAttr(class string) {
	if class == "" {
		return
	}
	b.buf.WriteString(` class="`)
	_ = xml.EscapeText(&b.buf, []byte(class))
	b.buf.WriteString(`"`)
}

// PathData returns the SVG path data ("d" attribute) for path, with
// coordinates rounded to three decimals. It returns "" for a path that
// draws nothing.
func PathData(path *gg.Path) string {
	if path == nil || path.NumVerbs() == 0 {
		return ""
	}
	var d []byte
	path.Iterate(func(verb gg.PathVerb, coords []float64) {
		switch verb {
		case gg.MoveTo:
			d = append(d, 'M')
		case gg.LineTo:
			d = append(d, 'L')
		case gg.QuadTo:
			d = append(d, 'Q')
		case gg.CubicTo:
			d = append(d, 'C')
		case gg.Close:
			d = append(d, 'Z')
			return
		}
		for i := 0; i < len(coords); i += 2 {
			if i > 0 {
				d = append(d, ' ')
			}
			d = appendNum(d, coords[i])
			d = append(d, ',')
			d = appendNum(d, coords[i+1])
		}
	})
	return string(d)
}

func num(v float64) string {
	return string(appendNum(nil, v))
}

func appendNum(dst []byte, v float64) []byte {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.AppendFloat(dst, v, 'f', -1, 64)
}

func hexColor(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 255))
}
