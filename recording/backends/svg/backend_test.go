package svg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/recording"
	"github.com/gogpu/gg"
	ggsvg "github.com/gogpu/gg/svg"
)

func render(t *testing.T, w, h int, draw func(*recording.Recorder)) []byte {
	t.Helper()
	rec := recording.NewRecorder(w, h)
	draw(rec)
	backend := NewBackend()
	if err := rec.Finish().Playback(backend); err != nil {
		t.Fatalf("Playback failed: %v", err)
	}
	return backend.Bytes()
}

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered("svg") {
		t.Fatal("svg backend not registered")
	}
	backend, err := recording.NewWriterBackend("svg")
	if err != nil {
		t.Fatalf("NewWriterBackend(svg) error = %v", err)
	}
	if backend.ContentType() != "image/svg+xml" {
		t.Errorf("ContentType() = %q, want image/svg+xml", backend.ContentType())
	}
}

func TestBackendDocument(t *testing.T) {
	out := render(t, 300, 120, func(*recording.Recorder) {})

	doc, err := ggsvg.Parse(out)
	if err != nil {
		t.Fatalf("svg.Parse failed: %v\n%s", err, out)
	}
	if doc.Width != 300 || doc.Height != 120 {
		t.Errorf("document size = %vx%v, want 300x120", doc.Width, doc.Height)
	}
	if doc.ViewBox.Width != 300 || doc.ViewBox.Height != 120 {
		t.Errorf("viewBox = %+v, want 0 0 300 120", doc.ViewBox)
	}
	if len(doc.Elements) != 0 {
		t.Errorf("empty recording produced %d elements", len(doc.Elements))
	}
}

func TestBackendPaths(t *testing.T) {
	line := gg.NewPath()
	line.MoveTo(10, 20)
	line.LineTo(30.25, 40)
	area := gg.NewPath()
	area.MoveTo(0, 0)
	area.LineTo(10, 0)
	area.LineTo(10, 10)
	area.Close()

	out := render(t, 100, 100, func(r *recording.Recorder) {
		r.FillPath(area, recording.NewStyle(gg.Hex("#B6D806")).WithOpacity(0.5).WithClass("series", "series-area"))
		r.StrokePath(line, recording.NewStyle(gg.Hex("#FF8C8E")).WithWidth(2).WithClass("channel-line"))
	})

	doc, err := ggsvg.Parse(out)
	if err != nil {
		t.Fatalf("svg.Parse failed: %v\n%s", err, out)
	}
	if len(doc.Elements) != 2 {
		t.Fatalf("elements = %d, want 2\n%s", len(doc.Elements), out)
	}

	fill, ok := doc.Elements[0].(*ggsvg.PathElement)
	if !ok {
		t.Fatalf("element 0 is %T, want path", doc.Elements[0])
	}
	if fill.D != "M0,0L10,0L10,10Z" {
		t.Errorf("fill d = %q", fill.D)
	}
	if fill.Attrs.Fill != "#b6d806" || fill.Attrs.FillOpacity != 0.5 {
		t.Errorf("fill attrs = %q opacity %v, want #b6d806 0.5", fill.Attrs.Fill, fill.Attrs.FillOpacity)
	}

	stroke, ok := doc.Elements[1].(*ggsvg.PathElement)
	if !ok {
		t.Fatalf("element 1 is %T, want path", doc.Elements[1])
	}
	if stroke.D != "M10,20L30.25,40" {
		t.Errorf("stroke d = %q", stroke.D)
	}
	if stroke.Attrs.Fill != "none" || stroke.Attrs.Stroke != "#ff8c8e" || stroke.Attrs.StrokeWidth != 2 {
		t.Errorf("stroke attrs = %+v", stroke.Attrs)
	}

	s := string(out)
	if !strings.Contains(s, `class="series series-area"`) || !strings.Contains(s, `class="channel-line"`) {
		t.Errorf("classes missing from output:\n%s", s)
	}
}

func TestBackendSkipsEmptyPaths(t *testing.T) {
	out := render(t, 10, 10, func(r *recording.Recorder) {
		r.StrokePath(gg.NewPath(), recording.DefaultStyle)
	})
	if strings.Contains(string(out), "<path") {
		t.Errorf("empty path produced markup:\n%s", out)
	}
}

func TestBackendTicks(t *testing.T) {
	out := render(t, 200, 100, func(r *recording.Recorder) {
		r.Tick(recording.TickCommand{
			Rule:    recording.Segment{From: gg.Pt(50, 90), To: gg.Pt(200, 90)},
			Ruled:   true,
			Label:   recording.TextCommand{Text: "0", X: 40, Y: 90, Anchor: recording.AnchorEnd, Style: recording.DefaultStyle},
			Primary: true,
			Style:   recording.DefaultStyle.WithClass("tick", "tick-y"),
		})
		r.Tick(recording.TickCommand{
			Label: recording.TextCommand{Text: "Jan 01", X: 25, Y: 95, Style: recording.DefaultStyle},
			Style: recording.DefaultStyle.WithClass("tick", "tick-x"),
		})
	})

	doc, err := ggsvg.Parse(out)
	if err != nil {
		t.Fatalf("svg.Parse failed: %v\n%s", err, out)
	}
	if len(doc.Elements) != 2 {
		t.Fatalf("elements = %d, want 2 groups\n%s", len(doc.Elements), out)
	}

	axis, ok := doc.Elements[0].(*ggsvg.GroupElement)
	if !ok {
		t.Fatalf("element 0 is %T, want group", doc.Elements[0])
	}
	if len(axis.Children) != 1 {
		t.Fatalf("axis group children = %d, want the rule only (text is not parsed)", len(axis.Children))
	}
	if _, ok := axis.Children[0].(*ggsvg.LineElement); !ok {
		t.Errorf("axis child is %T, want line", axis.Children[0])
	}

	date, ok := doc.Elements[1].(*ggsvg.GroupElement)
	if !ok {
		t.Fatalf("element 1 is %T, want group", doc.Elements[1])
	}
	if len(date.Children) != 0 {
		t.Errorf("unruled tick has %d parsed children, want 0", len(date.Children))
	}

	s := string(out)
	for _, want := range []string{
		`<g class="tick tick-y tick-axis">`,
		`<line x1="50" y1="90" x2="200" y2="90"`,
		`text-anchor="end"`,
		`>0</text>`,
		`<g class="tick tick-x tick-secondary">`,
		`>Jan 01</text>`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
}

func TestBackendEscapesText(t *testing.T) {
	out := render(t, 100, 20, func(r *recording.Recorder) {
		r.Text(recording.TextCommand{Text: "57/beta <&>", X: 1, Y: 2, Style: recording.DefaultStyle})
	})
	if !strings.Contains(string(out), "57/beta &lt;&amp;&gt;") {
		t.Errorf("text not escaped:\n%s", out)
	}
	if _, err := ggsvg.Parse(out); err != nil {
		t.Errorf("svg.Parse failed: %v", err)
	}
}

func TestBackendLifecycle(t *testing.T) {
	backend := NewBackend()
	if err := backend.Begin(0, 10); !errors.Is(err, chart.ErrInvalidSize) {
		t.Errorf("Begin(0, 10) = %v, want ErrInvalidSize", err)
	}
	if err := backend.End(); !errors.Is(err, ErrNotRendered) {
		t.Errorf("End() before Begin = %v, want ErrNotRendered", err)
	}
	var buf bytes.Buffer
	if _, err := backend.WriteTo(&buf); !errors.Is(err, ErrNotRendered) {
		t.Errorf("WriteTo() before End = %v, want ErrNotRendered", err)
	}
	if backend.Bytes() != nil {
		t.Error("Bytes() before End should be nil")
	}

	if err := backend.Begin(5, 5); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := backend.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	n, err := backend.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if n != int64(buf.Len()) || !strings.HasSuffix(buf.String(), "</svg>\n") {
		t.Errorf("WriteTo wrote %d bytes: %q", n, buf.String())
	}
}

func TestPathData(t *testing.T) {
	p := gg.NewPath()
	p.MoveTo(0.0004, -0.0004)
	p.QuadraticTo(1, 2, 3, 4)
	p.CubicTo(1.23456, 2, 3, 4, 5, 6)
	p.Close()

	want := "M0,0Q1,2 3,4C1.235,2 3,4 5,6Z"
	if got := PathData(p); got != want {
		t.Errorf("PathData() = %q, want %q", got, want)
	}
	if got := PathData(nil); got != "" {
		t.Errorf("PathData(nil) = %q, want empty", got)
	}
}
