package chart

import (
	"math"
	"time"

	"github.com/gogpu/chart/internal/extent"
	"github.com/gogpu/chart/recording"
	"github.com/gogpu/chart/scale"
	"github.com/gogpu/chart/shape"
	"github.com/gogpu/gg"
)

// Burn-up label placement.
const (
	burnupLabelInset  = 2 // value labels sit this far right of x = 0
	burnupDateInset   = 5 // date label baseline above the canvas bottom
	burnupStrokeWidth = 2
)

// BurnupLayout holds the scales and derived series of a burn-up chart.
type BurnupLayout struct {
	// X spans the earliest to the latest date.
	X scale.Time

	// Domain is [0, max(opened)] before nice rounding. Y maps the
	// rounded domain onto the plot height, inverted.
	Domain [2]float64
	Y      scale.Linear

	// Open holds opened-closed and Total holds opened, per point.
	Open  []float64
	Total []float64
}

// LayoutBurnup builds the scales of a burn-up chart. It returns a nil
// layout and nil error for empty input, and a *MalformedRecordError for a
// point without a date or with a non-finite count.
func LayoutBurnup(points []BurnupPoint, size Size, opts ...Option) (*BurnupLayout, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	o := burnupOptions(opts)
	return layoutBurnup(points, size, &o)
}

func layoutBurnup(points []BurnupPoint, size Size, o *options) (*BurnupLayout, error) {
	if len(points) == 0 {
		return nil, nil
	}

	var dates extent.Extent[int64]
	var opened extent.Extent[float64]
	l := &BurnupLayout{
		Open:  make([]float64, len(points)),
		Total: make([]float64, len(points)),
	}
	for i, p := range points {
		if p.Date.IsZero() {
			return nil, &MalformedRecordError{Index: i, Field: "date"}
		}
		if err := finite(i, "opened", p.Opened); err != nil {
			return nil, err
		}
		if err := finite(i, "closed", p.Closed); err != nil {
			return nil, err
		}
		dates.Include(p.Date.UnixMilli())
		opened.Include(p.Opened)
		l.Open[i] = p.Open()
		l.Total[i] = p.Opened
	}

	h := float64(size.Height)
	l.Domain = [2]float64{0, opened.Max()}
	l.Y = scale.NewLinear(scale.Nice(l.Domain, o.ticks), [2]float64{
		h - o.margins.Bottom,
		o.margins.Top,
	})
	l.X = scale.NewTime(
		[2]time.Time{
			time.UnixMilli(dates.Min()).UTC(),
			time.UnixMilli(dates.Max()).UTC(),
		},
		[2]float64{o.margins.Left, float64(size.Width) - o.margins.Right},
	)
	return l, nil
}

func finite(i int, field string, v float64) error {
	switch {
	case math.IsNaN(v):
		return &MalformedRecordError{Index: i, Field: field, Reason: "is NaN"}
	case math.IsInf(v, 0):
		return &MalformedRecordError{Index: i, Field: field, Reason: "is infinite"}
	}
	return nil
}

// AssembleBurnup builds the burn-up chart of points for a canvas of the
// given size. Points are drawn in input order.
//
// The recording holds, in order: value ticks with gridlines, date ticks
// labelled along the bottom edge, the open area (0 to opened-closed), the
// closed area (opened-closed to opened), the open stroke and the total
// stroke.
//
// Empty input yields a chart in StateEmpty and a nil error.
func AssembleBurnup(points []BurnupPoint, size Size, opts ...Option) (*Chart, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	o := burnupOptions(opts)
	l, err := layoutBurnup(points, size, &o)
	if err != nil {
		return nil, err
	}
	if l == nil {
		Logger().Debug("chart: burnup input empty")
		return empty(KindBurnup, size), nil
	}

	w, h := float64(size.Width), float64(size.Height)
	rec := recording.NewRecorder(size.Width, size.Height)

	for _, t := range scale.LinearTicks(l.Y, o.ticks, scale.IntegerFormat) {
		rule := gridRuleStyle
		if t.Primary {
			rule = axisRuleStyle
		}
		rec.Tick(recording.TickCommand{
			Rule:  recording.Segment{From: gg.Pt(0, t.Pos), To: gg.Pt(w, t.Pos)},
			Ruled: true,
			Label: recording.TextCommand{
				Text:  t.Label,
				X:     burnupLabelInset,
				Y:     t.Pos,
				Size:  o.fontSize,
				Style: labelStyle,
			},
			Primary: t.Primary,
			Style:   rule.WithClass("tick", "tick-y"),
		})
	}

	for _, t := range scale.DateTicks(l.X, o.dateTicks, scale.DateFormat) {
		rec.Tick(recording.TickCommand{
			Label: recording.TextCommand{
				Text:  t.Label,
				X:     t.Pos,
				Y:     h - burnupDateInset,
				Size:  o.fontSize,
				Style: labelStyle,
			},
			Primary: t.Primary,
			Style:   gridRuleStyle.WithClass("tick", "tick-x"),
		})
	}

	x := func(p BurnupPoint) float64 { return l.X.Map(p.Date) }
	zero := l.Y.Map(0)
	seriesOf := func(vs []float64) []float64 {
		ys := make([]float64, len(vs))
		for i, v := range vs {
			ys[i] = l.Y.Map(v)
		}
		return ys
	}
	openY, totalY := seriesOf(l.Open), seriesOf(l.Total)

	rows := make([]burnupRow, len(points))
	for i, p := range points {
		rows[i] = burnupRow{x: x(p), open: openY[i], total: totalY[i]}
	}

	rowX := func(r burnupRow) float64 { return r.x }
	rowOpen := func(r burnupRow) float64 { return r.open }
	rowTotal := func(r burnupRow) float64 { return r.total }
	rowZero := func(burnupRow) float64 { return zero }

	openColor, totalColor := o.color(0), o.color(1)
	rec.FillPath(shape.Area(rows, rowX, rowZero, rowOpen),
		recording.NewStyle(openColor).
			WithOpacity(o.areaOpacity).
			WithClass("series", "series-area", "series-0"))
	rec.FillPath(shape.Area(rows, rowX, rowOpen, rowTotal),
		recording.NewStyle(totalColor).
			WithOpacity(o.areaOpacity).
			WithClass("series", "series-area", "series-1"))
	rec.StrokePath(shape.Line(rows, rowX, rowOpen),
		recording.NewStyle(openColor).
			WithWidth(burnupStrokeWidth).
			WithClass("series", "series-path", "series-0"))
	rec.StrokePath(shape.Line(rows, rowX, rowTotal),
		recording.NewStyle(totalColor).
			WithWidth(burnupStrokeWidth).
			WithClass("series", "series-path", "series-1"))

	Logger().Debug("chart: burnup assembled",
		"points", len(points),
		"domain", l.Domain,
		"y", l.Y.Domain,
		"x", l.X.Domain,
		"commands", rec.Len())

	return &Chart{
		Kind:      KindBurnup,
		Size:      size,
		State:     StateReady,
		Recording: rec.Finish(),
	}, nil
}

// burnupRow is one point in pixel space.
type burnupRow struct {
	x, open, total float64
}
