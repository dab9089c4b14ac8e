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

// Evolution chart geometry.
const (
	evolutionAlphaMaxIndex = 2    // channel index mapped to the faintest opacity
	evolutionAlphaMin      = 0.25 // opacity of channels at or past that index
	labelGap               = 10   // gap between a value label and its gridline
	titleInset             = 25   // field title offset from the left margin
	titleDrop              = 10   // field title baseline below the band top
)

var (
	axisRuleStyle = recording.NewStyle(gg.Hex("#888888"))
	gridRuleStyle = recording.NewStyle(gg.Hex("#DDDDDD"))
	labelStyle    = recording.NewStyle(gg.Hex("#555555"))
	titleStyle    = recording.NewStyle(gg.Hex("#333333")).WithClass("title")
)

// EvolutionLayout holds the scales derived from an evolution dataset and
// a canvas size.
type EvolutionLayout struct {
	Fields []string

	// Extent covers every field value; Extents holds each field's own
	// range before nice rounding.
	Extent  [2]float64
	Extents map[string][2]float64

	// Bands partition the canvas height, field 0 at the top.
	Bands []scale.Band

	// Y maps each field's nice-rounded domain into its band, inverted.
	Y map[string]scale.Linear

	// X spans the first release day of the oldest version to the last
	// day of the newest version's first channel.
	X scale.Time

	// Alpha maps a channel index to the opacity of its series.
	Alpha scale.Pow

	// Points is the number of data points scanned.
	Points int
}

// LayoutEvolution scans groups and builds the scales of an evolution
// chart. It returns a nil layout and nil error when groups hold no data
// points, and a *MalformedRecordError when a point lacks one of the
// configured fields.
func LayoutEvolution(groups []VersionGroup, size Size, opts ...Option) (*EvolutionLayout, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	o := evolutionOptions(opts)
	return layoutEvolution(groups, size, &o)
}

func layoutEvolution(groups []VersionGroup, size Size, o *options) (*EvolutionLayout, error) {
	if len(o.fields) == 0 {
		return nil, scale.ErrNoFields
	}

	perField := make([]extent.Extent[float64], len(o.fields))
	var dates extent.Extent[int64]
	for _, g := range groups {
		for _, ch := range g.Channels {
			for i, p := range ch.Dates {
				for k, field := range o.fields {
					v, ok := p.Value(field)
					if !ok {
						return nil, &MalformedRecordError{
							Version: g.Version,
							Channel: ch.Channel,
							Index:   i,
							Field:   field,
							Reason:  missingReason(p.Fields, field),
						}
					}
					perField[k].Include(v)
				}
				dates.Include(p.Date.UnixMilli())
			}
		}
	}
	if dates.Empty() {
		return nil, nil
	}

	bands, err := scale.BandLayout(o.fields, [2]float64{0, float64(size.Height)}, o.padding)
	if err != nil {
		return nil, err
	}

	l := &EvolutionLayout{
		Fields:  o.fields,
		Extents: make(map[string][2]float64, len(o.fields)),
		Bands:   bands,
		Y:       make(map[string]scale.Linear, len(o.fields)),
		Alpha: scale.Pow{
			Exponent: 0.5,
			Domain:   [2]float64{0, evolutionAlphaMaxIndex},
			Range:    [2]float64{1, evolutionAlphaMin},
			Clamp:    true,
		},
		Points: dates.Count(),
	}

	var all extent.Extent[float64]
	for k, field := range o.fields {
		raw := perField[k].Bounds()
		l.Extents[field] = raw
		l.Y[field] = bands[k].Scale(scale.Nice(raw, o.ticks))
		all = all.Union(perField[k])
	}
	l.Extent = all.Bounds()

	domain, ok := evolutionDomain(groups)
	if !ok {
		Logger().Warn("chart: evolution date anchors missing, using full date range")
		domain = [2]time.Time{
			time.UnixMilli(dates.Min()).UTC(),
			time.UnixMilli(dates.Max()).UTC(),
		}
	}
	l.X = scale.NewTime(domain, [2]float64{
		o.margins.Left,
		float64(size.Width) - o.margins.Right,
	})

	return l, nil
}

// evolutionDomain returns the first date of the third-from-last channel
// of the oldest version and the last date of the first channel of the
// newest version. Versions with fewer than three channels use their first
// channel. It reports false when either series is empty.
func evolutionDomain(groups []VersionGroup) ([2]time.Time, bool) {
	oldest := groups[len(groups)-1].Channels
	newest := groups[0].Channels
	if len(oldest) == 0 || len(newest) == 0 {
		return [2]time.Time{}, false
	}
	first := oldest[max(len(oldest)-3, 0)].Dates
	last := newest[0].Dates
	if len(first) == 0 || len(last) == 0 {
		return [2]time.Time{}, false
	}
	return [2]time.Time{first[0].Date, last[len(last)-1].Date}, true
}

func missingReason(fields map[string]float64, field string) string {
	v, ok := fields[field]
	if !ok {
		return "missing"
	}
	if math.IsNaN(v) {
		return "is NaN"
	}
	return "is infinite"
}

// AssembleEvolution builds the evolution chart of groups for a canvas of
// the given size.
//
// Groups are ordered newest version first, and channels within a version
// leading channel first. The recording holds, in order: value ticks per
// field, one title per field, then for every version, channel and field a
// version label (leading channel only) and the series stroke. Empty
// channels are skipped.
//
// Input without data points yields a chart in StateEmpty and a nil error.
func AssembleEvolution(groups []VersionGroup, size Size, opts ...Option) (*Chart, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	o := evolutionOptions(opts)
	l, err := layoutEvolution(groups, size, &o)
	if err != nil {
		return nil, err
	}
	if l == nil {
		Logger().Debug("chart: evolution input empty")
		return empty(KindEvolution, size), nil
	}

	w := float64(size.Width)
	rec := recording.NewRecorder(size.Width, size.Height)

	for _, field := range l.Fields {
		for _, t := range scale.LinearTicks(l.Y[field], o.ticks, scale.DefaultFormat) {
			rule := gridRuleStyle
			if t.Primary {
				rule = axisRuleStyle
			}
			rec.Tick(recording.TickCommand{
				Rule: recording.Segment{
					From: gg.Pt(o.margins.Left, t.Pos),
					To:   gg.Pt(w, t.Pos),
				},
				Ruled: true,
				Label: recording.TextCommand{
					Text:   t.Label,
					X:      o.margins.Left - labelGap,
					Y:      t.Pos,
					Size:   o.fontSize,
					Anchor: recording.AnchorEnd,
					Style:  labelStyle,
				},
				Primary: t.Primary,
				Style:   rule.WithClass("tick"),
			})
		}
	}

	for _, b := range l.Bands {
		top, _ := b.Inner()
		rec.Text(recording.TextCommand{
			Text:  o.label(b.Field),
			X:     o.margins.Left + titleInset,
			Y:     top + titleDrop,
			Size:  o.fontSize,
			Style: titleStyle,
		})
	}

	x := func(p DataPoint) float64 { return l.X.Map(p.Date) }
	for vi, g := range groups {
		width := 1.0
		if vi == 0 {
			width = 2
		}
		for ci, ch := range g.Channels {
			if len(ch.Dates) == 0 {
				Logger().Warn("chart: skipping empty series",
					"version", g.Version, "channel", ch.Channel)
				continue
			}
			alpha := l.Alpha.Map(float64(ci))
			for k, field := range l.Fields {
				ys := l.Y[field]
				y := func(p DataPoint) float64 {
					v, _ := p.Value(field)
					return ys.Map(v)
				}
				color := o.color(k)
				if o.leading != "" && ch.Channel == o.leading {
					first := ch.Dates[0]
					rec.Text(recording.TextCommand{
						Text:  g.Version + "/" + ch.Channel,
						X:     x(first),
						Y:     y(first),
						Size:  o.fontSize,
						Style: recording.NewStyle(color).WithClass("version-label"),
					})
				}
				rec.StrokePath(shape.Line(ch.Dates, x, y),
					recording.NewStyle(color).
						WithWidth(width).
						WithOpacity(alpha).
						WithClass("channel-line"))
			}
		}
	}

	Logger().Debug("chart: evolution assembled",
		"versions", len(groups),
		"points", l.Points,
		"extent", l.Extent,
		"x", l.X.Domain,
		"commands", rec.Len())

	return &Chart{
		Kind:      KindEvolution,
		Size:      size,
		State:     StateReady,
		Recording: rec.Finish(),
	}, nil
}
