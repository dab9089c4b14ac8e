package recording

import "github.com/gogpu/gg"

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdStrokePath CommandType = iota // Stroke a series path
	CmdFillPath                      // Fill an area path
	CmdTick                          // Axis tick or gridline with label
	CmdText                          // Text annotation
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdStrokePath: "StrokePath",
	CmdFillPath:   "FillPath",
	CmdTick:       "Tick",
	CmdText:       "Text",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// StrokePathCommand strokes a path.
type StrokePathCommand struct {
	Path  *gg.Path
	Style Style
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// FillPathCommand fills a closed path.
type FillPathCommand struct {
	Path  *gg.Path
	Style Style
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// Anchor is the horizontal alignment of text relative to its position.
type Anchor uint8

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// String returns the SVG text-anchor keyword for a.
func (a Anchor) String() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// Fraction returns how much of the text width lies left of the anchor
// point: 0, 0.5 or 1.
func (a Anchor) Fraction() float64 {
	switch a {
	case AnchorMiddle:
		return 0.5
	case AnchorEnd:
		return 1
	default:
		return 0
	}
}

// TextCommand draws a single line of text. Y is the baseline.
type TextCommand struct {
	Text   string
	X, Y   float64
	Size   float64
	Anchor Anchor
	Style  Style
}

// Type implements Command.
func (TextCommand) Type() CommandType { return CmdText }

// Segment is a straight line between two points.
type Segment struct {
	From, To gg.Point
}

// TickCommand is one axis tick: an optional rule across the plot and a
// label. The first tick of an axis is Primary and doubles as the axis
// line; the rest are gridlines.
type TickCommand struct {
	Rule    Segment
	Ruled   bool
	Label   TextCommand
	Primary bool

	// Style applies to the rule. The label carries its own style.
	Style Style
}

// Type implements Command.
func (TickCommand) Type() CommandType { return CmdTick }
