package recording

import (
	"slices"

	"github.com/gogpu/gg"
)

// Recorder collects chart primitives in draw order.
// Use Finish to obtain an immutable Recording that can be replayed to
// any Backend.
//
// Example:
//
//	rec := recording.NewRecorder(800, 600)
//	rec.Tick(tick)
//	rec.FillPath(area, areaStyle)
//	rec.StrokePath(line, lineStyle)
//	r := rec.Finish()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
}

// NewRecorder creates a new Recorder for a canvas of the given size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 64),
	}
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int {
	return r.height
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// StrokePath records a stroke of path. A nil path is ignored.
func (r *Recorder) StrokePath(path *gg.Path, style Style) {
	if path == nil {
		return
	}
	r.commands = append(r.commands, StrokePathCommand{Path: path, Style: style})
}

// FillPath records a fill of path. A nil path is ignored.
func (r *Recorder) FillPath(path *gg.Path, style Style) {
	if path == nil {
		return
	}
	r.commands = append(r.commands, FillPathCommand{Path: path, Style: style})
}

// Tick records an axis tick.
func (r *Recorder) Tick(t TickCommand) {
	r.commands = append(r.commands, t)
}

// Text records a text annotation. Empty text is ignored.
func (r *Recorder) Text(t TextCommand) {
	if t.Text == "" {
		return
	}
	r.commands = append(r.commands, t)
}

// Finish returns an immutable Recording containing all recorded commands.
// The Recorder may keep recording afterwards; later commands do not
// affect the returned Recording.
func (r *Recorder) Finish() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: slices.Clip(slices.Clone(r.commands)),
	}
}

// Recording is an immutable, ordered list of chart primitives.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Len returns the number of commands.
func (r *Recording) Len() int {
	if r == nil {
		return 0
	}
	return len(r.commands)
}

// Commands returns a copy of the recorded commands.
func (r *Recording) Commands() []Command {
	if r == nil {
		return nil
	}
	return slices.Clone(r.commands)
}

// Count returns how many commands of type t the recording holds.
func (r *Recording) Count(t CommandType) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Playback replays the recording to the given backend.
//
// Ticks go to TickDrawer backends whole; other backends receive the rule
// as a DrawLine and the label as a DrawText.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return err
	}

	tickDrawer, _ := backend.(TickDrawer)
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case StrokePathCommand:
			backend.StrokePath(c.Path, c.Style)
		case FillPathCommand:
			backend.FillPath(c.Path, c.Style)
		case TickCommand:
			if tickDrawer != nil {
				tickDrawer.DrawTick(c)
				continue
			}
			if c.Ruled {
				backend.DrawLine(c.Rule, c.Style)
			}
			if c.Label.Text != "" {
				backend.DrawText(c.Label)
			}
		case TextCommand:
			backend.DrawText(c)
		}
	}

	return backend.End()
}
