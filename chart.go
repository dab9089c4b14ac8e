package chart

import (
	"fmt"
	"io"

	"github.com/gogpu/chart/recording"
)

// Size is a canvas size in pixels.
type Size struct {
	Width, Height int
}

// Validate returns ErrInvalidSize unless both dimensions are positive.
func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.Width, s.Height)
	}
	return nil
}

// Kind identifies a chart variant.
type Kind uint8

const (
	KindEvolution Kind = iota // Banded multi-version percentile chart
	KindBurnup                // Opened/closed burn-up chart
)

// String returns "evolution" or "burnup".
func (k Kind) String() string {
	switch k {
	case KindEvolution:
		return "evolution"
	case KindBurnup:
		return "burnup"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// State is the assembly state of a Chart.
type State uint8

const (
	// StateEmpty means the input held no data points. The recording is
	// blank.
	StateEmpty State = iota

	// StateReady means all primitives were assembled.
	StateReady
)

// String returns "empty" or "ready".
func (s State) String() string {
	if s == StateReady {
		return "ready"
	}
	return "empty"
}

// Chart is the result of one assembly: the ordered drawable primitives
// for a canvas of Size.
type Chart struct {
	Kind      Kind
	Size      Size
	State     State
	Recording *recording.Recording
}

// Render replays the chart to backend.
func (c *Chart) Render(backend recording.Backend) error {
	return c.Recording.Playback(backend)
}

// Encode renders the chart with the registered writer backend named
// format ("png", "svg") and writes the result to w.
func (c *Chart) Encode(w io.Writer, format string) error {
	backend, err := recording.NewWriterBackend(format)
	if err != nil {
		return err
	}
	if err := c.Render(backend); err != nil {
		return fmt.Errorf("chart: render %s: %w", format, err)
	}
	if _, err := backend.WriteTo(w); err != nil {
		return fmt.Errorf("chart: write %s: %w", format, err)
	}
	return nil
}

// empty returns a blank chart of the given kind and size.
func empty(kind Kind, size Size) *Chart {
	return &Chart{
		Kind:      kind,
		Size:      size,
		State:     StateEmpty,
		Recording: recording.NewRecorder(size.Width, size.Height).Finish(),
	}
}
