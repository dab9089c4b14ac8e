// Package recording holds the drawable primitive list produced by the
// chart assemblers and replays it onto output backends.
//
// # Architecture
//
// The package follows a Command Pattern with three parts:
//
//   - Recorder: collects primitives in draw order
//   - Recording: the immutable, ordered primitive list
//   - Backend: renders a Recording to an output format
//
// Primitives carry absolute pixel coordinates. There is no transform or
// clip state; every command is self-contained, with its own Style.
//
// # Commands
//
//   - StrokePathCommand: a series line
//   - FillPathCommand: a filled area between two boundaries
//   - TickCommand: an optional rule segment plus its label
//   - TextCommand: a free text annotation
//
// # Playback
//
//	rec := recording.NewRecorder(800, 600)
//	rec.StrokePath(path, recording.Style{Color: gg.Hex("#FF8C8E"), Opacity: 1, Width: 2})
//	r := rec.Finish()
//
//	b, err := recording.NewBackend("svg")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(b); err != nil {
//	    return err
//	}
//	b.(recording.WriterBackend).WriteTo(os.Stdout)
//
// # Output Formats
//
// Each backend package registers one output format when imported. A
// format nobody imported yields ErrUnknownFormat:
//
//	import _ "github.com/gogpu/chart/recording/backends/raster" // "png"
//	import _ "github.com/gogpu/chart/recording/backends/svg"    // "svg"
package recording
