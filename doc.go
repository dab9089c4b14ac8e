// Package chart turns time-stamped metric series into chart geometry.
//
// # Overview
//
// chart assembles two dashboards: the evolution chart, which overlays the
// latency percentiles of every release channel of several versions in one
// band per metric field, and the burn-up chart, which stacks the open and
// closed counts of a bug list over time.
//
// An assembly is a pure function of a dataset and a canvas size. It
// returns a [Chart] whose [recording.Recording] lists the drawable
// primitives in paint order: ticks and gridlines, titles, area fills and
// series strokes, each in pixel coordinates with its own style.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/chart"
//	    _ "github.com/gogpu/chart/recording/backends/svg"
//	)
//
//	c, err := chart.AssembleBurnup(points, chart.Size{Width: 800, Height: 300})
//	if err != nil {
//	    return err
//	}
//	err = c.Encode(w, "svg")
//
// # Architecture
//
// The library is organized into:
//   - scale: linear, time and power scales, nice rounding, band layout and ticks
//   - shape: stroke and area paths over point sequences
//   - recording: the primitive list and its backends (png, svg)
//   - source: decoding and fetching of the dashboard datasets
//
// # Coordinate System
//
// Pixel coordinates follow gg:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down, so value scales are inverted
//
// # Errors
//
// Input without data points is not an error: the chart is returned in
// [StateEmpty] with a blank recording. A point that lacks a configured
// field fails the assembly with a [*MalformedRecordError]. A field whose
// values are all equal maps flat to the bottom of its band.
package chart
