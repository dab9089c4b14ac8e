package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/internal/metrics"
	"github.com/gogpu/chart/source"
)

type renderFlags struct {
	config string
	chart  string
	input  string
	url    string
	query  string
	format string
	output string
	width  int
	height int
	watch  bool
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, error) {
	f := &renderFlags{}
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "path to configuration file")
	fs.StringVar(&f.chart, "chart", "evolution", "chart to render: evolution or burnup")
	fs.StringVar(&f.input, "input", "", "JSON dataset file, - for stdin")
	fs.StringVar(&f.url, "url", "", "dashboard API base URL (overrides the configured upstream)")
	fs.StringVar(&f.query, "query", "", "raw query string for the evolutions API")
	fs.StringVar(&f.format, "format", "", "output format: png or svg (default from -output extension)")
	fs.StringVar(&f.output, "output", "-", "output file, - for stdout")
	fs.IntVar(&f.width, "width", 0, "canvas width (default from config)")
	fs.IntVar(&f.height, "height", 0, "canvas height (default from config)")
	fs.BoolVar(&f.watch, "watch", false, "re-render whenever -input changes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if f.format == "" {
		f.format = formatFromPath(f.output)
	}
	if f.watch && (f.input == "" || f.input == "-") {
		return nil, errors.New("-watch needs an -input file")
	}
	if f.watch && f.output == "-" {
		return nil, errors.New("-watch needs an -output file")
	}
	return f, nil
}

func formatFromPath(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return "svg"
	}
	return "png"
}

func runRender(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseRenderFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, logger, err := setup(f.config, stderr)
	if err != nil {
		return err
	}

	kind, err := parseKind(f.chart)
	if err != nil {
		return err
	}
	opts, err := cfg.Chart.Options()
	if err != nil {
		return err
	}
	s := job{kind: kind, size: cfg.Chart.Size(), opts: opts}
	if f.width != 0 {
		s.size.Width = f.width
	}
	if f.height != 0 {
		s.size.Height = f.height
	}
	if err := s.size.Validate(); err != nil {
		return err
	}

	if f.input == "" {
		baseURL := f.url
		if baseURL == "" {
			baseURL = cfg.Upstream.BaseURL
		}
		if baseURL == "" {
			return errors.New("one of -input or -url is required")
		}
		client := source.NewClient(baseURL, cfg.Upstream.EvolutionsPath, cfg.Upstream.BurnupPath, cfg.Upstream.Timeout)
		c, err := s.fetch(ctx, client, f.query)
		if err != nil {
			return err
		}
		return writeChart(c, f.format, f.output, stdout)
	}

	if err := renderFile(s, f, stdout); err != nil {
		return err
	}
	if !f.watch {
		return nil
	}
	return watch(ctx, f.input, logger, func() error {
		return renderFile(s, f, stdout)
	})
}

// renderFile renders the dataset at f.input to f.output.
func renderFile(s job, f *renderFlags, stdout io.Writer) error {
	start := time.Now()
	in, err := source.Open(f.input)
	if err != nil {
		return err
	}
	defer in.Close()

	c, err := s.read(in)
	if err != nil {
		metrics.ObserveRender(s.kind.String(), f.format, time.Since(start), metrics.OutcomeError)
		return err
	}
	if err := writeChart(c, f.format, f.output, stdout); err != nil {
		metrics.ObserveRender(s.kind.String(), f.format, time.Since(start), metrics.OutcomeError)
		return err
	}
	metrics.ObserveRender(s.kind.String(), f.format, time.Since(start), outcome(c))
	chart.Logger().Info("chart rendered",
		slog.String("chart", s.kind.String()),
		slog.String("state", c.State.String()),
		slog.String("output", f.output))
	return nil
}

// writeChart encodes c to name, or to stdout when name is "-". A file is
// written under a temporary name and renamed, so readers never see a
// partial chart.
func writeChart(c *chart.Chart, format, name string, stdout io.Writer) error {
	if name == "-" {
		return c.Encode(stdout, format)
	}
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if err := c.Encode(tmp, format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

func outcome(c *chart.Chart) string {
	if c.State == chart.StateEmpty {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeSuccess
}

// watch calls render after every write to name until ctx is done. The
// parent directory is watched so editors that replace the file are seen.
// Render errors are logged and the previous output is kept.
func watch(ctx context.Context, name string, logger *slog.Logger, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed creating file watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(name)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", name, err)
	}
	logger.Info("watching dataset", slog.String("input", target))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if err := render(); err != nil {
				logger.Warn("re-render failed", slog.String("input", target), slog.Any("error", err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", slog.Any("error", err))
		}
	}
}
