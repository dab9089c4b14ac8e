package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/chart"
	ggsvg "github.com/gogpu/gg/svg"
)

const burnupJSON = `[
  {"date": "2020-01-01", "opened": 10, "closed": 2},
  {"date": "2020-01-08", "opened": 15, "closed": 5},
  {"date": "2020-01-15", "opened": 12, "closed": 12}
]`

const evolutionsJSON = `[
  {"version": "58", "channels": [
    {"channel": "nightly", "dates": [
      {"date": "2020-03-01", "p50Avg": 110, "p95Avg": 300},
      {"date": "2020-03-08", "p50Avg": 104, "p95Avg": 290}
    ]}
  ]},
  {"version": "57", "channels": [
    {"channel": "nightly", "dates": [{"date": "2020-01-01", "p50Avg": 130, "p95Avg": 320}]},
    {"channel": "beta", "dates": [{"date": "2020-01-21", "p50Avg": 120, "p95Avg": 305}]},
    {"channel": "release", "dates": [{"date": "2020-02-11", "p50Avg": 115, "p95Avg": 298}]}
  ]}
]`

// isolate keeps the test away from the caller's configuration and
// restores the package logger afterwards.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("QUANTUMCHART_CONFIG", "")
	t.Setenv("QUANTUMCHART_UPSTREAM_URL", "")
	t.Cleanup(func() { chart.SetLogger(nil) })
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != 2 {
		t.Errorf("run() = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "usage: quantumchart") {
		t.Errorf("stderr = %q, want usage", stderr.String())
	}

	stderr.Reset()
	if code := run(context.Background(), []string{"draw"}, &stdout, &stderr); code != 2 {
		t.Errorf("run(draw) = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), `unknown command "draw"`) {
		t.Errorf("stderr = %q", stderr.String())
	}

	stdout.Reset()
	if code := run(context.Background(), []string{"help"}, &stdout, &stderr); code != 0 {
		t.Errorf("run(help) = %d, want 0", code)
	}
}

func TestRenderFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "evolutions.json", evolutionsJSON)
	output := filepath.Join(dir, "evolution.svg")

	var stdout, stderr bytes.Buffer
	args := []string{"render", "-chart", "evolution", "-input", input, "-output", output, "-width", "640", "-height", "320"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := ggsvg.Parse(data)
	if err != nil {
		t.Fatalf("svg.Parse failed: %v", err)
	}
	if doc.Width != 640 || doc.Height != 320 {
		t.Errorf("document size = %vx%v, want 640x320", doc.Width, doc.Height)
	}
	if !strings.Contains(string(data), "58/nightly") {
		t.Error("output is missing the version label")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing when writing a file", stdout.String())
	}
}

func TestRenderStdout(t *testing.T) {
	isolate(t)
	input := writeFile(t, t.TempDir(), "burnup.json", burnupJSON)

	var stdout, stderr bytes.Buffer
	args := []string{"render", "-chart", "burnup", "-input", input, "-format", "svg"}
	if code := run(context.Background(), args, &stdout, &stderr); code != 0 {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `class="series series-area series-0"`) {
		t.Errorf("stdout is not a burn-up SVG:\n%s", stdout.String())
	}
}

func TestRenderErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	malformed := writeFile(t, dir, "bad.json", `[{"date": "2020-01-01", "opened": 1}]`)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"render"}, "-input or -url"},
		{"unknown chart", []string{"render", "-chart", "pie", "-input", malformed}, `unknown chart "pie"`},
		{"malformed", []string{"render", "-chart", "burnup", "-input", malformed}, "malformed record"},
		{"size", []string{"render", "-input", malformed, "-width", "-3"}, "canvas size"},
		{"watch stdin", []string{"render", "-input", "-", "-watch"}, "-watch needs an -input file"},
		{"missing", []string{"render", "-input", filepath.Join(dir, "absent.json")}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr); code != 1 {
				t.Errorf("run() = %d, want 1", code)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want mention of %q", stderr.String(), tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"chart.svg": "svg",
		"CHART.SVG": "svg",
		"chart.png": "png",
		"-":         "png",
	}
	for in, want := range tests {
		if got := formatFromPath(in); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := parseKind("burnup"); err != nil || k != chart.KindBurnup {
		t.Errorf("parseKind(burnup) = %v, %v", k, err)
	}
	if _, err := parseKind("Burnup"); err == nil {
		t.Error("parseKind is case sensitive")
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "burnup.json", burnupJSON)
	writeFile(t, dir, "other.json", "{}")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renders := make(chan struct{}, 16)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- watch(ctx, input, logger, func() error {
			renders <- struct{}{}
			return nil
		})
	}()

	// The watcher may not be armed yet, so keep touching the file.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-renders:
			break wait
		case <-tick.C:
			writeFile(t, dir, "burnup.json", burnupJSON)
		case <-deadline:
			t.Fatal("no re-render after writing the input")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
