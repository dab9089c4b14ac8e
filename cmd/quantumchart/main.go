// Command quantumchart renders release evolution and bug burn-up charts
// to PNG or SVG, either once from a dataset or continuously over HTTP.
//
// Usage:
//
//	quantumchart render -chart burnup -input burnup.json -output burnup.svg
//	quantumchart render -chart evolution -url https://dashboard -query 'metric=tp6' -format png
//	quantumchart serve -config quantumchart.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/internal/config"
	_ "github.com/gogpu/chart/recording/backends/raster"
	_ "github.com/gogpu/chart/recording/backends/svg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "render":
		err = runRender(ctx, args[1:], stdout, stderr)
	case "serve":
		err = runServe(ctx, args[1:], stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "quantumchart: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "quantumchart %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: quantumchart <command> [flags]

commands:
  render   assemble one chart and write it as PNG or SVG
  serve    serve charts over HTTP from the dashboard API
`)
}

// setup loads the configuration and installs the process logger.
func setup(path string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger := cfg.Logging.NewLogger(stderr)
	chart.SetLogger(logger)
	return cfg, logger, nil
}

func parseKind(s string) (chart.Kind, error) {
	switch s {
	case "evolution":
		return chart.KindEvolution, nil
	case "burnup":
		return chart.KindBurnup, nil
	default:
		return 0, fmt.Errorf("unknown chart %q (want evolution or burnup)", s)
	}
}
