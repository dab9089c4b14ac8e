package main

import (
	"context"
	"io"

	"github.com/gogpu/chart"
	"github.com/gogpu/chart/internal/metrics"
	"github.com/gogpu/chart/source"
)

// job describes one chart to assemble.
type job struct {
	kind chart.Kind
	size chart.Size
	opts []chart.Option
}

func (j job) assemble(groups []chart.VersionGroup, points []chart.BurnupPoint) (*chart.Chart, error) {
	if j.kind == chart.KindBurnup {
		return chart.AssembleBurnup(points, j.size, j.opts...)
	}
	return chart.AssembleEvolution(groups, j.size, j.opts...)
}

// read decodes the dataset for j.kind from r and assembles it.
func (j job) read(r io.Reader) (*chart.Chart, error) {
	if j.kind == chart.KindBurnup {
		points, err := source.ReadBurnup(r)
		if err != nil {
			return nil, err
		}
		return j.assemble(nil, points)
	}
	groups, err := source.ReadEvolutions(r)
	if err != nil {
		return nil, err
	}
	return j.assemble(groups, nil)
}

// fetch loads the dataset for j.kind from the dashboard API and
// assembles it. query only applies to evolutions.
func (j job) fetch(ctx context.Context, client *source.Client, query string) (*chart.Chart, error) {
	if j.kind == chart.KindBurnup {
		points, err := client.Burnup(ctx)
		metrics.ObserveFetch("burnup", err)
		if err != nil {
			return nil, err
		}
		return j.assemble(nil, points)
	}
	groups, err := client.Evolutions(ctx, query)
	metrics.ObserveFetch("evolutions", err)
	if err != nil {
		return nil, err
	}
	return j.assemble(groups, nil)
}
