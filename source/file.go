package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/chart"
)

// ReadEvolutions decodes a version evolution dataset from r.
func ReadEvolutions(r io.Reader) ([]chart.VersionGroup, error) {
	var groups []chart.VersionGroup
	if err := json.NewDecoder(r).Decode(&groups); err != nil {
		return nil, fmt.Errorf("read evolutions: %w", err)
	}
	return groups, nil
}

// ReadBurnup decodes a burn-up dataset from r.
func ReadBurnup(r io.Reader) ([]chart.BurnupPoint, error) {
	var points []chart.BurnupPoint
	if err := json.NewDecoder(r).Decode(&points); err != nil {
		return nil, fmt.Errorf("read burnup: %w", err)
	}
	return points, nil
}

// Open opens name for reading. "-" selects stdin, which is never closed.
func Open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}
