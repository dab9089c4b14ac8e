package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue sums the samples of the named family whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metric
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := Register(reg); err != nil {
		t.Errorf("second Register() error = %v, want nil", err)
	}
}

func TestObserveRender(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	ok := map[string]string{"chart": "burnup", "format": "svg", "outcome": OutcomeSuccess}
	empty := map[string]string{"chart": "burnup", "format": "svg", "outcome": OutcomeEmpty}
	okBefore := counterValue(t, reg, "quantumchart_renders_total", ok)
	emptyBefore := counterValue(t, reg, "quantumchart_renders_total", empty)

	ObserveRender("burnup", "svg", 3*time.Millisecond, OutcomeSuccess)
	ObserveRender("burnup", "svg", -time.Second, "whatever")
	ObserveRender("burnup", "svg", time.Millisecond, OutcomeEmpty)

	if got := counterValue(t, reg, "quantumchart_renders_total", ok) - okBefore; got != 2 {
		t.Errorf("success renders = %v, want 2", got)
	}
	if got := counterValue(t, reg, "quantumchart_renders_total", empty) - emptyBefore; got != 1 {
		t.Errorf("empty renders = %v, want 1", got)
	}
}

func TestObserveFetch(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	failed := map[string]string{"dataset": "evolutions", "outcome": OutcomeError}
	before := counterValue(t, reg, "quantumchart_upstream_fetches_total", failed)

	ObserveFetch("evolutions", errors.New("connection refused"))
	ObserveFetch("evolutions", nil)

	if got := counterValue(t, reg, "quantumchart_upstream_fetches_total", failed) - before; got != 1 {
		t.Errorf("failed fetches = %v, want 1", got)
	}
}
