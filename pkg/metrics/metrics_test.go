package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAppMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAppMetrics(reg)

	m.IncLogin("success")
	m.IncLogin("success")
	m.IncLogin("")
	m.IncTransition("new", "in_progress")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "gearguard_login_attempts_total", map[string]string{"outcome": "success"}); err != nil {
		t.Fatalf("fetch logins: %v", err)
	} else if got != 2 {
		t.Fatalf("expected success=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "gearguard_login_attempts_total", map[string]string{"outcome": "unknown"}); err != nil {
		t.Fatalf("fetch unknown: %v", err)
	} else if got != 1 {
		t.Fatalf("expected unknown=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "gearguard_request_status_transitions_total", map[string]string{"from": "new", "to": "in_progress"}); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected transitions=1, got %f", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *AppMetrics
	m.IncLogin("success")
	m.IncTransition("new", "scrap")

	NewAppMetrics(nil).IncLogin("success")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			if matchesLabels(metric.GetLabel(), labels) {
				return metric.GetCounter().GetValue(), nil
			}
		}
		return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
	}
	return 0, fmt.Errorf("metric %q not found", name)
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; ok && v == p.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
