package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics - счётчики входов и переходов статусов заявок.
type AppMetrics struct {
	logins      *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewAppMetrics registers the counters on the provided registerer.
// nil registerer gives a no-op collector.
func NewAppMetrics(reg prometheus.Registerer) *AppMetrics {
	if reg == nil {
		return &AppMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gearguard_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gearguard_request_status_transitions_total",
		Help: "Maintenance request status transitions.",
	}, []string{"from", "to"})
	reg.MustRegister(logins, transitions)
	return &AppMetrics{
		logins:      logins,
		transitions: transitions,
	}
}

// IncLogin increments the login counter for the given outcome.
func (m *AppMetrics) IncLogin(outcome string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncTransition increments the transition counter.
func (m *AppMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
