// Package metrics exports Prometheus collectors for handle lifecycle events.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks native subsystem initialization and handle churn. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	initAttempts    *prometheus.CounterVec
	opened          *prometheus.CounterVec
	released        *prometheus.CounterVec
	destroyFailures *prometheus.CounterVec
	live            *prometheus.GaugeVec
}

// New builds the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		initAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cufile_subsystem_init_attempts_total",
				Help: "Native subsystem initialization attempts by result",
			},
			[]string{"result"},
		),
		opened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cufile_handles_opened_total",
				Help: "Native handles constructed",
			},
			[]string{"kind"},
		),
		released: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cufile_handles_released_total",
				Help: "Native handles released",
			},
			[]string{"kind"},
		),
		destroyFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cufile_handle_destroy_failures_total",
				Help: "Native destroy calls that reported an error",
			},
			[]string{"kind"},
		),
		live: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cufile_handles_live",
				Help: "Native handles currently open",
			},
			[]string{"kind"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.initAttempts, m.opened, m.released, m.destroyFailures, m.live)
	}
	return m
}

func (m *Metrics) InitAttempt(ok bool) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.initAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) HandleOpened(kind string) {
	if m == nil {
		return
	}
	m.opened.WithLabelValues(kind).Inc()
	m.live.WithLabelValues(kind).Inc()
}

func (m *Metrics) HandleReleased(kind string) {
	if m == nil {
		return
	}
	m.released.WithLabelValues(kind).Inc()
	m.live.WithLabelValues(kind).Dec()
}

func (m *Metrics) DestroyFailed(kind string) {
	if m == nil {
		return
	}
	m.destroyFailures.WithLabelValues(kind).Inc()
}
