// Package metrics exports engine counters to Prometheus.
package metrics

import (
	"net/http"

	"adas_workorders/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adas_workorders"

type WorkflowMetrics struct {
	registry      *prometheus.Registry
	actions       *prometheus.CounterVec
	created       *prometheus.CounterVec
	regressions   *prometheus.CounterVec
	autoReady     prometheus.Counter
	fetchFailures prometheus.Counter
	conflicts     prometheus.Counter
}

var _ interfaces.IWorkflowMetrics = (*WorkflowMetrics)(nil)

// NewWorkflowMetrics registers the engine collectors, plus the Go runtime and
// process collectors, on a private registry.
func NewWorkflowMetrics() *WorkflowMetrics {
	m := &WorkflowMetrics{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Inbound actions applied, by action and outcome.",
		}, []string{"action", "outcome"}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workorders_created_total",
			Help:      "Work orders created, by creating action.",
		}, []string{"action"}),
		regressions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_regressions_blocked_total",
			Help:      "Incoming statuses ignored because they ranked below the current one.",
		}, []string{"from", "requested"}),
		autoReady: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auto_ready_total",
			Help:      "Status moves triggered by a calibration report arriving.",
		}),
		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_fetch_failures_total",
			Help:      "Document fetches that failed or timed out.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_conflicts_total",
			Help:      "Full-record writes rejected by the version check.",
		}),
	}
	m.registry.MustRegister(
		m.actions, m.created, m.regressions, m.autoReady, m.fetchFailures, m.conflicts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *WorkflowMetrics) ActionApplied(action, outcome string) {
	m.actions.WithLabelValues(action, outcome).Inc()
}

func (m *WorkflowMetrics) WorkOrderCreated(action string) { m.created.WithLabelValues(action).Inc() }

func (m *WorkflowMetrics) RegressionBlocked(from, requested string) {
	m.regressions.WithLabelValues(from, requested).Inc()
}

func (m *WorkflowMetrics) AutoReadyTriggered()  { m.autoReady.Inc() }
func (m *WorkflowMetrics) DocumentFetchFailed() { m.fetchFailures.Inc() }
func (m *WorkflowMetrics) WriteConflict()       { m.conflicts.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *WorkflowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (m *WorkflowMetrics) Registry() *prometheus.Registry { return m.registry }
