// Package metrics collects per-run Prometheus counters and writes them to a
// node_exporter style textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by the collectors.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
	OutcomeMissing   = "missing"
	OutcomeSkipped   = "skipped"
	OutcomeWritten   = "written"
)

// Metrics holds the collectors for a single run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	attempts *prometheus.CounterVec
	cells    *prometheus.CounterVec
}

// New registers the run collectors on a private registry labelled with runID.
func New(runID string) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"run_id": runID}, registry))
	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgebench_llm_requests_total",
				Help: "Chat completion requests by role, model and outcome",
			},
			[]string{"role", "model", "outcome"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "judgebench_llm_request_duration_seconds",
				Help:    "Chat completion latency",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 12),
			},
			[]string{"role", "model"},
		),
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgebench_judge_attempts_total",
				Help: "Judge attempts by mode, judge and outcome",
			},
			[]string{"mode", "judge", "outcome"},
		),
		cells: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgebench_cells_total",
				Help: "Table cells processed by phase and outcome",
			},
			[]string{"phase", "outcome"},
		),
	}
}

// ObserveRequest records one chat completion call.
func (m *Metrics) ObserveRequest(role, model string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.requests.WithLabelValues(role, model, outcome).Inc()
	m.latency.WithLabelValues(role, model).Observe(elapsed.Seconds())
}

// ObserveAttempt records one judge attempt.
func (m *Metrics) ObserveAttempt(mode, judge, outcome string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(mode, judge, outcome).Inc()
}

// ObserveCell records the fate of one table cell.
func (m *Metrics) ObserveCell(phase, outcome string) {
	if m == nil {
		return
	}
	m.cells.WithLabelValues(phase, outcome).Inc()
}

// WriteTextfile writes the gathered metrics to path in the text exposition
// format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
