package generator

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/willfong/fintech-datagen/internal/models"
)

const metricsNamespace = "datagen"

// Metrics counts what a generation run produced. Each run owns its own
// registry so concurrent runs (and tests) never share counters.
type Metrics struct {
	registry *prometheus.Registry

	RowsGenerated *prometheus.CounterVec
	Transactions  *prometheus.CounterVec
	RiskEvents    *prometheus.CounterVec
	PhaseDuration *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RowsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rows_generated_total",
				Help:      "Rows generated per output table.",
			},
			[]string{"table"},
		),
		Transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transactions_total",
				Help:      "Generated transactions by type and status.",
			},
			[]string{"type", "status"},
		),
		RiskEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "risk_events_total",
				Help:      "Generated risk events by type and severity.",
			},
			[]string{"event_type", "severity"},
		),
		PhaseDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "phase_duration_seconds",
				Help:      "Wall time of each generation phase.",
			},
			[]string{"phase"},
		),
	}

	m.registry.MustRegister(m.RowsGenerated, m.Transactions, m.RiskEvents, m.PhaseDuration)
	return m
}

// Registry exposes the registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AddRows counts n rows for a table
func (m *Metrics) AddRows(table string, n int) {
	m.RowsGenerated.WithLabelValues(table).Add(float64(n))
}

// ObserveTransactions counts transactions by type and status
func (m *Metrics) ObserveTransactions(txns []models.Transaction) {
	for i := range txns {
		m.Transactions.WithLabelValues(string(txns[i].Type), string(txns[i].Status)).Inc()
	}
}

// ObserveRiskEvents counts risk events by type and severity
func (m *Metrics) ObserveRiskEvents(events []models.RiskEvent) {
	for i := range events {
		m.RiskEvents.WithLabelValues(string(events[i].Type), string(events[i].Severity)).Inc()
	}
}

// Phase starts timing a phase; call the returned func when it ends.
func (m *Metrics) Phase(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		d := time.Since(start)
		m.PhaseDuration.WithLabelValues(name).Set(d.Seconds())
		return d
	}
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %s: %w", path, err)
	}
	return nil
}
