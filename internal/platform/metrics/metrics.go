package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "shopkhata_"

var (
	registerOnce sync.Once

	httpRequestLatency *prometheus.HistogramVec

	dailyRowsTotal          *prometheus.CounterVec
	settlementsCreatedTotal prometheus.Counter
	statementExportsTotal   *prometheus.CounterVec
	reportLatency           prometheus.Histogram
)

// Init registers the engine's metrics with the default registerer.
func Init() {
	registerOnce.Do(func() {
		httpRequestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency by method and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status"},
		)
		dailyRowsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "labour_daily_rows_total",
				Help: "Daily ledger rows processed by outcome",
			},
			[]string{"outcome"},
		)
		settlementsCreatedTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "labour_settlements_created_total",
				Help: "Settlement snapshots created",
			},
		)
		statementExportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "labour_statement_exports_total",
				Help: "Settlement statement exports by format",
			},
			[]string{"format"},
		)
		reportLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "labour_report_duration_seconds",
				Help:    "Labour report reconstruction latency",
				Buckets: prometheus.DefBuckets,
			},
		)

		prometheus.MustRegister(
			httpRequestLatency,
			dailyRowsTotal,
			settlementsCreatedTotal,
			statementExportsTotal,
			reportLatency,
		)
	})
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, status string, duration time.Duration) {
	if httpRequestLatency != nil {
		httpRequestLatency.WithLabelValues(method, status).Observe(duration.Seconds())
	}
}

// DailyRowProcessed counts one daily update row by outcome (applied/skipped).
func DailyRowProcessed(outcome string) {
	if dailyRowsTotal != nil {
		dailyRowsTotal.WithLabelValues(outcome).Inc()
	}
}

// SettlementCreated counts one persisted settlement snapshot.
func SettlementCreated() {
	if settlementsCreatedTotal != nil {
		settlementsCreatedTotal.Inc()
	}
}

// StatementExported counts one statement export by format.
func StatementExported(format string) {
	if statementExportsTotal != nil {
		statementExportsTotal.WithLabelValues(format).Inc()
	}
}

// ObserveReport records one report reconstruction.
func ObserveReport(duration time.Duration) {
	if reportLatency != nil {
		reportLatency.Observe(duration.Seconds())
	}
}
