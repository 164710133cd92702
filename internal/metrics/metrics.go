// Package metrics exposes Prometheus counters for analysis runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

const namespace = "secanalyzer"

// Run outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	analysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_runs_total",
		Help:      "Filing analyses by form type and outcome.",
	}, []string{"form", "outcome"})

	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time to fetch and analyze one filing.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"form"})

	statementsFound = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "statements_found_total",
		Help:      "Statement tables located, by category.",
	}, []string{"category"})

	persistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_failures_total",
		Help:      "Failed report store writes, by backend.",
	}, []string{"backend"})
)

// ObserveRun records one analysis run.
func ObserveRun(form string, elapsed time.Duration, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	analysisRuns.WithLabelValues(form, outcome).Inc()
	analysisDuration.WithLabelValues(form).Observe(elapsed.Seconds())
}

// ObserveTables counts the statement tables present in a result.
func ObserveTables(t models.StatementTables) {
	if t.IncomeStatement != nil {
		statementsFound.WithLabelValues("income_statement").Inc()
	}
	if t.BalanceSheet != nil {
		statementsFound.WithLabelValues("balance_sheet").Inc()
	}
	if t.CashFlow != nil {
		statementsFound.WithLabelValues("cash_flow").Inc()
	}
}

// PersistFailed counts a failed store write.
func PersistFailed(backend string) {
	persistFailures.WithLabelValues(backend).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
