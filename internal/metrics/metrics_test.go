package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

func TestHandlerExposesCounters(t *testing.T) {
	ObserveRun("10-Q", 1500*time.Millisecond, nil)
	ObserveRun("6-K", time.Second, errors.New("boom"))
	ObserveTables(models.StatementTables{
		IncomeStatement: models.StringPtr("<table/>"),
		CashFlow:        models.StringPtr("<table/>"),
	})
	PersistFailed("mongo")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`secanalyzer_analysis_runs_total{form="10-Q",outcome="ok"}`,
		`secanalyzer_analysis_runs_total{form="6-K",outcome="error"}`,
		`secanalyzer_analysis_duration_seconds_bucket{form="10-Q"`,
		`secanalyzer_statements_found_total{category="cash_flow"}`,
		`secanalyzer_persist_failures_total{backend="mongo"}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
	if strings.Contains(out, `category="balance_sheet"`) {
		t.Error("balance_sheet counted without a table")
	}
}
