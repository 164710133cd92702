package analyzer

import (
	"strings"
	"testing"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

func extract(t *testing.T, markup string) models.StatementTables {
	t.Helper()
	doc, err := ParseDocument(markup)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return ExtractStatementTables(doc)
}

func TestExtractStatementTables(t *testing.T) {
	got := extract(t, filingHTML)

	if got.BalanceSheet == nil || !strings.Contains(*got.BalanceSheet, "331,495") {
		t.Errorf("balance sheet not extracted: %v", got.BalanceSheet)
	}
	if got.BalanceSheet != nil && strings.Contains(*got.BalanceSheet, "Part I") {
		t.Error("table of contents picked as balance sheet")
	}
	if got.IncomeStatement == nil || !strings.Contains(*got.IncomeStatement, "Net sales") {
		t.Errorf("income statement not extracted: %v", got.IncomeStatement)
	}
	if got.CashFlow != nil {
		t.Errorf("cash flow = %q, want nil", *got.CashFlow)
	}
	if got.Found() != 2 {
		t.Errorf("Found() = %d, want 2", got.Found())
	}
	if !strings.HasPrefix(*got.IncomeStatement, "<table>") || !strings.HasSuffix(*got.IncomeStatement, "</table>") {
		t.Errorf("income statement is not a table fragment: %.60q", *got.IncomeStatement)
	}
}

func TestExtractFirstMatchWins(t *testing.T) {
	first := table(row("Net sales", fact("R", "1")+fact("R", "2")+fact("R", "3")+fact("R", "4")), row("first-marker"))
	second := table(row("Total net sales and revenue", fact("R", "5")+fact("R", "6")+fact("R", "7")+fact("R", "8")+fact("R", "9")), row("second-marker"))

	got := extract(t, "<html><body>"+first+second+"</body></html>")
	if got.IncomeStatement == nil {
		t.Fatal("income statement missing")
	}
	if !strings.Contains(*got.IncomeStatement, "first-marker") {
		t.Error("first income table not selected")
	}
	if strings.Contains(*got.IncomeStatement, "second-marker") {
		t.Error("second income table leaked into result")
	}
}

func TestExtractDeterministic(t *testing.T) {
	a := extract(t, filingHTML)
	b := extract(t, filingHTML)
	for _, pair := range [][2]*string{
		{a.IncomeStatement, b.IncomeStatement},
		{a.BalanceSheet, b.BalanceSheet},
		{a.CashFlow, b.CashFlow},
	} {
		if models.Deref(pair[0]) != models.Deref(pair[1]) {
			t.Error("extraction differs between runs on identical input")
		}
	}
}

func TestExtractNilDocument(t *testing.T) {
	if got := ExtractStatementTables(nil); got.Found() != 0 {
		t.Errorf("Found() = %d, want 0", got.Found())
	}
}

func TestExtractNoTables(t *testing.T) {
	got := extract(t, "<html><body><p>Net sales rose.</p></body></html>")
	if got.Found() != 0 {
		t.Errorf("Found() = %d, want 0", got.Found())
	}
}
