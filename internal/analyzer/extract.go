package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

// ParseDocument parses raw filing HTML.
func ParseDocument(rawHTML string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
}

// ExtractStatementTables scans every table in document order and keeps the
// first table classified into each statement category. Later matches for a
// filled category are ignored.
func ExtractStatementTables(doc *goquery.Document) models.StatementTables {
	var out models.StatementTables
	if doc == nil {
		return out
	}

	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		slot := tableSlot(&out, Classify(NewTableCandidate(sel)))
		if slot == nil || *slot != nil {
			return true
		}
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			return true
		}
		*slot = &markup
		return out.Found() < 3
	})
	return out
}

// tableSlot returns the output field for a category, or nil for NoStatement.
func tableSlot(t *models.StatementTables, c StatementCategory) **string {
	switch c {
	case IncomeStatement:
		return &t.IncomeStatement
	case BalanceSheet:
		return &t.BalanceSheet
	case CashFlow:
		return &t.CashFlow
	}
	return nil
}
