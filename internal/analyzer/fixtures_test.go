package analyzer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// fact wraps a value in an inline XBRL numeric fact tag.
func fact(concept, value string) string {
	return fmt.Sprintf(`<ix:nonFraction name="us-gaap:%s" contextRef="c1" unitRef="usd" decimals="-6" scale="6">%s</ix:nonFraction>`, concept, value)
}

// row renders a table row from raw cell contents.
func row(cells ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cells {
		b.WriteString("<td>" + c + "</td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

func table(rows ...string) string {
	return "<table>" + strings.Join(rows, "") + "</table>"
}

// firstTable parses markup and returns its first table as a candidate.
func firstTable(t *testing.T, markup string) TableCandidate {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	sel := doc.Find("table").First()
	if sel.Length() == 0 {
		t.Fatal("no table in markup")
	}
	return NewTableCandidate(sel)
}

var tocTable = table(
	row("Part I", "Financial Information"),
	row("Condensed Consolidated Balance Sheets", "Total assets and stockholders' equity", "4"),
	row("Condensed Consolidated Statements of Operations", "Net sales", "3"),
)

var balanceTable = table(
	row("", "June 28, 2025", "September 28, 2024"),
	row("Cash and cash equivalents", fact("Cash", "36,269"), fact("Cash", "29,943")),
	row("Total assets", fact("Assets", "331,495"), fact("Assets", "364,980")),
	row("Total liabilities", fact("Liabilities", "265,665"), fact("Liabilities", "308,030")),
	row("Total shareholders’ equity", fact("StockholdersEquity", "65,830"), "<b>56,950</b>"),
)

var incomeTable = table(
	row("", "Three Months Ended", "", "Nine Months Ended", ""),
	row("", "2025", "2024", "2025", "2024"),
	row("Net sales", "$", fact("Revenues", "1,000"), fact("Revenues", "900"), fact("Revenues", "3,000"), fact("Revenues", "2,700")),
	row("Cost of sales", "$", fact("CostOfRevenue", "600"), fact("CostOfRevenue", "600"), fact("CostOfRevenue", "1,800"), fact("CostOfRevenue", "0")),
	row("Earnings per share", "1.57", "1.40", "4.50", "—"),
)

var filingHTML = `<html><head><title>aapl-20250628</title></head><body>
<div style="display:none"><ix:header><ix:hidden>
<ix:nonNumeric name="dei:EntityRegistrantName" contextRef="c1">Apple Inc.</ix:nonNumeric>
<ix:nonNumeric name="dei:DocumentPeriodEndDate" contextRef="c1">June 28, 2025</ix:nonNumeric>
</ix:hidden></ix:header></div>
<p>CONDENSED CONSOLIDATED STATEMENTS OF OPERATIONS (Unaudited) (In millions, except number of shares)</p>
` + tocTable + balanceTable + incomeTable + `
</body></html>`
