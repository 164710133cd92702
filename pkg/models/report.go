// Package models defines the core data structures used throughout secanalyzer.
package models

import "time"

// MetaRecord describes the filing an analysis was produced from.
// Optional fields are nil when the filing does not carry them.
type MetaRecord struct {
	CompanyName *string `json:"company_name" bson:"company_name"`
	Ticker      string  `json:"ticker" bson:"ticker"`
	ReportType  string  `json:"report_type" bson:"report_type"` // "10-Q", "6-K"
	PeriodEnd   *string `json:"period_end" bson:"period_end"`
	FilingDate  *string `json:"filing_date" bson:"filing_date"`
	Unit        *string `json:"unit" bson:"unit"` // "(in millions)"
}

// StatementTables holds the serialized markup of each located statement table.
type StatementTables struct {
	IncomeStatement *string `json:"income_statement" bson:"income_statement"`
	BalanceSheet    *string `json:"balance_sheet" bson:"balance_sheet"`
	CashFlow        *string `json:"cash_flow" bson:"cash_flow"`
}

// Found returns the number of statement tables present.
func (t StatementTables) Found() int {
	n := 0
	for _, s := range []*string{t.IncomeStatement, t.BalanceSheet, t.CashFlow} {
		if s != nil {
			n++
		}
	}
	return n
}

// AnalysisResult is the output of one analysis run.
type AnalysisResult struct {
	Meta        MetaRecord      `json:"meta" bson:"meta"`
	Tables      StatementTables `json:"tables" bson:"tables"`
	LastUpdated time.Time       `json:"last_updated" bson:"last_updated"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
