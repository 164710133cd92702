package models

import "time"

// FilingEntry represents one SEC filing located through EDGAR.
type FilingEntry struct {
	CIK             string    `json:"cik"`
	Ticker          string    `json:"ticker,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	FormType        string    `json:"form_type"` // "10-Q", "10-K", "6-K", etc.
	AccessionNo     string    `json:"accession_no"`
	FilingDate      time.Time `json:"filing_date"`
	ReportDate      string    `json:"report_date,omitempty"`
	PrimaryDocument string    `json:"primary_document,omitempty"`
	URL             string    `json:"url"`
	Title           string    `json:"title,omitempty"`
}
