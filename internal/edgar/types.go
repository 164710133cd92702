package edgar

import "time"

// --- Company Tickers ---
// company_tickers.json is a map: {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}

// Company is one row of the ticker mapping.
type Company struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// --- Submissions ---

type submissionsResponse struct {
	CIK     string          `json:"cik"`
	Name    string          `json:"name"`
	Tickers []string        `json:"tickers"`
	Filings submissionsList `json:"filings"`
}

type submissionsList struct {
	Recent filingColumns `json:"recent"`
}

// filingColumns holds the recent filings as parallel arrays, newest first.
type filingColumns struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	ReportDate      []string `json:"reportDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
	Description     []string `json:"primaryDocDescription"`
}

func column(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func parseSECDate(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
