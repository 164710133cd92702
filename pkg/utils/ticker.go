package utils

import (
	"fmt"
	"strings"
)

// Periodic report form aliases users commonly type.
var formAliases = map[string]string{
	"10Q":  "10-Q",
	"10-Q": "10-Q",
	"10K":  "10-K",
	"10-K": "10-K",
	"6K":   "6-K",
	"6-K":  "6-K",
	"20F":  "20-F",
	"20-F": "20-F",
	"8K":   "8-K",
	"8-K":  "8-K",
}

// NormalizeTicker normalizes a user-input ticker to the form EDGAR's
// company_tickers.json uses: uppercase, no "$" prefix, share classes
// separated by "-" (BRK.B -> BRK-B).
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	ticker = strings.TrimPrefix(ticker, "$")
	return strings.ReplaceAll(ticker, ".", "-")
}

// NormalizeForm canonicalizes a form type ("10q" -> "10-Q"). Unknown forms
// are uppercased and returned as-is.
func NormalizeForm(form string) string {
	form = strings.TrimSpace(strings.ToUpper(form))
	if canonical, ok := formAliases[form]; ok {
		return canonical
	}
	return form
}

// IsValidTicker reports whether s looks like an exchange ticker.
func IsValidTicker(s string) bool {
	s = NormalizeTicker(s)
	if s == "" || len(s) > 10 {
		return false
	}
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') && r != '-' {
			return false
		}
	}
	return true
}

// PadCIK zero-pads a CIK to the 10 digits EDGAR URLs expect.
func PadCIK(cik int64) string {
	return fmt.Sprintf("%010d", cik)
}

// AccessionPath strips the dashes from an accession number
// ("0000320193-25-000073" -> "000032019325000073") for archive URLs.
func AccessionPath(accession string) string {
	return strings.ReplaceAll(accession, "-", "")
}
