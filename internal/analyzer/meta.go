package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seenimoa/secanalyzer/pkg/models"
)

// Inline XBRL dei element names, matched as lowercase substrings of the
// name attribute so both "dei:EntityRegistrantName" and unprefixed forms hit.
const (
	registrantNameKey = "entityregistrantname"
	periodEndKey      = "documentperiodenddate"
	millionsMarker    = "(in millions"
	millionsUnit      = "(in millions)"
)

// ExtractMeta reads the registrant name and period end date from the
// filing's inline XBRL tags and infers the reporting unit from its text.
// When a tag repeats, the last occurrence wins. FilingDate is left unset.
func ExtractMeta(rawHTML, ticker, reportType string) models.MetaRecord {
	doc, err := ParseDocument(rawHTML)
	if err != nil {
		doc = nil
	}
	return extractMeta(doc, rawHTML, ticker, reportType)
}

func extractMeta(doc *goquery.Document, rawHTML, ticker, reportType string) models.MetaRecord {
	meta := models.MetaRecord{Ticker: ticker, ReportType: reportType}

	if doc != nil {
		doc.Find("[name]").Each(func(_ int, sel *goquery.Selection) {
			name := strings.ToLower(sel.AttrOr("name", ""))
			switch {
			case strings.Contains(name, registrantNameKey):
				meta.CompanyName = models.StringPtr(strings.TrimSpace(sel.Text()))
			case strings.Contains(name, periodEndKey):
				meta.PeriodEnd = models.StringPtr(strings.TrimSpace(sel.Text()))
			}
		})
	}

	if strings.Contains(strings.ToLower(rawHTML), millionsMarker) {
		meta.Unit = models.StringPtr(millionsUnit)
	}
	return meta
}
