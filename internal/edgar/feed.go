package edgar

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed/atom"

	"github.com/seenimoa/secanalyzer/pkg/models"
	"github.com/seenimoa/secanalyzer/pkg/utils"
)

// maxFeedEntries is the largest count the browse-edgar feed accepts.
const maxFeedEntries = 100

// RecentFilings lists a company's latest filings of one form from the
// EDGAR company Atom feed, newest first.
func (c *Client) RecentFilings(ctx context.Context, ticker, form string, limit int) ([]models.FilingEntry, error) {
	if limit <= 0 || limit > maxFeedEntries {
		limit = maxFeedEntries
	}
	ticker = utils.NormalizeTicker(ticker)

	q := url.Values{}
	q.Set("action", "getcompany")
	q.Set("CIK", ticker)
	q.Set("type", utils.NormalizeForm(form))
	q.Set("dateb", "")
	q.Set("owner", "include")
	q.Set("count", strconv.Itoa(limit))
	q.Set("output", "atom")
	u := c.baseURL + "/cgi-bin/browse-edgar?" + q.Encode()

	body, err := c.http.Open(ctx, u, "application/atom+xml")
	if err != nil {
		return nil, fmt.Errorf("fetch filings feed for %s: %w", ticker, err)
	}
	defer body.Close()

	// the Atom parser keeps category terms, which carry the form type;
	// parsers hold per-document state
	fp := &atom.Parser{}
	feed, err := fp.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse filings feed for %s: %w", ticker, err)
	}

	entries := make([]models.FilingEntry, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		entries = append(entries, feedEntry(entry, ticker, companyFromFeedTitle(feed.Title)))
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func feedEntry(entry *atom.Entry, ticker, company string) models.FilingEntry {
	e := models.FilingEntry{
		Ticker:      ticker,
		CompanyName: company,
		FormType:    formFromCategories(entry.Categories),
		Title:       strings.TrimSpace(entry.Title),
		URL:         entryLink(entry.Links),
		AccessionNo: accessionFromID(entry.ID),
	}
	switch {
	case entry.UpdatedParsed != nil:
		e.FilingDate = entry.UpdatedParsed.UTC()
	case entry.PublishedParsed != nil:
		e.FilingDate = entry.PublishedParsed.UTC()
	}
	return e
}

// formFromCategories returns the term of the "form type" category, falling
// back to the first category term. The label is descriptive text, never the form.
func formFromCategories(cats []*atom.Category) string {
	for _, c := range cats {
		if c != nil && strings.EqualFold(strings.TrimSpace(c.Label), "form type") {
			return strings.TrimSpace(c.Term)
		}
	}
	for _, c := range cats {
		if c != nil && c.Term != "" {
			return strings.TrimSpace(c.Term)
		}
	}
	return ""
}

// entryLink prefers the alternate link.
func entryLink(links []*atom.Link) string {
	for _, l := range links {
		if l != nil && (l.Rel == "" || l.Rel == "alternate") {
			return l.Href
		}
	}
	if len(links) > 0 && links[0] != nil {
		return links[0].Href
	}
	return ""
}

// accessionFromID extracts the accession number from an entry ID such as
// "urn:tag:sec.gov,2008:accession-number=0000320193-25-000073".
func accessionFromID(id string) string {
	_, acc, ok := strings.Cut(id, "accession-number=")
	if !ok {
		return ""
	}
	return strings.TrimSpace(acc)
}

// companyFromFeedTitle trims the "(0000320193)" CIK suffix of a feed title.
func companyFromFeedTitle(title string) string {
	if i := strings.LastIndex(title, "("); i > 0 {
		title = title[:i]
	}
	return strings.TrimSpace(title)
}
