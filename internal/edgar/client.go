// Package edgar fetches SEC filings from EDGAR.
//
// EDGAR needs no API key but rejects requests without a User-Agent naming
// the caller's company and contact email. Fair access is 10 requests per
// second per user agent.
package edgar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/internal/infra"
	"github.com/seenimoa/secanalyzer/pkg/models"
	"github.com/seenimoa/secanalyzer/pkg/utils"
)

var (
	// ErrTickerNotFound is returned when a ticker is not in EDGAR's company list.
	ErrTickerNotFound = errors.New("ticker not found in EDGAR company list")

	// ErrFilingNotFound is returned when a company has no filing of the requested form.
	ErrFilingNotFound = errors.New("no filing of the requested form")

	// ErrIdentityMissing reports a User-Agent without a contact email.
	ErrIdentityMissing = errors.New("SEC contact email not configured")
)

const (
	tickerMapKey   = "company_tickers"
	docCachePrefix = "secanalyzer:filing:"
)

// Client talks to EDGAR. It is safe for concurrent use.
type Client struct {
	baseURL string // https://www.sec.gov
	dataURL string // https://data.sec.gov
	http    *infra.Getter
	tickers *infra.Cache[map[string]Company]
	docs    DocumentCache
	docTTL  time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithDocumentCache stores fetched filing documents in dc for ttl.
func WithDocumentCache(dc DocumentCache, ttl time.Duration) Option {
	return func(c *Client) {
		c.docs = dc
		c.docTTL = ttl
	}
}

// New creates a client from the SEC configuration.
func New(cfg config.SECConfig, opts ...Option) *Client {
	ttl := time.Duration(cfg.CIKCacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		dataURL: strings.TrimRight(cfg.DataURL, "/"),
		http:    infra.NewGetter(cfg.UserAgent(), cfg.Timeout(), infra.NewRateLimiter(cfg.RateLimit)),
		tickers: infra.NewCache[map[string]Company](ttl),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckIdentity reports ErrIdentityMissing when no contact email is set.
func CheckIdentity(cfg config.SECConfig) error {
	if strings.TrimSpace(cfg.Email) == "" {
		return ErrIdentityMissing
	}
	return nil
}

// ResolveCIK maps a ticker to its EDGAR company entry. The ticker list is
// downloaded once and cached.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (Company, error) {
	companies, err := c.companies(ctx)
	if err != nil {
		return Company{}, err
	}
	co, ok := companies[utils.NormalizeTicker(ticker)]
	if !ok {
		return Company{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return co, nil
}

func (c *Client) companies(ctx context.Context) (map[string]Company, error) {
	if m, ok := c.tickers.Get(tickerMapKey); ok {
		return m, nil
	}

	var raw map[string]Company
	if err := c.getJSON(ctx, c.baseURL+"/files/company_tickers.json", &raw); err != nil {
		return nil, fmt.Errorf("fetch company tickers: %w", err)
	}
	m := make(map[string]Company, len(raw))
	for _, co := range raw {
		m[utils.NormalizeTicker(co.Ticker)] = co
	}
	c.tickers.Set(tickerMapKey, m)
	return m, nil
}

// LatestFiling returns the most recent filing of the given form for a company.
func (c *Client) LatestFiling(ctx context.Context, co Company, form string) (*models.FilingEntry, error) {
	u := fmt.Sprintf("%s/submissions/CIK%s.json", c.dataURL, utils.PadCIK(co.CIK))
	var resp submissionsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("fetch submissions for CIK %d: %w", co.CIK, err)
	}

	recent := resp.Filings.Recent
	for i, f := range recent.Form {
		if !strings.EqualFold(f, form) {
			continue
		}
		acc := column(recent.AccessionNumber, i)
		doc := column(recent.PrimaryDocument, i)
		if acc == "" || doc == "" {
			continue
		}
		return &models.FilingEntry{
			CIK:             utils.PadCIK(co.CIK),
			Ticker:          co.Ticker,
			CompanyName:     resp.Name,
			FormType:        f,
			AccessionNo:     acc,
			FilingDate:      parseSECDate(column(recent.FilingDate, i)),
			ReportDate:      column(recent.ReportDate, i),
			PrimaryDocument: doc,
			URL:             c.archiveURL(co.CIK, acc, doc),
			Title:           column(recent.Description, i),
		}, nil
	}
	return nil, fmt.Errorf("%w: %s %s", ErrFilingNotFound, co.Ticker, form)
}

// GetFilingHTML downloads the primary document of the ticker's latest
// filing of the given form.
func (c *Client) GetFilingHTML(ctx context.Context, ticker, form string) ([]byte, error) {
	co, err := c.ResolveCIK(ctx, ticker)
	if err != nil {
		return nil, err
	}
	filing, err := c.LatestFiling(ctx, co, utils.NormalizeForm(form))
	if err != nil {
		return nil, err
	}
	return c.Document(ctx, filing)
}

// Document downloads a filing's primary document, using the document cache
// when one is configured. Cache failures are logged and otherwise ignored.
func (c *Client) Document(ctx context.Context, filing *models.FilingEntry) ([]byte, error) {
	logger := zerolog.Ctx(ctx)
	key := docCachePrefix + filing.AccessionNo

	if c.docs != nil {
		body, ok, err := c.docs.Get(ctx, key)
		if err != nil {
			logger.Warn().Err(err).Str("accession", filing.AccessionNo).Msg("filing cache read failed")
		} else if ok {
			logger.Debug().Str("accession", filing.AccessionNo).Msg("filing cache hit")
			return body, nil
		}
	}

	body, err := c.http.Get(ctx, filing.URL, "text/html")
	if err != nil {
		return nil, fmt.Errorf("fetch filing document: %w", err)
	}

	if c.docs != nil {
		if err := c.docs.Set(ctx, key, body, c.docTTL); err != nil {
			logger.Warn().Err(err).Str("accession", filing.AccessionNo).Msg("filing cache write failed")
		}
	}
	return body, nil
}

func (c *Client) archiveURL(cik int64, accession, doc string) string {
	return fmt.Sprintf("%s/Archives/edgar/data/%d/%s/%s", c.baseURL, cik, utils.AccessionPath(accession), doc)
}

func (c *Client) getJSON(ctx context.Context, url string, dest any) error {
	data, err := c.http.Get(ctx, url, "application/json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse SEC JSON: %w", err)
	}
	return nil
}
