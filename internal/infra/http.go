package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 1024

// HTTPError is returned for non-2xx upstream responses.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %s: %s", e.URL, e.Status, e.Body)
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusTooManyRequests
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.StatusCode == http.StatusNotFound
}

// Getter performs identified, rate-limited GET requests.
type Getter struct {
	client    *http.Client
	userAgent string
	limiter   *RateLimiter
}

// NewGetter creates a Getter. limiter may be nil.
func NewGetter(userAgent string, timeout time.Duration, limiter *RateLimiter) *Getter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Getter{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		limiter:   limiter,
	}
}

// Get fetches url and returns the full body. Non-2xx responses become
// *HTTPError.
func (g *Getter) Get(ctx context.Context, url, accept string) ([]byte, error) {
	body, err := g.Open(ctx, url, accept)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

// Open is Get returning the body stream. The caller must close it.
func (g *Getter) Open(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
	return resp.Body, nil
}
