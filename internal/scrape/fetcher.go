// Package scrape holds the pieces that touch upstream HTML: the page
// fetcher, the inline script variable extractor, and the selector chain
// helpers. Upstream markup changes should only ever require edits here.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// FetchError is the single failure type for upstream page fetches.
// Timeouts, connection failures and non-2xx responses all land here;
// StatusCode is zero when the transport itself failed.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs GET requests against the upstream site. It does not
// retry: the resolver's search fallback is a semantic fallback, not a
// transport retry, and it lives with the caller.
type Fetcher struct {
	httpc     *http.Client
	userAgent string
}

// NewFetcher builds a fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		httpc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     60 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
	}
}

// NewFetcherWithClient builds a fetcher around an existing client.
// Tests use this to point the fetcher at an httptest server.
func NewFetcherWithClient(httpc *http.Client) *Fetcher {
	return &Fetcher{httpc: httpc, userAgent: defaultUserAgent}
}

// Document GETs url and parses the body as HTML. Any failure comes back
// as a *FetchError.
func (f *Fetcher) Document(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpc.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}
