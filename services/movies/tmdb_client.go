package movies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
)

// tmdbClient is a minimal TMDB v3 client covering the endpoints the
// proxy exposes. Transient failures (network, 5xx) are retried a couple
// of times; client errors are not.
type tmdbClient struct {
	apiKey   string
	baseURL  string
	language string
	httpc    *http.Client
}

func newTMDBClient(apiKey, baseURL, language string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &tmdbClient{
		apiKey:   apiKey,
		baseURL:  baseURL,
		language: language,
		httpc:    httpc,
	}
}

func (c *tmdbClient) isConfigured() bool { return c.apiKey != "" }

// get performs an authenticated GET against path and returns the raw
// response body, so the proxy can pass TMDB payloads through unchanged.
func (c *tmdbClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("tmdb: api key not configured")
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	reqURL := c.baseURL + path + "?" + params.Encode()

	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= 500 {
				return fmt.Errorf("tmdb: status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("tmdb: status %d", resp.StatusCode))
			}

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("tmdb: get %s: %w", path, err)
	}
	return body, nil
}
