// Package http provides an HTTP-based implementation of
// vikinglink.Fetcher for retrieving viking file pages.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/streamplay/vikinglink"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements vikinglink.Fetcher at compile time.
var _ vikinglink.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page HTML over plain HTTP. The file-host landing
// pages this package targets render server side, so no JavaScript
// execution is needed.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	retryDelays []time.Duration
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays enables retry on fetch failure with the given backoff
// delays between attempts. Retries are off by default; retry policy
// belongs to the fetcher, never to the extraction engine.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.retryDelays = delays
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Connection
// errors, timeouts and non-2xx responses all surface as EUNAVAILABLE so
// callers can apply the partial-result policy uniformly.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.fetchOnce(ctx, url)
	if err == nil {
		return html, nil
	}

	for _, delay := range f.retryDelays {
		select {
		case <-ctx.Done():
			return "", vikinglink.Errorf(vikinglink.EUNAVAILABLE, "fetch %s: %v", url, ctx.Err())
		case <-time.After(delay):
		}

		if html, err = f.fetchOnce(ctx, url); err == nil {
			return html, nil
		}
	}

	return "", err
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", vikinglink.Errorf(vikinglink.EINVALID, "invalid URL %q: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", vikinglink.Errorf(vikinglink.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", vikinglink.Errorf(vikinglink.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", vikinglink.Errorf(vikinglink.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}
