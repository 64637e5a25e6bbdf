package vikinglink

import "context"

// Fetcher retrieves raw HTML from URLs. Fetching is the only blocking
// operation in an extraction call; timeouts and cancellation belong to
// implementations and the supplied context, never to the extraction
// engine.
type Fetcher interface {
	// Fetch retrieves the page body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting for batch extraction.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
