package extract

import (
	"context"
	"net/url"
	"sync"

	"github.com/streamplay/vikinglink"
	"golang.org/x/time/rate"
)

var _ vikinglink.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Each domain gets its own limiter, so concurrent requests to different
// mirrors proceed while requests within one domain are throttled.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithBurst sets how many requests a domain may issue back to back
// before throttling kicks in. Values below 1 are ignored.
func WithBurst(burst int) LimiterOption {
	return func(d *DomainLimiter) {
		if burst >= 1 {
			d.burst = burst
		}
	}
}

// NewDomainLimiter creates a new DomainLimiter with the specified
// requests per second limit. The default burst of 1 allows no
// back-to-back requests within a domain.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    1,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), d.burst)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// domainOf extracts the throttling key from a page URL. Unparseable
// URLs share the empty-domain bucket.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
