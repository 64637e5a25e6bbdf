package mock

import (
	"context"

	"github.com/streamplay/vikinglink"
)

var _ vikinglink.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of vikinglink.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
