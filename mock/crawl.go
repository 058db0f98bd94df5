package mock

import (
	"context"

	"github.com/fwojciec/ragnav"
)

var _ ragnav.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of ragnav.CrawlService.
type CrawlService struct {
	RunFn func(ctx context.Context, rootSitemapURL string) (*ragnav.CrawlResult, []*ragnav.Page)
}

func (s *CrawlService) Run(ctx context.Context, rootSitemapURL string) (*ragnav.CrawlResult, []*ragnav.Page) {
	return s.RunFn(ctx, rootSitemapURL)
}

var _ ragnav.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of ragnav.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
