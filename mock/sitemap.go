package mock

import (
	"context"

	"github.com/fwojciec/ragnav"
)

var _ ragnav.SitemapResolver = (*SitemapResolver)(nil)

// SitemapResolver is a mock implementation of ragnav.SitemapResolver.
type SitemapResolver struct {
	ResolveFn func(ctx context.Context, rootURL string) (*ragnav.SitemapResult, error)
}

func (r *SitemapResolver) Resolve(ctx context.Context, rootURL string) (*ragnav.SitemapResult, error) {
	return r.ResolveFn(ctx, rootURL)
}
