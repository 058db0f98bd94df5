package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragnav"
)

// Ensure LoggingSitemapResolver implements ragnav.SitemapResolver.
var _ ragnav.SitemapResolver = (*LoggingSitemapResolver)(nil)

// LoggingSitemapResolver wraps a SitemapResolver with debug logging.
type LoggingSitemapResolver struct {
	next   ragnav.SitemapResolver
	logger *slog.Logger
}

// NewLoggingSitemapResolver creates a new LoggingSitemapResolver.
func NewLoggingSitemapResolver(next ragnav.SitemapResolver, logger *slog.Logger) *LoggingSitemapResolver {
	return &LoggingSitemapResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the operation.
func (r *LoggingSitemapResolver) Resolve(ctx context.Context, rootURL string) (result *ragnav.SitemapResult, err error) {
	defer func(begin time.Time) {
		var count, diagnostics int
		if result != nil {
			count = len(result.URLs)
			diagnostics = len(result.Diagnostics)
		}
		r.logger.Info("sitemap resolution",
			"url", rootURL,
			"count", count,
			"diagnostics", diagnostics,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Resolve(ctx, rootURL)
}
