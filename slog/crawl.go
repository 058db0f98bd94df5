package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragnav"
)

// Ensure LoggingCrawlService implements ragnav.CrawlService.
var _ ragnav.CrawlService = (*LoggingCrawlService)(nil)

// LoggingCrawlService wraps a CrawlService with debug logging.
// Every diagnostic of the result is logged as a warning and every indexed
// page at debug level with its size and content hash.
type LoggingCrawlService struct {
	next   ragnav.CrawlService
	logger *slog.Logger
}

// NewLoggingCrawlService creates a new LoggingCrawlService.
func NewLoggingCrawlService(next ragnav.CrawlService, logger *slog.Logger) *LoggingCrawlService {
	return &LoggingCrawlService{next: next, logger: logger}
}

// Run delegates to the wrapped service and logs the outcome.
func (s *LoggingCrawlService) Run(ctx context.Context, rootSitemapURL string) (result *ragnav.CrawlResult, pages []*ragnav.Page) {
	defer func(begin time.Time) {
		if result == nil {
			return
		}
		for _, p := range pages {
			s.logger.Debug("indexed page",
				"url", p.URL,
				"bytes", len(p.Content),
				"hash", p.ContentHash,
				"fetched_at", p.FetchedAt,
			)
		}
		for _, msg := range result.Errors {
			s.logger.Warn("crawl diagnostic", "diagnostic", msg)
		}
		s.logger.Info("crawl",
			"url", rootSitemapURL,
			"indexed", len(result.IndexedURLs),
			"skipped", len(result.SkippedURLs),
			"errors", len(result.Errors),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Run(ctx, rootSitemapURL)
}
