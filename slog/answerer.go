package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragnav"
)

// Ensure LoggingAnswerer implements ragnav.Answerer.
var _ ragnav.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with debug logging.
type LoggingAnswerer struct {
	next   ragnav.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next ragnav.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Answer delegates to the wrapped answerer and logs the operation.
func (a *LoggingAnswerer) Answer(ctx context.Context, query, docs string) (answer *ragnav.Answer, err error) {
	defer func(begin time.Time) {
		var confidence float64
		if answer != nil {
			confidence = answer.Confidence
		}
		a.logger.Info("answer",
			"query", query,
			"context_bytes", len(docs),
			"confidence", confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Answer(ctx, query, docs)
}
