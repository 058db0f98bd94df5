package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/ragnav"
)

// Ensure LoggingRobotsGate implements ragnav.RobotsGate.
var _ ragnav.RobotsGate = (*LoggingRobotsGate)(nil)

// LoggingRobotsGate wraps a RobotsGate with debug logging.
type LoggingRobotsGate struct {
	next   ragnav.RobotsGate
	logger *slog.Logger
}

// NewLoggingRobotsGate creates a new LoggingRobotsGate.
func NewLoggingRobotsGate(next ragnav.RobotsGate, logger *slog.Logger) *LoggingRobotsGate {
	return &LoggingRobotsGate{next: next, logger: logger}
}

// Resolve delegates to the wrapped gate and logs whether rules were found.
func (g *LoggingRobotsGate) Resolve(ctx context.Context, originURL string) (decision ragnav.RobotsDecision) {
	defer func(begin time.Time) {
		attrs := []any{
			"origin", originURL,
			"available", decision.Available(),
			"duration", time.Since(begin),
		}
		if !decision.Available() {
			attrs = append(attrs, "reason", decision.Reason)
		}
		g.logger.Info("robots resolution", attrs...)
	}(time.Now())
	return g.next.Resolve(ctx, originURL)
}
