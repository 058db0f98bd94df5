package mock

import (
	"context"

	"github.com/fwojciec/ragnav"
)

var _ ragnav.RobotsRules = (*RobotsRules)(nil)

// RobotsRules is a mock implementation of ragnav.RobotsRules.
type RobotsRules struct {
	IsAllowedFn func(url string) bool
}

func (r *RobotsRules) IsAllowed(url string) bool {
	return r.IsAllowedFn(url)
}

var _ ragnav.RobotsParser = (*RobotsParser)(nil)

// RobotsParser is a mock implementation of ragnav.RobotsParser.
type RobotsParser struct {
	ParseFn func(text string) (ragnav.RobotsRules, error)
}

func (p *RobotsParser) Parse(text string) (ragnav.RobotsRules, error) {
	return p.ParseFn(text)
}

var _ ragnav.RobotsGate = (*RobotsGate)(nil)

// RobotsGate is a mock implementation of ragnav.RobotsGate.
type RobotsGate struct {
	ResolveFn func(ctx context.Context, originURL string) ragnav.RobotsDecision
}

func (g *RobotsGate) Resolve(ctx context.Context, originURL string) ragnav.RobotsDecision {
	return g.ResolveFn(ctx, originURL)
}
