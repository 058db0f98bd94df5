package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/ragnav"
)

// Ensure RobotsGate implements ragnav.RobotsGate.
var _ ragnav.RobotsGate = (*RobotsGate)(nil)

// RobotsGate resolves robots.txt policy for a site origin.
// Every failure degrades to an allow-all decision.
type RobotsGate struct {
	fetcher ragnav.Fetcher
	parser  ragnav.RobotsParser
}

// NewRobotsGate creates a new RobotsGate. The parser is optional: when it is
// nil every decision is Unavailable, whether or not robots.txt was fetched.
func NewRobotsGate(fetcher ragnav.Fetcher, parser ragnav.RobotsParser) *RobotsGate {
	return &RobotsGate{fetcher: fetcher, parser: parser}
}

// Resolve fetches {origin}/robots.txt and parses it into rules.
func (g *RobotsGate) Resolve(ctx context.Context, originURL string) ragnav.RobotsDecision {
	robotsURL := strings.TrimSuffix(originURL, "/") + "/robots.txt"

	text, err := g.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		if g.parser == nil {
			return ragnav.RobotsUnavailable("robots parser unavailable")
		}
		return ragnav.RobotsUnavailable(fmt.Sprintf("fetching %s: %v", robotsURL, err))
	}

	if g.parser == nil {
		return ragnav.RobotsUnavailable("robots.txt fetched but robots parser unavailable")
	}

	if strings.TrimSpace(text) == "" {
		return ragnav.RobotsUnavailable(fmt.Sprintf("%s is empty", robotsURL))
	}

	rules, err := g.parser.Parse(text)
	if err != nil {
		return ragnav.RobotsUnavailable(fmt.Sprintf("parsing %s: %v", robotsURL, err))
	}
	if rules == nil {
		return ragnav.RobotsUnavailable(fmt.Sprintf("parsing %s: no rules", robotsURL))
	}

	return ragnav.RobotsDecision{Rules: rules}
}
