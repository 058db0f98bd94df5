package ragnav

import "context"

// RobotsRules answers allow/deny questions for one parsed robots.txt.
type RobotsRules interface {
	// IsAllowed reports whether the crawler may fetch the URL.
	IsAllowed(url string) bool
}

// RobotsParser is the optional robots.txt parsing capability.
// A crawler built without one still works; every URL is then allowed.
type RobotsParser interface {
	// Parse turns robots.txt text into rules for the parser's user agent.
	// Paths that no rule matches are allowed.
	Parse(text string) (RobotsRules, error)
}

// RobotsDecision is the outcome of resolving robots.txt for an origin.
//
// A decision with nil Rules is the Unavailable variant: the rules could not
// be determined and every URL is allowed (fail open).
type RobotsDecision struct {
	Rules RobotsRules

	// Reason explains why rules are unavailable. Informational only.
	Reason string
}

// RobotsUnavailable returns the fail-open decision with the given reason.
func RobotsUnavailable(reason string) RobotsDecision {
	return RobotsDecision{Reason: reason}
}

// Available reports whether the decision carries parsed rules.
func (d RobotsDecision) Available() bool {
	return d.Rules != nil
}

// IsAllowed reports whether the URL may be fetched.
// Unavailable decisions allow everything.
func (d RobotsDecision) IsAllowed(url string) bool {
	if d.Rules == nil {
		return true
	}
	return d.Rules.IsAllowed(url)
}

// RobotsGate resolves the robots.txt policy for a site origin.
type RobotsGate interface {
	// Resolve fetches and parses {origin}/robots.txt. It never fails:
	// any problem yields an Unavailable decision.
	Resolve(ctx context.Context, originURL string) RobotsDecision
}
