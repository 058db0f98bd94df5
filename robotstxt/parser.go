// Package robotstxt implements ragnav.RobotsParser using
// github.com/temoto/robotstxt.
package robotstxt

import (
	"net/url"

	"github.com/fwojciec/ragnav"
	"github.com/temoto/robotstxt"
)

// Ensure Parser implements ragnav.RobotsParser.
var _ ragnav.RobotsParser = (*Parser)(nil)

// Parser parses robots.txt for a single user agent.
type Parser struct {
	userAgent string
}

// NewParser creates a Parser that evaluates rules for userAgent.
func NewParser(userAgent string) *Parser {
	return &Parser{userAgent: userAgent}
}

// Parse parses robots.txt text and selects the group for the parser's
// user agent, falling back to the "*" group.
func (p *Parser) Parse(text string) (ragnav.RobotsRules, error) {
	data, err := robotstxt.FromString(text)
	if err != nil {
		return nil, err
	}
	return &Rules{group: data.FindGroup(p.userAgent)}, nil
}

// Rules is the rule group that applies to one user agent.
// Paths no rule matches are allowed.
type Rules struct {
	group *robotstxt.Group
}

// IsAllowed reports whether the path and query of rawURL may be fetched.
// Unparseable URLs are allowed; they are rejected elsewhere.
func (r *Rules) IsAllowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return r.group.Test(path)
}
