// Package crawl provides sitemap crawl orchestration.
// It sequences robots.txt resolution, sitemap resolution, fetching and
// text extraction, and sorts every page URL into indexed or skipped.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/ragnav"
)

// Ensure Crawler implements ragnav.CrawlService.
var _ ragnav.CrawlService = (*Crawler)(nil)

// Crawler crawls a site from its root sitemap, one request at a time.
type Crawler struct {
	Robots    ragnav.RobotsGate
	Sitemaps  ragnav.SitemapResolver
	Fetcher   ragnav.Fetcher
	Extractor ragnav.Extractor

	// RateLimiter optionally caps requests per host on top of FetchDelay.
	RateLimiter ragnav.DomainLimiter

	// FetchDelay is slept before every page fetch, including the first.
	// Zero disables the delay.
	FetchDelay time.Duration

	// Progress, if set, receives state transitions and page outcomes.
	Progress ProgressFunc
}

// State is a phase of a crawl run. Runs move strictly forward through
// the states in declaration order.
type State int

const (
	StateIdle State = iota
	StateResolvingRobots
	StateResolvingSitemaps
	StateFetchingPages
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingRobots:
		return "resolving-robots"
	case StateResolvingSitemaps:
		return "resolving-sitemaps"
	case StateFetchingPages:
		return "fetching-pages"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is what happened to a single page URL.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeIndexed
	OutcomeSkipped
)

// ProgressEvent reports progress during a crawl run.
// Page events carry URL and Outcome; state transitions leave them empty.
type ProgressEvent struct {
	State     State
	URL       string
	Outcome   Outcome
	Completed int
	Total     int
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls every page listed by the sitemap tree at rootSitemapURL.
//
// The returned pages hold the extracted text of each indexed URL.
// Run never fails: sitemap resolution errors produce an empty result with
// a single diagnostic, and page failures only move the URL to skipped.
func (c *Crawler) Run(ctx context.Context, rootSitemapURL string) (*ragnav.CrawlResult, []*ragnav.Page) {
	result := ragnav.NewCrawlResult()
	pages := []*ragnav.Page{}

	c.report(ProgressEvent{State: StateResolvingRobots})
	robots := c.resolveRobots(ctx, rootSitemapURL)

	c.report(ProgressEvent{State: StateResolvingSitemaps})
	resolved, err := c.Sitemaps.Resolve(ctx, rootSitemapURL)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to resolve sitemaps: %v", err))
		c.report(ProgressEvent{State: StateDone})
		return result, pages
	}
	result.Errors = append(result.Errors, resolved.Diagnostics...)

	total := len(resolved.URLs)
	c.report(ProgressEvent{State: StateFetchingPages, Total: total})

	for i, raw := range resolved.URLs {
		pageURL, err := ragnav.NormalizeURL(raw)
		if err != nil {
			result.SkippedURLs = append(result.SkippedURLs, raw)
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid URL from sitemap: %s - %s", raw, ragnav.ErrorMessage(err)))
			c.reportPage(raw, OutcomeSkipped, i+1, total)
			continue
		}

		// Robots exclusions are policy, not failures: no diagnostic.
		if !robots.IsAllowed(pageURL) {
			result.SkippedURLs = append(result.SkippedURLs, pageURL)
			c.reportPage(pageURL, OutcomeSkipped, i+1, total)
			continue
		}

		if err := c.wait(ctx, pageURL); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Crawl canceled at %s: %v", pageURL, err))
			break
		}

		content, err := c.readPage(ctx, pageURL)
		if err != nil && ctx.Err() != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Crawl canceled at %s: %v", pageURL, ctx.Err()))
			break
		}
		switch {
		case err != nil:
			result.SkippedURLs = append(result.SkippedURLs, pageURL)
			result.Errors = append(result.Errors, fmt.Sprintf("Failed to fetch content for %s: %v", pageURL, err))
			c.reportPage(pageURL, OutcomeSkipped, i+1, total)
		case strings.TrimSpace(content) == "":
			result.SkippedURLs = append(result.SkippedURLs, pageURL)
			result.Errors = append(result.Errors, fmt.Sprintf("Content for %s was empty or only whitespace after processing.", pageURL))
			c.reportPage(pageURL, OutcomeSkipped, i+1, total)
		default:
			result.IndexedURLs = append(result.IndexedURLs, pageURL)
			pages = append(pages, &ragnav.Page{
				URL:         pageURL,
				Content:     content,
				ContentHash: ComputeHash(content),
				FetchedAt:   time.Now(),
			})
			c.reportPage(pageURL, OutcomeIndexed, i+1, total)
		}
	}

	c.report(ProgressEvent{State: StateDone, Completed: len(result.IndexedURLs) + len(result.SkippedURLs), Total: total})
	return result, pages
}

// resolveRobots resolves the robots policy for the origin of the root
// sitemap. Without a gate or a valid origin every URL is allowed.
func (c *Crawler) resolveRobots(ctx context.Context, rootSitemapURL string) ragnav.RobotsDecision {
	if c.Robots == nil {
		return ragnav.RobotsUnavailable("no robots gate configured")
	}
	origin, err := ragnav.Origin(rootSitemapURL)
	if err != nil {
		return ragnav.RobotsUnavailable(ragnav.ErrorMessage(err))
	}
	return c.Robots.Resolve(ctx, origin)
}

// wait applies the politeness delay and the optional per-host rate limit.
func (c *Crawler) wait(ctx context.Context, pageURL string) error {
	if err := ragnav.Sleep(ctx, c.FetchDelay); err != nil {
		return err
	}
	if c.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	return c.RateLimiter.Wait(ctx, u.Host)
}

// readPage fetches a page and reduces it to plain text. An error means no
// content could be obtained; an empty string means the page had none.
func (c *Crawler) readPage(ctx context.Context, pageURL string) (string, error) {
	html, err := c.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return c.Extractor.Extract(html)
}

func (c *Crawler) report(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

func (c *Crawler) reportPage(pageURL string, outcome Outcome, completed, total int) {
	c.report(ProgressEvent{
		State:     StateFetchingPages,
		URL:       pageURL,
		Outcome:   outcome,
		Completed: completed,
		Total:     total,
	})
}
