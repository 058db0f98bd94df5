package ragnav

import (
	"context"
	"net/url"
	"strings"
)

// CrawlResult is the hand-off contract of a crawl run.
//
// IndexedURLs and SkippedURLs partition the page URLs that were considered,
// in processing order. Errors holds diagnostics in the order they were
// recorded, interleaving sitemap resolution and page fetching messages.
type CrawlResult struct {
	IndexedURLs []string `json:"indexedUrls"`
	SkippedURLs []string `json:"skippedUrls"`
	Errors      []string `json:"errors"`
}

// NewCrawlResult returns a result with empty, non-nil buckets.
func NewCrawlResult() *CrawlResult {
	return &CrawlResult{
		IndexedURLs: []string{},
		SkippedURLs: []string{},
		Errors:      []string{},
	}
}

// CrawlService crawls a site from its root sitemap.
type CrawlService interface {
	// Run crawls every page reachable from rootSitemapURL within the URL
	// budget. It always returns a best-effort result; failures are reported
	// in CrawlResult.Errors. The returned pages hold the extracted text of
	// each indexed URL, in the same order as CrawlResult.IndexedURLs.
	Run(ctx context.Context, rootSitemapURL string) (*CrawlResult, []*Page)
}

// NormalizeURL validates a URL taken from a sitemap and returns its
// canonical string form. Only absolute http and https URLs are accepted.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "invalid URL: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL: missing host")
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Origin returns the scheme://host part of an absolute URL.
func Origin(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "invalid URL: %q is not absolute", raw)
	}
	return u.Scheme + "://" + strings.ToLower(u.Host), nil
}
