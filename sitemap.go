package ragnav

import "context"

// SitemapResult holds the page URLs resolved from a sitemap tree together
// with the human-readable diagnostics recorded along the way.
type SitemapResult struct {
	URLs        []string
	Diagnostics []string
}

// SitemapResolver expands a sitemap or sitemap index into page URLs.
type SitemapResolver interface {
	// Resolve walks the sitemap tree rooted at rootURL breadth-first and
	// returns at most MaxURLsToIndex page URLs in discovery order.
	//
	// Fetch and parse problems are recorded as diagnostics and never
	// returned as errors. An error means resolution itself was aborted
	// (e.g. the context was canceled) and nothing in the result is trusted.
	Resolve(ctx context.Context, rootURL string) (*SitemapResult, error)
}
