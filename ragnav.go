// Package ragnav crawls a website through its sitemap, extracts readable
// page text and answers questions against the collected text with an LLM.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, gemini/).
package ragnav

import (
	"context"
	"time"
)

// Crawl limits and politeness settings.
const (
	// MaxURLsToIndex caps the number of page URLs a crawl will consider.
	MaxURLsToIndex = 50

	// FetchDelay is slept before every page content fetch.
	FetchDelay = 250 * time.Millisecond

	// SitemapFetchDelay is slept before every sitemap fetch except the root.
	SitemapFetchDelay = 100 * time.Millisecond
)

// UserAgent identifies the crawler on every outbound request.
const UserAgent = "RAGNavigatorBot/1.0 (+https://firebase.google.com/docs/app-hosting)"

// Sleep blocks for d or until ctx is done, returning the context error in
// the latter case. Non-positive durations only report the context state.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
