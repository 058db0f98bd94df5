package http

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/ragnav"
)

// Ensure SitemapResolver implements ragnav.SitemapResolver.
var _ ragnav.SitemapResolver = (*SitemapResolver)(nil)

// SitemapResolver expands sitemaps and sitemap indexes into page URLs.
// Sitemaps are fetched one at a time, breadth-first.
type SitemapResolver struct {
	fetcher ragnav.Fetcher

	// MaxURLs caps the number of returned page URLs.
	// Values <= 0 mean ragnav.MaxURLsToIndex.
	MaxURLs int

	// Delay is slept before fetching every sitemap except the root.
	Delay time.Duration
}

// NewSitemapResolver creates a SitemapResolver with the default URL budget
// and politeness delay.
func NewSitemapResolver(fetcher ragnav.Fetcher) *SitemapResolver {
	return &SitemapResolver{
		fetcher: fetcher,
		MaxURLs: ragnav.MaxURLsToIndex,
		Delay:   ragnav.SitemapFetchDelay,
	}
}

// Resolve walks the sitemap tree rooted at rootURL.
func (r *SitemapResolver) Resolve(ctx context.Context, rootURL string) (*ragnav.SitemapResult, error) {
	maxURLs := r.MaxURLs
	if maxURLs <= 0 {
		maxURLs = ragnav.MaxURLsToIndex
	}

	diag := &diagnostics{}
	urls := []string{}
	visited := make(map[string]bool)
	queue := []string{rootURL}

	for len(queue) > 0 && len(urls) < maxURLs {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		if current != rootURL {
			if err := ragnav.Sleep(ctx, r.Delay); err != nil {
				return nil, err
			}
		}

		root := r.fetchSitemap(ctx, current, diag)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if root == nil {
			continue
		}

		if indexes := elementsByTag(root, "sitemapindex"); len(indexes) > 0 {
			if current == rootURL {
				diag.infof("Detected sitemap index at %s, processing the sub-sitemaps it lists.", current)
			}
			for _, sm := range elementsByTag(indexes[0], "sitemap") {
				locs := elementsByTag(sm, "loc")
				if len(locs) == 0 {
					continue
				}
				loc := strings.TrimSpace(textContent(locs[0]))
				if loc != "" && !visited[loc] {
					queue = append(queue, loc)
				}
			}
			continue
		}

		locs := pageLocs(root)
		if len(locs) == 0 && strings.TrimSpace(textContent(root)) != "" {
			diag.errorf("Sitemap at %s is not an index but contained no <loc> entries; it may be malformed.", current)
		}
		for _, loc := range locs {
			if len(urls) >= maxURLs {
				diag.errorf("Reached the limit of %d URLs while processing %s; the remaining URLs in this sitemap were not included.", maxURLs, current)
				queue = nil
				break
			}
			urls = append(urls, loc)
		}
	}

	if len(queue) > 0 && len(urls) >= maxURLs {
		diag.errorf("Sitemap processing stopped at the limit of %d URLs; some sitemaps in the queue were not processed.", maxURLs)
	}

	// Nothing collected and nothing explains why: fetch the root once more,
	// silently, to tell an unreadable root from one without page links.
	if len(urls) == 0 && diag.errors == 0 {
		root := r.fetchSitemap(ctx, rootURL, nil)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch {
		case root == nil:
			diag.errorf("Failed to fetch or parse the initial sitemap at %s; it may be unavailable or empty.", rootURL)
		case strings.TrimSpace(textContent(root)) != "":
			diag.errorf("No page URLs found in %s or its sub-sitemaps; the sitemaps may have no page links or use an unsupported format.", rootURL)
		}
	}

	if len(urls) > maxURLs {
		urls = urls[:maxURLs]
	}

	return &ragnav.SitemapResult{
		URLs:        urls,
		Diagnostics: diag.messages,
	}, nil
}

// fetchSitemap fetches and parses one sitemap document and returns its root
// element. Problems are recorded on diag (when non-nil) and yield nil.
func (r *SitemapResolver) fetchSitemap(ctx context.Context, sitemapURL string, diag *diagnostics) *etree.Element {
	body, err := r.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		diag.errorf("Failed to fetch sitemap at %s: %v", sitemapURL, err)
		return nil
	}
	if strings.TrimSpace(body) == "" {
		diag.errorf("Sitemap at %s is empty.", sitemapURL)
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		diag.errorf("Failed to parse sitemap XML at %s: %v", sitemapURL, err)
		return nil
	}

	root := doc.Root()
	if root == nil {
		diag.errorf("Failed to parse sitemap XML at %s: no root element", sitemapURL)
		return nil
	}
	return root
}

// pageLocs returns the trimmed text of every non-empty <loc> element in
// document order.
func pageLocs(root *etree.Element) []string {
	var locs []string
	for _, el := range elementsByTag(root, "loc") {
		if loc := strings.TrimSpace(textContent(el)); loc != "" {
			locs = append(locs, loc)
		}
	}
	return locs
}

// elementsByTag returns e and all its descendants whose local name is tag,
// in document order. Namespace prefixes are ignored.
func elementsByTag(e *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == tag {
			found = append(found, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(e)
	return found
}

// textContent concatenates all character data below e.
func textContent(e *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		for _, tok := range el.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				sb.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)
	return sb.String()
}

// diagnostics collects human-readable messages in recording order.
// Informational messages do not count as errors.
type diagnostics struct {
	messages []string
	errors   int
}

func (d *diagnostics) errorf(format string, args ...any) {
	if d == nil {
		return
	}
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
	d.errors++
}

func (d *diagnostics) infof(format string, args ...any) {
	if d == nil {
		return
	}
	d.messages = append(d.messages, fmt.Sprintf(format, args...))
}

// LocateSitemap finds the sitemap of a site. It prefers the first Sitemap:
// directive in robots.txt and falls back to /sitemap.xml at the origin.
// Returns ENOTFOUND when neither is available.
func LocateSitemap(ctx context.Context, fetcher ragnav.Fetcher, siteURL string) (string, error) {
	origin, err := ragnav.Origin(siteURL)
	if err != nil {
		return "", err
	}

	if text, err := fetcher.Fetch(ctx, origin+"/robots.txt"); err == nil {
		if sitemaps := parseSitemapDirectives(text); len(sitemaps) > 0 {
			return sitemaps[0], nil
		}
	} else if ctx.Err() != nil {
		return "", ctx.Err()
	}

	fallback := origin + "/sitemap.xml"
	if _, err := fetcher.Fetch(ctx, fallback); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ragnav.Errorf(ragnav.ENOTFOUND, "no sitemap found for %s", origin)
	}
	return fallback, nil
}

// parseSitemapDirectives extracts Sitemap: directives from robots.txt.
func parseSitemapDirectives(robotsTxt string) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(strings.NewReader(robotsTxt))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Case-insensitive check for Sitemap: directive
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[8:]) // len("sitemap:") == 8
			if _, err := url.Parse(sitemapURL); sitemapURL != "" && err == nil {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	return sitemaps
}
