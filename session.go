package ragnav

import (
	"context"
	"strings"
)

// ContentSeparator is placed between documents when building query context.
const ContentSeparator = "\n\n---\n\n"

// ContentMap maps indexed URLs to their extracted text.
// Iteration order is insertion order.
type ContentMap struct {
	urls    []string
	content map[string]string
}

// NewContentMap returns an empty ContentMap.
func NewContentMap() *ContentMap {
	return &ContentMap{content: make(map[string]string)}
}

// Set stores the content for url. Re-setting a URL keeps its position.
func (m *ContentMap) Set(url, content string) {
	if _, ok := m.content[url]; !ok {
		m.urls = append(m.urls, url)
	}
	m.content[url] = content
}

// Get returns the content stored for url.
func (m *ContentMap) Get(url string) (string, bool) {
	content, ok := m.content[url]
	return content, ok
}

// Len returns the number of stored URLs.
func (m *ContentMap) Len() int {
	return len(m.urls)
}

// URLs returns the stored URLs in insertion order.
func (m *ContentMap) URLs() []string {
	return append([]string(nil), m.urls...)
}

// Context concatenates all stored content, separated by ContentSeparator.
func (m *ContentMap) Context() string {
	parts := make([]string, 0, len(m.urls))
	for _, u := range m.urls {
		parts = append(parts, m.content[u])
	}
	return strings.Join(parts, ContentSeparator)
}

// QueryResult is an answer together with the URLs it was drawn from.
type QueryResult struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []string `json:"sources"`
}

// Session holds the content indexed for one user session.
// Nothing in a session outlives the process.
type Session struct {
	ID         string
	SitemapURL string
	Result     *CrawlResult
	Content    *ContentMap
}

// NewSession builds a session from the outcome of a crawl.
func NewSession(id, sitemapURL string, result *CrawlResult, pages []*Page) *Session {
	content := NewContentMap()
	for _, p := range pages {
		content.Set(p.URL, p.Content)
	}
	return &Session{
		ID:         id,
		SitemapURL: sitemapURL,
		Result:     result,
		Content:    content,
	}
}

// Reset discards everything indexed in the session.
func (s *Session) Reset() {
	s.SitemapURL = ""
	s.Result = nil
	s.Content = NewContentMap()
}

// Ask answers query against all content indexed in the session.
// Returns ENOTFOUND when nothing has been indexed and EINVALID when the
// query or the indexed content is blank.
func (s *Session) Ask(ctx context.Context, answerer Answerer, query string) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, Errorf(EINVALID, "question required")
	}
	if s.Content == nil || s.Content.Len() == 0 {
		return nil, Errorf(ENOTFOUND, "no content available for querying, index a sitemap first")
	}

	docs := s.Content.Context()
	if strings.TrimSpace(docs) == "" {
		return nil, Errorf(EINVALID, "indexed content is empty, cannot perform query")
	}

	answer, err := answerer.Answer(ctx, query, docs)
	if err != nil {
		return nil, err
	}

	return &QueryResult{
		Answer:     answer.Answer,
		Confidence: answer.Confidence,
		Sources:    s.Content.URLs(),
	}, nil
}
