// Package goquery implements ragnav.Extractor using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/ragnav"
)

// MinContentLength is the number of characters below which the preferred
// container's text is considered too thin and the page is denoised instead.
const MinContentLength = 100

// contentSelectors lists the containers tried in priority order.
var contentSelectors = []string{"article", "main", "body"}

// noiseSelector matches elements stripped before falling back to body text.
const noiseSelector = "script, style, nav, footer, header, aside, noscript, iframe, form, " +
	"button, input, select, textarea, label, " +
	".sidebar, .menu, .advertisement, .ad, .banner, " +
	"#sidebar, #navigation, #footer, #header"

// spaceClass is the ECMAScript whitespace and line terminator set.
const spaceClass = `\t\n\x0b\f\r\x{00a0}\x{feff}\x{2028}\x{2029}\p{Zs}`

// whitespaceRun matches two or more consecutive whitespace characters.
var whitespaceRun = regexp.MustCompile(`[` + spaceClass + `]{2,}`)

// edgeSpace matches whitespace at either end of the text.
var edgeSpace = regexp.MustCompile(`^[` + spaceClass + `]+|[` + spaceClass + `]+$`)

// Ensure Extractor implements ragnav.Extractor.
var _ ragnav.Extractor = (*Extractor)(nil)

// Extractor reduces HTML pages to readable plain text.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of the first non-empty article, main or body
// element. When that text is shorter than MinContentLength the page is
// parsed again with navigation, forms, ads and other noise removed and the
// remaining body text is used instead.
func (e *Extractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ragnav.Errorf(ragnav.EINVALID, "failed to parse HTML: %v", err)
	}

	var text string
	for _, sel := range contentSelectors {
		if t := doc.Find(sel).First().Text(); t != "" {
			text = t
			break
		}
	}

	if textLength(text) < MinContentLength {
		clean, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return "", ragnav.Errorf(ragnav.EINVALID, "failed to parse HTML: %v", err)
		}
		clean.Find(noiseSelector).Remove()
		text = clean.Find("body").First().Text()
	}

	return normalizeWhitespace(text), nil
}

// normalizeWhitespace collapses whitespace runs into a single space and
// trims the result.
func normalizeWhitespace(s string) string {
	return edgeSpace.ReplaceAllString(whitespaceRun.ReplaceAllString(s, " "), "")
}

// textLength counts UTF-16 code units, so characters outside the Basic
// Multilingual Plane count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
