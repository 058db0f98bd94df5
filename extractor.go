package ragnav

// Extractor reduces an HTML page to clean, readable plain text.
type Extractor interface {
	// Extract returns the readable text of the page with whitespace
	// collapsed. An empty string is a valid result meaning the page has no
	// usable content; an error means the markup could not be processed.
	Extract(html string) (string, error)
}
