package ragnav

import "time"

// Page is a successfully indexed page and its extracted text.
type Page struct {
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}
