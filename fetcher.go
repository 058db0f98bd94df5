package ragnav

import "context"

// Fetcher retrieves raw documents (HTML, XML, plain text) from URLs.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the decoded body.
	// Transport failures and non-2xx statuses are returned as errors;
	// the error text carries the status code when there was a response.
	Fetch(ctx context.Context, url string) (string, error)
}
