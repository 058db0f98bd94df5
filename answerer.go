package ragnav

import "context"

// Answer is the response of the query answering service.
type Answer struct {
	Answer string `json:"answer"`

	// Confidence is in the range [0, 1].
	Confidence float64 `json:"confidence"`
}

// Answerer answers natural language questions from a block of context text.
type Answerer interface {
	// Answer answers query using only the supplied document text.
	// Returns EINVALID if query or docs is blank.
	Answer(ctx context.Context, query, docs string) (*Answer, error)
}
