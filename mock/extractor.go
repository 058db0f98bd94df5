package mock

import "github.com/fwojciec/ragnav"

var _ ragnav.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ragnav.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
