package mock

import (
	"context"

	"github.com/fwojciec/ragnav"
)

var _ ragnav.Answerer = (*Answerer)(nil)

// Answerer is a mock implementation of ragnav.Answerer.
type Answerer struct {
	AnswerFn func(ctx context.Context, query, docs string) (*ragnav.Answer, error)
}

func (a *Answerer) Answer(ctx context.Context, query, docs string) (*ragnav.Answer, error) {
	return a.AnswerFn(ctx, query, docs)
}
