package ragnav

import "context"

// TokenCounter reports how many model tokens a text occupies, used to
// size the query context before it is sent.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
