package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/ragnav/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func fastRetry() gemini.RetryConfig {
	return gemini.RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", genai.APIError{Code: 429}, true},
		{"unavailable", genai.APIError{Code: 503}, true},
		{"wrapped server error", fmt.Errorf("generate: %w", genai.APIError{Code: 500}), true},
		{"bad request", genai.APIError{Code: 400}, false},
		{"permission denied", genai.APIError{Code: 403}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gemini.IsTransient(tt.err))
		})
	}
}

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("retries transient errors until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := gemini.Retry(context.Background(), fastRetry(), func() error {
			calls++
			if calls < 3 {
				return genai.APIError{Code: 503}
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := gemini.Retry(context.Background(), fastRetry(), func() error {
			calls++
			return genai.APIError{Code: 400, Message: "bad request"}
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		var apiErr genai.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Code)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := gemini.Retry(context.Background(), fastRetry(), func() error {
			calls++
			return genai.APIError{Code: 429}
		})

		require.Error(t, err)
		assert.Equal(t, 4, calls)
	})
}
