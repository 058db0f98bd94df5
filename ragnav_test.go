package ragnav_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/ragnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := ragnav.Errorf(ragnav.ENOTFOUND, "no sitemap found for %s", "https://example.com")

	assert.Equal(t, ragnav.ENOTFOUND, ragnav.ErrorCode(err))
	assert.Equal(t, "no sitemap found for https://example.com", ragnav.ErrorMessage(err))
	assert.Equal(t, "ragnav error: code=not_found message=no sitemap found for https://example.com", err.Error())
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ragnav.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ragnav.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("answering: %w", ragnav.Errorf(ragnav.EINVALID, "question required"))

	assert.Equal(t, ragnav.EINVALID, ragnav.ErrorCode(err))
	assert.Equal(t, "question required", ragnav.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, ragnav.EINTERNAL, ragnav.ErrorCode(err))
	assert.Equal(t, "Internal error.", ragnav.ErrorMessage(err))
}

func TestSleep(t *testing.T) {
	t.Parallel()

	t.Run("waits for the duration", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		require.NoError(t, ragnav.Sleep(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("returns immediately for non-positive durations", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ragnav.Sleep(context.Background(), 0))
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := ragnav.Sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("reports a done context even without a delay", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, ragnav.Sleep(ctx, 0), context.Canceled)
	})
}
