package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/ragnav/mock"
	ragslog "github.com/fwojciec/ragnav/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs input bytes and output chars", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (string, error) {
				return "café", nil
			},
		}

		extractor := ragslog.NewLoggingExtractor(inner, logger)
		text, err := extractor.Extract("<p>café</p>")

		require.NoError(t, err)
		assert.Equal(t, "café", text)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "bytes=12")
		assert.Contains(t, output, "chars=4")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (string, error) {
				return "", errors.New("parse error")
			},
		}

		extractor := ragslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("<p>")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"parse error\"")
	})
}
