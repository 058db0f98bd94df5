package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/ragnav"
	main "github.com/fwojciec/ragnav/cmd/ragnav"
	"github.com/fwojciec/ragnav/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks question and prints answer with sources", func(t *testing.T) {
		t.Parallel()

		result := ragnav.NewCrawlResult()
		result.IndexedURLs = []string{"https://example.com/hooks"}
		answerer := &mock.Answerer{
			AnswerFn: func(_ context.Context, query, docs string) (*ragnav.Answer, error) {
				if query == "What is useState?" && docs == "useState is a React Hook." {
					return &ragnav.Answer{Answer: "useState is a React Hook.", Confidence: 0.8}, nil
				}
				return &ragnav.Answer{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Crawler: crawlService(result, []*ragnav.Page{
				{URL: "https://example.com/hooks", Content: "useState is a React Hook."},
			}),
			Answerer: answerer,
		}

		cmd := &main.AskCmd{URL: "https://example.com/sitemap.xml", Question: "What is useState?"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "useState is a React Hook.")
		assert.Contains(t, stdout.String(), "Confidence: 80%")
		assert.Contains(t, stdout.String(), "Sources:\n  https://example.com/hooks\n")
		assert.Contains(t, stderr.String(), "Indexed 1 pages, skipped 0 (0 diagnostics)")
	})

	t.Run("refuses to answer when nothing was indexed", func(t *testing.T) {
		t.Parallel()

		result := ragnav.NewCrawlResult()
		result.Errors = []string{"Failed to fetch or parse the initial sitemap at https://example.com/sitemap.xml; it may be unavailable or empty."}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: crawlService(result, nil),
			Answerer: &mock.Answerer{
				AnswerFn: func(context.Context, string, string) (*ragnav.Answer, error) {
					t.Fatal("answerer must not be called without content")
					return nil, nil
				},
			},
		}

		cmd := &main.AskCmd{URL: "https://example.com/sitemap.xml", Question: "anything?"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, ragnav.ENOTFOUND, ragnav.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: no content available for querying")
	})

	t.Run("reports answerer failures", func(t *testing.T) {
		t.Parallel()

		result := ragnav.NewCrawlResult()
		result.IndexedURLs = []string{"https://example.com/a"}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Crawler: crawlService(result, []*ragnav.Page{{URL: "https://example.com/a", Content: "a"}}),
			Answerer: &mock.Answerer{
				AnswerFn: func(context.Context, string, string) (*ragnav.Answer, error) {
					return nil, ragnav.Errorf(ragnav.EUNAVAILABLE, "model overloaded")
				},
			},
		}

		cmd := &main.AskCmd{URL: "https://example.com/sitemap.xml", Question: "q"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: model overloaded")
	})
}
