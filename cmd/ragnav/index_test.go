package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/ragnav"
	main "github.com/fwojciec/ragnav/cmd/ragnav"
	"github.com/fwojciec/ragnav/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crawlService(result *ragnav.CrawlResult, pages []*ragnav.Page) *mock.CrawlService {
	return &mock.CrawlService{
		RunFn: func(context.Context, string) (*ragnav.CrawlResult, []*ragnav.Page) {
			return result, pages
		},
	}
}

func TestIndexCmd_Run(t *testing.T) {
	t.Parallel()

	result := &ragnav.CrawlResult{
		IndexedURLs: []string{"https://example.com/a", "https://example.com/b"},
		SkippedURLs: []string{"https://example.com/c"},
		Errors:      []string{"Failed to fetch content for https://example.com/c: HTTP 500 Internal Server Error"},
	}
	pages := []*ragnav.Page{
		{URL: "https://example.com/a", Content: "alpha"},
		{URL: "https://example.com/b", Content: "beta"},
	}

	t.Run("prints indexed, skipped and diagnostics", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: crawlService(result, pages),
			Tokens: &mock.TokenCounter{
				CountTokensFn: func(_ context.Context, text string) (int, error) {
					assert.Equal(t, "alpha"+ragnav.ContentSeparator+"beta", text)
					return 1500, nil
				},
			},
		}

		cmd := &main.IndexCmd{URL: "https://example.com/sitemap.xml"}
		require.NoError(t, cmd.Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Indexed 2 pages from https://example.com/sitemap.xml")
		assert.Contains(t, out, "  + https://example.com/a")
		assert.Contains(t, out, "Skipped 1 pages")
		assert.Contains(t, out, "  - https://example.com/c")
		assert.Contains(t, out, "  ! Failed to fetch content for https://example.com/c")
		assert.Contains(t, out, "Context: 2 pages, 16 B, ~2k tokens")
	})

	t.Run("omits token figure when counting fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: crawlService(result, pages),
			Tokens: &mock.TokenCounter{
				CountTokensFn: func(context.Context, string) (int, error) {
					return 0, errors.New("tokenizer unavailable")
				},
			},
		}

		cmd := &main.IndexCmd{URL: "https://example.com/sitemap.xml"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Context: 2 pages, 16 B\n")
	})

	t.Run("prints JSON hand-off shape", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Crawler: crawlService(ragnav.NewCrawlResult(), nil),
		}

		cmd := &main.IndexCmd{URL: "https://example.com/sitemap.xml", JSON: true}
		require.NoError(t, cmd.Run(deps))

		var raw map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &raw))
		assert.Equal(t, []any{}, raw["indexedUrls"])
		assert.Equal(t, []any{}, raw["skippedUrls"])
		assert.Equal(t, []any{}, raw["errors"])
	})

	t.Run("locates the sitemap when discovering", func(t *testing.T) {
		t.Parallel()

		var crawled string
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Discover: true,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == "https://example.com/robots.txt" {
						return "Sitemap: https://example.com/docs-sitemap.xml\n", nil
					}
					return "", errors.New("HTTP 404 Not Found")
				},
			},
			Crawler: &mock.CrawlService{
				RunFn: func(_ context.Context, rootSitemapURL string) (*ragnav.CrawlResult, []*ragnav.Page) {
					crawled = rootSitemapURL
					return ragnav.NewCrawlResult(), nil
				},
			},
		}

		cmd := &main.IndexCmd{URL: "https://example.com/docs/"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "https://example.com/docs-sitemap.xml", crawled)
		assert.Contains(t, stderr.String(), "Using sitemap https://example.com/docs-sitemap.xml")
	})

	t.Run("fails when no sitemap can be located", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Discover: true,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return "", errors.New("HTTP 404 Not Found")
				},
			},
		}

		cmd := &main.IndexCmd{URL: "https://example.com"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, ragnav.ENOTFOUND, ragnav.ErrorCode(err))
		assert.True(t, strings.HasPrefix(stderr.String(), "error: no sitemap found"))
	})
}
