package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragnav"
	ragnavhttp "github.com/fwojciec/ragnav/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	SessionID string

	// Discover treats command URLs as sites whose sitemap must be located.
	Discover bool

	Fetcher  ragnav.Fetcher
	Crawler  ragnav.CrawlService
	Answerer ragnav.Answerer
	Tokens   ragnav.TokenCounter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"Load flag defaults from a YAML file"`
	Debug     bool            `help:"Log service calls to stderr"`
	Discover  bool            `help:"Treat the URL as a site and locate its sitemap via robots.txt"`
	Timeout   time.Duration   `default:"10s" help:"Per-request HTTP timeout"`
	UserAgent string          `name:"user-agent" default:"${user_agent}" help:"User-Agent sent with every request"`
	MaxURLs   int             `name:"max-urls" default:"50" help:"Maximum number of pages to index"`
	MaxRPS    float64         `name:"max-rps" default:"0" help:"Per-host request rate cap on top of the fixed delay (0 disables)"`
	Model     string          `default:"${model}" env:"RAGNAV_MODEL" help:"Gemini model used for answers"`

	Index IndexCmd `cmd:"" help:"Crawl a sitemap and report indexed and skipped pages"`
	Ask   AskCmd   `cmd:"" help:"Crawl a sitemap and answer one question about its content"`
	Chat  ChatCmd  `cmd:"" help:"Crawl a sitemap and answer questions read from stdin"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	URL  string `arg:"" help:"Sitemap or sitemap index URL"`
	JSON bool   `help:"Print the crawl result as JSON"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	URL      string `arg:"" help:"Sitemap or sitemap index URL"`
	Question string `arg:"" help:"Question to ask about the site"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	URL string `arg:"" help:"Sitemap or sitemap index URL"`
}

// buildSession crawls the sitemap behind target and returns a session
// holding the indexed content.
func buildSession(deps *Dependencies, target string) (*ragnav.Session, error) {
	sitemapURL := target
	if deps.Discover {
		located, err := ragnavhttp.LocateSitemap(deps.Ctx, deps.Fetcher, target)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(deps.Stderr, "Using sitemap %s\n", located)
		sitemapURL = located
	}

	result, pages := deps.Crawler.Run(deps.Ctx, sitemapURL)
	return ragnav.NewSession(deps.SessionID, sitemapURL, result, pages), nil
}

// printSummary writes a one-line crawl summary.
func printSummary(w io.Writer, result *ragnav.CrawlResult) {
	fmt.Fprintf(w, "Indexed %d pages, skipped %d (%d diagnostics)\n",
		len(result.IndexedURLs), len(result.SkippedURLs), len(result.Errors))
}
