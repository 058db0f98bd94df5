package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragnav"
	"github.com/fwojciec/ragnav/crawl"
	"github.com/fwojciec/ragnav/gemini"
	"github.com/fwojciec/ragnav/goquery"
	ragnavhttp "github.com/fwojciec/ragnav/http"
	"github.com/fwojciec/ragnav/robotstxt"
	ragslog "github.com/fwojciec/ragnav/slog"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// ConfigPaths are YAML files providing flag defaults; the first
	// existing one is used.
	ConfigPaths []string

	// Services for end-to-end testing. Nil services are built from flags.
	Fetcher      ragnav.Fetcher
	CrawlService ragnav.CrawlService
	Answerer     ragnav.Answerer
	TokenCounter ragnav.TokenCounter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv:      os.Getenv,
		ConfigPaths: []string{DefaultConfigPath()},
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:       ctx,
		Stdin:     stdin,
		Stdout:    stdout,
		Stderr:    stderr,
		SessionID: uuid.NewString(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ragnav"),
		kong.Description("Index a website through its sitemap and ask questions about its content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"user_agent": ragnav.UserAgent, "model": gemini.DefaultModel},
		kong.Configuration(YAMLConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ragnav --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})).
			With("session", deps.SessionID)
	}

	deps.Discover = cli.Discover
	deps.Fetcher = m.fetcher(cli, logger)
	deps.Crawler = m.crawler(cli, deps.Fetcher, logger, stderr)

	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "index":
		deps.Tokens = m.tokenCounter(cli, logger)
	case "ask", "chat":
		answerer, err := m.answerer(ctx, cli, logger, stderr)
		if err != nil {
			return err
		}
		deps.Answerer = answerer
	}

	return kongCtx.Run(deps)
}

func (m *Main) fetcher(cli *CLI, logger *slog.Logger) ragnav.Fetcher {
	if m.Fetcher != nil {
		return m.Fetcher
	}
	var fetcher ragnav.Fetcher = ragnavhttp.NewFetcher(
		ragnavhttp.WithTimeout(cli.Timeout),
		ragnavhttp.WithUserAgent(cli.UserAgent),
	)
	if logger != nil {
		fetcher = ragslog.NewLoggingFetcher(fetcher, logger)
	}
	return fetcher
}

func (m *Main) crawler(cli *CLI, fetcher ragnav.Fetcher, logger *slog.Logger, stderr io.Writer) ragnav.CrawlService {
	if m.CrawlService != nil {
		return m.CrawlService
	}

	resolver := ragnavhttp.NewSitemapResolver(fetcher)
	resolver.MaxURLs = cli.MaxURLs

	var (
		robots    ragnav.RobotsGate      = ragnavhttp.NewRobotsGate(fetcher, robotstxt.NewParser(cli.UserAgent))
		sitemaps  ragnav.SitemapResolver = resolver
		extractor ragnav.Extractor       = goquery.NewExtractor()
	)
	if logger != nil {
		robots = ragslog.NewLoggingRobotsGate(robots, logger)
		sitemaps = ragslog.NewLoggingSitemapResolver(sitemaps, logger)
		extractor = ragslog.NewLoggingExtractor(extractor, logger)
	}

	c := &crawl.Crawler{
		Robots:     robots,
		Sitemaps:   sitemaps,
		Fetcher:    fetcher,
		Extractor:  extractor,
		FetchDelay: ragnav.FetchDelay,
		Progress:   printProgress(stderr),
	}
	if cli.MaxRPS > 0 {
		c.RateLimiter = crawl.NewDomainLimiter(cli.MaxRPS)
	}

	if logger != nil {
		return ragslog.NewLoggingCrawlService(c, logger)
	}
	return c
}

// tokenCounter returns nil when the tokenizer cannot be loaded; the
// index summary then omits the token figure.
func (m *Main) tokenCounter(cli *CLI, logger *slog.Logger) ragnav.TokenCounter {
	if m.TokenCounter != nil {
		return m.TokenCounter
	}
	tc, err := gemini.NewTokenCounter(cli.Model)
	if err != nil {
		if logger != nil {
			logger.Warn("token counter unavailable", "model", cli.Model, "err", err)
		}
		return nil
	}
	return tc
}

func (m *Main) answerer(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (ragnav.Answerer, error) {
	var answerer ragnav.Answerer = m.Answerer
	if answerer == nil {
		apiKey := m.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		answerer = gemini.NewAnswerer(client, cli.Model)
	}

	if logger != nil {
		answerer = ragslog.NewLoggingAnswerer(answerer, logger)
	}
	return answerer, nil
}

// printProgress reports crawl progress on w, one line per event of note.
func printProgress(w io.Writer) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch {
		case event.State == crawl.StateResolvingSitemaps:
			fmt.Fprintln(w, "Resolving sitemaps...")
		case event.State == crawl.StateFetchingPages && event.URL == "":
			fmt.Fprintf(w, "  Found %d URLs\n", event.Total)
		case event.Outcome == crawl.OutcomeIndexed:
			fmt.Fprintf(w, "  [%d/%d] indexed %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		case event.Outcome == crawl.OutcomeSkipped:
			fmt.Fprintf(w, "  [%d/%d] skipped %s\n", event.Completed, event.Total, crawl.TruncateURL(event.URL, 60))
		}
	}
}
