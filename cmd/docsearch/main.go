package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsearch/crawl"
	"github.com/fwojciec/docsearch/gemini"
	dshttp "github.com/fwojciec/docsearch/http"
	dsslog "github.com/fwojciec/docsearch/slog"
	"github.com/fwojciec/docsearch/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Data directory holding the page cache and index artifacts.
	// Set before calling Run().
	Dir string

	// SQLite page cache, opened for commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Dir: defaultDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Dir:    m.Dir,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		fmt.Fprintln(stderr, "Hint: Set DOCSEARCH_DIR to use a different data directory")
		return fmt.Errorf("failed to create data directory %q: %w", m.Dir, err)
	}

	// Wire command-specific dependencies based on command.
	if cmd == "collect" {
		if cli.Collect.Sitemap {
			deps.Source = dshttp.NewSitemapSource(nil)
		} else {
			fetcher := dsslog.NewLoggingFetcher(newRetryingFetcher(deps.Logger), deps.Logger)
			defer fetcher.Close()

			deps.Source = &crawl.Collector{
				Fetcher:  fetcher,
				Frontier: crawl.NewFrontier(100000, 0.001),
				Limiter:  crawl.NewDomainLimiter(cli.Collect.RPS),
				Logger:   deps.Logger,
			}
		}
	}

	if cmd == "build" {
		m.DB = sqlite.NewDB(filepath.Join(m.Dir, "pages.db"))
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open page cache: %w", err)
		}
		defer m.Close()

		deps.Pages = sqlite.NewPageService(m.DB)

		fetcher := dsslog.NewLoggingFetcher(newRetryingFetcher(deps.Logger), deps.Logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	if cmd == "questions" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		deps.Questions = gemini.NewGenerator(client)

		fetcher := newRetryingFetcher(deps.Logger)
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	return kongCtx.Run(deps)
}

// newRetryingFetcher builds the HTTP fetcher stack shared by all commands
// that touch the network: plain HTTP with backoff retries on transient
// failures.
func newRetryingFetcher(logger *slog.Logger) *dshttp.RetryFetcher {
	return dshttp.NewRetryFetcher(dshttp.NewFetcher(), dshttp.WithRetryLogger(logger))
}

func defaultDir() string {
	if dir := os.Getenv("DOCSEARCH_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docsearch"
	}
	return filepath.Join(home, ".docsearch")
}
