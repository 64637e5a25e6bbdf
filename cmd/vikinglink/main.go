package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"
	"github.com/streamplay/vikinglink"
	"github.com/streamplay/vikinglink/cache"
	"github.com/streamplay/vikinglink/extract"
	"github.com/streamplay/vikinglink/fs"
	"github.com/streamplay/vikinglink/goquery"
	vikhttp "github.com/streamplay/vikinglink/http"
	vikslog "github.com/streamplay/vikinglink/slog"
	"github.com/streamplay/vikinglink/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Service for end-to-end testing.
	FileService vikinglink.OxxFileService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("vikinglink"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'vikinglink --help' to see available commands")
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

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set VIKINGLINK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.FileService = sqlite.NewOxxFileService(m.DB)
	if cli.Verbose {
		m.FileService = vikslog.NewLoggingOxxFileService(m.FileService, logger)
	}

	deps.DB = m.DB
	deps.Files = m.FileService
	deps.FileStore = fs.NewStore(afero.NewOsFs())

	// Wire the extraction pipeline for the commands that fetch pages.
	switch cmd {
	case "extract":
		deps.Extractor = newExtractService(logger, cli.Verbose,
			cli.Extract.Timeout, cli.Extract.Retries, cli.Extract.NoCache, cli.Extract.CacheDir, 0, 1)
	case "batch":
		deps.Extractor = newExtractService(logger, cli.Verbose,
			cli.Batch.Timeout, cli.Batch.Retries, cli.Batch.NoCache, cli.Batch.CacheDir, cli.Batch.RPS, cli.Batch.Burst)
		deps.Extractor.Concurrency = cli.Batch.Concurrency
	}

	return kongCtx.Run(deps)
}

// newExtractService assembles the fetcher chain and extraction engine.
func newExtractService(logger *slog.Logger, verbose bool, timeout time.Duration, retries int, noCache bool, cacheDir string, rps float64, burst int) *extract.Service {
	opts := []vikhttp.Option{vikhttp.WithTimeout(timeout)}
	if retries > 0 {
		delays := make([]time.Duration, retries)
		for i := range delays {
			delays[i] = time.Duration(1<<i) * time.Second
		}
		opts = append(opts, vikhttp.WithRetryDelays(delays))
	}

	var fetcher vikinglink.Fetcher = vikhttp.NewFetcher(opts...)
	if !noCache {
		if cacheDir == "" {
			cacheDir = defaultCacheDir()
		}
		fetcher = cache.NewFetcher(fetcher, afero.NewOsFs(), cacheDir)
	}
	if verbose {
		fetcher = vikslog.NewLoggingFetcher(fetcher, logger)
	}

	svc := &extract.Service{
		Fetcher:  fetcher,
		Links:    goquery.NewLinkExtractor(),
		Metadata: goquery.NewMetadataExtractor(),
	}
	if rps > 0 {
		svc.RateLimiter = extract.NewDomainLimiter(rps, extract.WithBurst(burst))
	}
	return svc
}

func defaultDBPath() string {
	if path := os.Getenv("VIKINGLINK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "vikinglink.db"
	}
	dir := filepath.Join(home, ".vikinglink")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "vikinglink.db")
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vikinglink-cache"
	}
	return filepath.Join(home, ".vikinglink", "cache")
}
