// Command cdsco discovers downloadable documents on CDSCO listing pages
// and searches their text for keywords.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/Mainak-dev/cdsco-deepseek/cache"
	"github.com/Mainak-dev/cdsco-deepseek/crawl"
	"github.com/Mainak-dev/cdsco-deepseek/fs"
	cdscohttp "github.com/Mainak-dev/cdsco-deepseek/http"
	"github.com/Mainak-dev/cdsco-deepseek/pdfcpu"
	"github.com/Mainak-dev/cdsco-deepseek/search"
	cdscoslog "github.com/Mainak-dev/cdsco-deepseek/slog"
	"github.com/Mainak-dev/cdsco-deepseek/sqlite"
)

// defaultEndpoint is the CDSCO download endpoint document ids resolve
// against.
const defaultEndpoint = "https://cdsco.gov.in/opencms/opencms/system/modules/CDSCO.WEB/elements/common_download.jsp"

// defaultListings are the CDSCO pages scanned when no --listing flag is
// given.
var defaultListings = []string{
	"https://cdsco.gov.in/opencms/opencms/en/Committees/SEC/",
	"https://cdsco.gov.in/opencms/opencms/en/Notifications/SEC/",
	"https://cdsco.gov.in/opencms/opencms/en/Notifications/Safety-Notices/",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Path of the on-disk text cache. Empty keeps the cache in memory
	// for the duration of the run. Set before calling Run().
	CachePath string

	// SQLite database backing the on-disk cache, when one is used.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{CachePath: os.Getenv("CDSCO_CACHE_DB")}
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
		kong.Name("cdsco"),
		kong.Description("Search CDSCO document listings for keywords."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{"default_endpoint": defaultEndpoint},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cdsco --help' to see available commands")
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

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	var fetcher cdsco.Fetcher = cdscohttp.NewFetcher(cdscohttp.WithTimeout(cli.Timeout))
	if cli.Verbose {
		fetcher = cdscoslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	cacheOpts := []cache.Option{cache.WithTTL(cli.TTL)}
	switch {
	case cli.CacheDir != "":
		cacheOpts = append(cacheOpts, cache.WithStore(fs.NewCacheStore(cli.CacheDir)))
	case m.CachePath != "":
		m.DB = sqlite.NewDB(m.CachePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set CDSCO_CACHE_DB to use a different cache path")
			return fmt.Errorf("failed to open cache at %q: %w", m.CachePath, err)
		}
		defer m.Close()
		cacheOpts = append(cacheOpts, cache.WithStore(sqlite.NewCacheStore(m.DB)))
	}

	var texts cdsco.TextCache = cache.New(fetcher, pdfcpu.NewExtractor(), cacheOpts...)
	if cli.Verbose {
		texts = cdscoslog.NewLoggingTextCache(texts, logger)
	}

	// The endpoint policy runs first so download-endpoint links keep
	// their listing titles; plain file links fall through to the
	// extension policy.
	policies := []cdsco.LinkPolicy{
		&cdsco.IndirectPolicy{Marker: cli.Marker, IDParam: cli.IDParam, Endpoint: cli.Endpoint},
		&cdsco.DirectPolicy{Extension: cli.Extension},
	}

	var discoverer cdsco.Discoverer = &crawl.Discoverer{
		Fetcher:            fetcher,
		Policies:           policies,
		FollowPagination:   !cli.NoPaging,
		PaginationSelector: cli.Selector,
		RateLimiter:        crawl.NewDomainLimiter(1.0),
	}
	if cli.Verbose {
		discoverer = cdscoslog.NewLoggingDiscoverer(discoverer, logger)
	}

	deps.Listings = cli.Listing
	if len(deps.Listings) == 0 {
		deps.Listings = defaultListings
	}
	deps.Discoverer = discoverer
	deps.Engine = &search.Engine{
		Cache:       texts,
		Limiter:     search.NewLimiter(cli.Delay),
		Concurrency: cli.Search.Concurrency,
	}

	return kongCtx.Run(deps)
}
