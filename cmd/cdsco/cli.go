package main

import (
	"context"
	"io"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/Mainak-dev/cdsco-deepseek/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Listings   []string
	Discoverer cdsco.Discoverer
	Engine     *search.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Listing   []string      `short:"l" help:"Listing page URL (repeatable; defaults to the CDSCO SEC pages)"`
	Extension string        `default:".pdf" help:"File extension matched by direct document links"`
	Marker    string        `default:"common_download.jsp" help:"Href substring identifying download-endpoint links"`
	IDParam   string        `name:"id-param" default:"num_id_pk" help:"Query parameter carrying the document id"`
	Endpoint  string        `default:"${default_endpoint}" help:"Download endpoint the document id is appended to"`
	Selector  string        `default:"ul.pagination a[href]" help:"CSS selector for pagination links"`
	NoPaging  bool          `name:"no-paging" help:"Do not follow pagination links"`
	Delay     time.Duration `default:"500ms" help:"Minimum pause between document downloads"`
	Timeout   time.Duration `default:"10s" help:"Per-request timeout"`
	TTL       time.Duration `name:"ttl" default:"24h" help:"How long extracted text stays cached"`
	CacheDir  string        `name:"cache-dir" help:"Cache extracted text as plain files under this directory (overrides CDSCO_CACHE_DB)"`
	Verbose   bool          `short:"v" help:"Log operations to stderr"`

	Discover DiscoverCmd `cmd:"" help:"List downloadable documents found on the listing pages"`
	Search   SearchCmd   `cmd:"" help:"Search the listed documents for a keyword"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct{}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Keyword     string `arg:"" help:"Keyword to search for (case-insensitive)"`
	MinCount    int    `short:"m" name:"min-count" default:"1" help:"Drop documents with fewer occurrences"`
	Concurrency int    `short:"c" default:"1" help:"Concurrent document processing limit"`
	NoProgress  bool   `name:"no-progress" help:"Suppress per-document progress output"`
}
