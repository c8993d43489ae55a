package main

import (
	"fmt"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
	"github.com/Mainak-dev/cdsco-deepseek/search"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	discovery, err := deps.Discoverer.Discover(deps.Ctx, deps.Listings)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdsco.ErrorMessage(err))
		return err
	}

	for _, page := range discovery.Skipped {
		fmt.Fprintf(deps.Stderr, "warning: skipped %s: %s\n", page.URL, cdsco.ErrorMessage(page.Err))
	}

	if len(discovery.Documents) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found.")
		return nil
	}
	fmt.Fprintf(deps.Stderr, "Found %d documents\n", len(discovery.Documents))

	opts := search.Options{MinCount: c.MinCount}
	if !c.NoProgress {
		opts.Progress = func(p cdsco.SearchProgress) {
			fmt.Fprintf(deps.Stderr, "Processing document %d/%d: %s\n", p.Index, p.Total, p.Document.Label())
		}
	}

	report, err := deps.Engine.Search(deps.Ctx, discovery.Documents, c.Keyword, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdsco.ErrorMessage(err))
		return err
	}

	for _, failed := range report.Failed {
		fmt.Fprintf(deps.Stderr, "warning: could not read %s: %s\n", failed.Document.Label(), cdsco.ErrorMessage(failed.Err))
	}

	if len(report.Results) == 0 {
		fmt.Fprintf(deps.Stdout, "No documents matched %q (%d scanned).\n", c.Keyword, report.Scanned)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%d of %d documents matched %q:\n", len(report.Results), report.Scanned, c.Keyword)
	for _, result := range report.Results {
		fmt.Fprintf(deps.Stdout, "\n%s (%d occurrences)\n%s\n", result.Document.Label(), result.Count, result.Document.URL)
		for _, snippet := range result.Snippets {
			fmt.Fprintf(deps.Stdout, "  ...%s...\n", snippet)
		}
	}

	return nil
}
