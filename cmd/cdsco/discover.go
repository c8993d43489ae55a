package main

import (
	"fmt"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
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

	fmt.Fprintf(deps.Stdout, "Found %d documents:\n\n", len(discovery.Documents))
	for i, doc := range discovery.Documents {
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, doc.Label(), doc.URL)
	}

	return nil
}
