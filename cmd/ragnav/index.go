package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ragnav"
	"github.com/fwojciec/ragnav/crawl"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	session, err := buildSession(deps, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragnav.ErrorMessage(err))
		return err
	}
	result := session.Result

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d pages from %s\n", len(result.IndexedURLs), session.SitemapURL)
	for _, u := range result.IndexedURLs {
		fmt.Fprintf(deps.Stdout, "  + %s\n", u)
	}
	if len(result.SkippedURLs) > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d pages\n", len(result.SkippedURLs))
		for _, u := range result.SkippedURLs {
			fmt.Fprintf(deps.Stdout, "  - %s\n", u)
		}
	}
	if len(result.Errors) > 0 {
		fmt.Fprintln(deps.Stdout, "Diagnostics:")
		for _, msg := range result.Errors {
			fmt.Fprintf(deps.Stdout, "  ! %s\n", msg)
		}
	}

	if session.Content.Len() == 0 {
		return nil
	}

	docs := session.Content.Context()
	size := fmt.Sprintf("%d pages, %s", session.Content.Len(), crawl.FormatBytes(len(docs)))
	if deps.Tokens != nil {
		if tokens, err := deps.Tokens.CountTokens(deps.Ctx, docs); err == nil {
			size += ", " + crawl.FormatTokens(tokens)
		}
	}
	fmt.Fprintf(deps.Stdout, "Context: %s\n", size)
	return nil
}
