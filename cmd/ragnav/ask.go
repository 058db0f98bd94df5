package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/ragnav"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	session, err := buildSession(deps, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragnav.ErrorMessage(err))
		return err
	}
	printSummary(deps.Stderr, session.Result)

	result, err := session.Ask(deps.Ctx, deps.Answerer, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragnav.ErrorMessage(err))
		return err
	}

	printAnswer(deps.Stdout, result)
	return nil
}

// printAnswer writes an answer with its confidence and sources.
func printAnswer(w io.Writer, result *ragnav.QueryResult) {
	fmt.Fprintln(w, result.Answer)
	fmt.Fprintf(w, "\nConfidence: %.0f%%\n", result.Confidence*100)
	if len(result.Sources) == 0 {
		return
	}
	fmt.Fprintln(w, "Sources:")
	for _, u := range result.Sources {
		fmt.Fprintf(w, "  %s\n", u)
	}
}
