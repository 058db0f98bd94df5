package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/ragnav"
)

const (
	chatReset   = ":reset"
	chatSources = ":sources"
)

// Run executes the chat command. Questions are read line by line from
// stdin until EOF or :reset.
func (c *ChatCmd) Run(deps *Dependencies) error {
	session, err := buildSession(deps, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ragnav.ErrorMessage(err))
		return err
	}
	printSummary(deps.Stderr, session.Result)

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	fmt.Fprint(deps.Stdout, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
		case chatReset:
			session.Reset()
			fmt.Fprintln(deps.Stdout, "Session reset.")
			return nil
		case chatSources:
			for _, u := range session.Content.URLs() {
				fmt.Fprintf(deps.Stdout, "  %s\n", u)
			}
		default:
			result, err := session.Ask(deps.Ctx, deps.Answerer, line)
			if err != nil {
				if ctxErr := deps.Ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				fmt.Fprintf(deps.Stderr, "error: %s\n", ragnav.ErrorMessage(err))
				break
			}
			printAnswer(deps.Stdout, result)
		}

		fmt.Fprint(deps.Stdout, "> ")
	}
	fmt.Fprintln(deps.Stdout)

	return scanner.Err()
}
