package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docindex"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	svc, closer, err := deps.OpenIndex(c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}
	defer closer.Close()

	query := strings.Join(c.Query, " ")
	results, err := svc.Search(deps.Ctx, query, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", query)
		return nil
	}

	fmt.Fprintln(deps.Stdout, docindex.FormatSearchResults(results))
	return nil
}
