package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/newsdigest"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	keyword := strings.Join(c.Keyword, " ")

	result, err := deps.Digester.Digest(deps.Ctx, c.URL, []string{keyword})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsdigest.ErrorMessage(err))
		return err
	}

	if c.JSON {
		matches := result.Matches
		if matches == nil {
			matches = []*newsdigest.Article{}
		}
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(matches)
	}

	fmt.Fprintln(deps.Stdout, result.Message)
	return nil
}
