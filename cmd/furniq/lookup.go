package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/furniq"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	category, err := furniq.ParseCategory(c.Category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", furniq.ErrorMessage(err))
		return err
	}

	l := deps.Lookup(category, c.Phrase, c.Top)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}

	if l.Known {
		fmt.Fprintf(deps.Stdout, "%s %q resolves to %s\n", category, c.Phrase, l.Canonical)
	} else {
		fmt.Fprintf(deps.Stdout, "%s %q is not a dictionary term\n", category, c.Phrase)
	}
	if len(l.Completions) > 0 {
		fmt.Fprintf(deps.Stdout, "Completions: %s\n", strings.Join(l.Completions, ", "))
	}
	for _, m := range l.Fuzzy {
		fmt.Fprintf(deps.Stdout, "  %s -> %s (%s, %.2f)\n", m.Match, m.CanonicalForm, m.Algorithm, m.Score)
	}
	return nil
}
