package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats := deps.Stats()

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tENTRIES\tTERMS\tNODES\tDEPTH\tCOLLISIONS")
	for _, s := range stats.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n",
			s.Category, s.Entries, s.Terms, s.Nodes, s.MaxDepth, s.Collisions)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Matchers: %d\n", stats.Matchers)
	if len(stats.Algorithms) == 0 {
		return nil
	}

	fmt.Fprintln(deps.Stdout)
	tw = tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ALGORITHM\tPRIORITY\tRELIABILITY\tTHRESHOLD")
	for _, a := range stats.Algorithms {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\n", a.Algorithm, a.Priority, a.Reliability, a.MinThreshold)
	}
	return tw.Flush()
}
