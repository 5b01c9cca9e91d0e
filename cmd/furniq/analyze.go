package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/furniq"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	results := make([]*furniq.AnalysisResult, 0, len(c.Texts))
	for _, text := range c.Texts {
		results = append(results, deps.Analyzer.Analyze(text))
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Fprintln(deps.Stdout, furniq.FormatResults(results))
	return nil
}
