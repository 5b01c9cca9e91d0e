package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/fwojciec/furniq"
	"golang.org/x/sync/errgroup"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	texts, err := c.readQueries(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if len(texts) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no queries found")
		return furniq.Errorf(furniq.EINVALID, "no queries found in %s", c.File)
	}

	results, err := analyzeAll(deps, texts, c.Concurrency)
	if err != nil {
		return err
	}

	files, err := deps.Writer.WriteResults(deps.Ctx, results, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to save results: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Analyzed %d queries\n", len(results))
	fmt.Fprintf(deps.Stdout, "JSON results: %s\n", files.JSONPath)
	fmt.Fprintf(deps.Stdout, "Text results: %s\n", files.TextPath)
	return nil
}

// readQueries returns the non-blank lines of the input file.
func (c *BatchCmd) readQueries(deps *Dependencies) ([]string, error) {
	var r io.Reader
	if c.File == "-" {
		r = os.Stdin
		if deps.Stdin != nil {
			r = deps.Stdin
		}
	} else {
		f, err := os.Open(c.File)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var texts []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	return texts, scanner.Err()
}

// analyzeAll analyzes texts concurrently, keeping results in input order.
func analyzeAll(deps *Dependencies, texts []string, concurrency int) ([]*furniq.AnalysisResult, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]*furniq.AnalysisResult, len(texts))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = deps.Analyzer.Analyze(text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
