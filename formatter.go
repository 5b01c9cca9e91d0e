package furniq

import (
	"context"
	"fmt"
	"strings"
)

// FormatResult renders one analysis result as a human-readable block.
// n is the 1-based position of the result in its batch.
func FormatResult(n int, r *AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "==== Result #%d ====\n", n)
	fmt.Fprintf(&b, "Query: %q\n", r.OriginalText)
	fmt.Fprintf(&b, "Product Type: %s\n", valueOr(r.ProductType, "Unknown"))
	fmt.Fprintf(&b, "Features: %s\n", listOr(r.Features, "None"))
	fmt.Fprintf(&b, "Styles: %s\n", listOr(r.Styles, "None"))
	fmt.Fprintf(&b, "Places: %s\n", listOr(r.Places, "None"))
	if r.BrandName != nil {
		fmt.Fprintf(&b, "Brand: %s\n", *r.BrandName)
	}
	if r.ProductName != nil {
		fmt.Fprintf(&b, "Product: %s\n", *r.ProductName)
	}
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "Match Details: %q -> %q -> %q (%s, score: %.3f)\n",
			m.Word, m.Match, m.CanonicalForm, m.Algorithm, m.Score)
	}
	fmt.Fprintf(&b, "Confidence: %.3f", r.Confidence)
	return b.String()
}

// FormatResults renders a batch of results separated by blank lines.
func FormatResults(results []*AnalysisResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		parts = append(parts, FormatResult(i+1, r))
	}
	return strings.Join(parts, "\n\n")
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func listOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}

// ResultFiles holds the paths written by a ResultWriter.
type ResultFiles struct {
	JSONPath string `json:"jsonPath"`
	TextPath string `json:"textPath"`
}

// ResultWriter persists batches of analysis results.
type ResultWriter interface {
	// WriteResults saves results under basename. An empty basename lets the
	// writer choose a timestamped name.
	WriteResults(ctx context.Context, results []*AnalysisResult, basename string) (*ResultFiles, error)
}
