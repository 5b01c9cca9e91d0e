// Package fs provides file-based storage for analysis results.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/furniq"
)

// DefaultPrefix prefixes generated result file names.
const DefaultPrefix = "analysis_results"

// timestampLayout matches the YYYYMMDD_HHMMSS suffix of generated names.
const timestampLayout = "20060102_150405"

// Ensure Writer implements furniq.ResultWriter at compile time.
var _ furniq.ResultWriter = (*Writer)(nil)

// Writer saves analysis results as a JSON file and a text report side by side.
type Writer struct {
	baseDir string

	// Now returns the current time. Overridable for tests.
	Now func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, Now: time.Now}
}

// DefaultBasename returns the name used when WriteResults receives an empty basename.
func DefaultBasename(t time.Time) string {
	return DefaultPrefix + "_" + t.Format(timestampLayout)
}

// WriteResults writes results to <basename>.json and <basename>.txt.
func (w *Writer) WriteResults(ctx context.Context, results []*furniq.AnalysisResult, basename string) (*furniq.ResultFiles, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if basename == "" {
		basename = DefaultBasename(w.Now())
	}
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return nil, err
	}

	files := &furniq.ResultFiles{
		JSONPath: filepath.Join(w.baseDir, basename+".json"),
		TextPath: filepath.Join(w.baseDir, basename+".txt"),
	}
	if err := SaveJSON(files.JSONPath, results); err != nil {
		return nil, err
	}
	if err := SaveText(files.TextPath, results); err != nil {
		return nil, err
	}
	return files, nil
}

// SaveJSON writes results as an indented JSON array.
func SaveJSON(path string, results []*furniq.AnalysisResult) error {
	if results == nil {
		results = []*furniq.AnalysisResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// SaveText writes results in the human-readable report format.
func SaveText(path string, results []*furniq.AnalysisResult) error {
	content := furniq.FormatResults(results)
	if content != "" {
		content += "\n"
	}
	return os.WriteFile(path, []byte(content), 0644)
}
