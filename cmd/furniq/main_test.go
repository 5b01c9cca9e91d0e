package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/furniq"
	main "github.com/fwojciec/furniq/cmd/furniq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI against the database at dbPath.
func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = dbPath

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_AnalyzeWithStoredBrand(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, dbPath, "terms", "add", "brand", "Bolzan")
	require.NoError(t, err)
	assert.Contains(t, out, `Added Brand "Bolzan"`)

	out, _, err = run(t, dbPath, "analyze", "armchair from bolzan")
	require.NoError(t, err)
	assert.Contains(t, out, "==== Result #1 ====")
	assert.Contains(t, out, "Product Type: Armchair")
	assert.Contains(t, out, "Brand: Bolzan")
}

func TestMain_Run_AnalyzeJSON(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, dbPath, "--trace", "analyze", "--json", "sofa", "armchair")
	require.NoError(t, err)

	var results []furniq.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	require.NotNil(t, results[0].ProductType)
	assert.Equal(t, "Sofa", *results[0].ProductType)
	assert.NotEmpty(t, results[0].Matches)
	require.NotNil(t, results[1].ProductType)
	assert.Equal(t, "Armchair", *results[1].ProductType)
}

func TestMain_Run_Batch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "queries.txt")
	require.NoError(t, os.WriteFile(input, []byte("sofa\n\narmchair\n"), 0644))
	outDir := filepath.Join(dir, "out")

	out, _, err := run(t, filepath.Join(dir, "test.db"), "batch", input, "--out", outDir, "--name", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "Analyzed 2 queries")

	data, err := os.ReadFile(filepath.Join(outDir, "run.json"))
	require.NoError(t, err)
	var results []furniq.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "sofa", results[0].OriginalText)
	assert.Equal(t, "armchair", results[1].OriginalText)

	text, err := os.ReadFile(filepath.Join(outDir, "run.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), "==== Result #2 ====")
}

func TestMain_Run_Stats(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, filepath.Join(t.TempDir(), "test.db"), "stats")
	require.NoError(t, err)

	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "ProductType")
	assert.Contains(t, out, "Place")
	assert.Contains(t, out, "Matchers: 4")
}

func TestMain_Run_TermsLifecycle(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, _, err := run(t, dbPath, "terms", "add", "product-name", "Ghost Sofa")
	require.NoError(t, err)

	_, stderr, err := run(t, dbPath, "terms", "add", "ProductName", "ghost sofa")
	require.Error(t, err)
	assert.Equal(t, furniq.ECONFLICT, furniq.ErrorCode(err))
	assert.Contains(t, stderr, "already exists")

	out, _, err := run(t, dbPath, "terms", "list", "--category", "productname")
	require.NoError(t, err)
	assert.Contains(t, out, "Ghost Sofa")
}

func TestMain_Run_Threshold(t *testing.T) {
	t.Parallel()

	t.Run("overrides an algorithm threshold", func(t *testing.T) {
		t.Parallel()

		out, _, err := run(t, filepath.Join(t.TempDir(), "test.db"), "--threshold", "levenshtein=0.9", "stats")
		require.NoError(t, err)

		assert.Regexp(t, `Levenshtein\s+3\s+0\.75\s+0\.90`, out)
		assert.Regexp(t, `JaroWinkler\s+2\s+0\.85\s+0\.80`, out)
	})

	t.Run("rejects unknown algorithms", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, filepath.Join(t.TempDir(), "test.db"), "--threshold", "cosine=0.5", "stats")

		require.Error(t, err)
		assert.Equal(t, furniq.EINVALID, furniq.ErrorCode(err))
	})

	t.Run("rejects out of range values", func(t *testing.T) {
		t.Parallel()

		_, _, err := run(t, filepath.Join(t.TempDir(), "test.db"), "--threshold", "soundex=1.5", "stats")

		require.Error(t, err)
		assert.Equal(t, furniq.EINVALID, furniq.ErrorCode(err))
	})
}

func TestMain_Run_Lookup(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	out, _, err := run(t, dbPath, "lookup", "--json", "product-type", "couch")
	require.NoError(t, err)

	var l furniq.TermLookup
	require.NoError(t, json.Unmarshal([]byte(out), &l))
	assert.True(t, l.Known)
	assert.Equal(t, "Sofa", l.Canonical)
	assert.NotEmpty(t, l.Fuzzy)

	out, _, err = run(t, dbPath, "lookup", "feature", "raised")
	require.NoError(t, err)
	assert.Contains(t, out, `Feature "raised" is not a dictionary term`)
	assert.Contains(t, out, "Completions: Elevated Arms")
}

func TestMain_Run_DictionariesExport(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dir := filepath.Join(t.TempDir(), "tables")

	out, _, err := run(t, dbPath, "dictionaries", "export", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "styles.yaml"))

	raw, err := os.ReadFile(filepath.Join(dir, "product_types.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "canonical: Sofa")

	out, _, err = run(t, dbPath, "--dictionaries", dir, "analyze", "couch")
	require.NoError(t, err)
	assert.Contains(t, out, "Product Type: Sofa")
}
