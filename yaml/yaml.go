// Package yaml loads dictionary tables from YAML documents. The default
// product type, feature, style and place tables are embedded in the binary.
package yaml

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/furniq"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var data embed.FS

// fileNames maps the statically tabled categories to their file names.
// Brands and product names come from a term store instead.
var fileNames = map[furniq.Category]string{
	furniq.CategoryProductType: "product_types.yaml",
	furniq.CategoryFeature:     "features.yaml",
	furniq.CategoryStyle:       "styles.yaml",
	furniq.CategoryPlace:       "places.yaml",
}

// FileName returns the table file name of a category, or "" when the
// category has no static table.
func FileName(c furniq.Category) string {
	return fileNames[c]
}

// Decode reads a list of dictionary entries. An empty document yields no
// entries. Unknown fields are rejected.
func Decode(r io.Reader) ([]furniq.DictionaryEntry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var entries []furniq.DictionaryEntry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, furniq.Errorf(furniq.EINVALID, "invalid dictionary: %s", err)
	}
	return entries, nil
}

// Encode writes entries as a YAML list.
func Encode(w io.Writer, entries []furniq.DictionaryEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}
	return enc.Close()
}

// LoadFile reads the dictionary of category from path.
func LoadFile(path string, category furniq.Category) (*furniq.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return furniq.NewDictionary(category, entries), nil
}

// Defaults returns the embedded dictionaries.
func Defaults() (map[furniq.Category]*furniq.Dictionary, error) {
	return load(data, "data")
}

// LoadDir reads the dictionaries found in dir. Categories without a file in
// dir fall back to the embedded table.
func LoadDir(dir string) (map[furniq.Category]*furniq.Dictionary, error) {
	dicts, err := Defaults()
	if err != nil {
		return nil, err
	}

	for c, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		d, err := LoadFile(path, c)
		if err != nil {
			return nil, err
		}
		dicts[c] = d
	}
	return dicts, nil
}

// WriteDir writes the statically tabled dictionaries of dicts to dir, one
// file per category, so that LoadDir reads them back. Other categories are
// skipped. It returns the paths written, in category order.
func WriteDir(dir string, dicts map[furniq.Category]*furniq.Dictionary) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var paths []string
	for _, c := range furniq.Categories() {
		name, d := fileNames[c], dicts[c]
		if name == "" || d == nil {
			continue
		}
		path := filepath.Join(dir, name)
		if err := writeFile(path, d.Entries()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, entries []furniq.DictionaryEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func load(fsys fs.FS, dir string) (map[furniq.Category]*furniq.Dictionary, error) {
	dicts := make(map[furniq.Category]*furniq.Dictionary, len(fileNames))
	for c, name := range fileNames {
		raw, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		entries, err := Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		dicts[c] = furniq.NewDictionary(c, entries)
	}
	return dicts, nil
}
