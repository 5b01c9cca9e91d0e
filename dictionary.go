package furniq

import "strings"

// DictionaryEntry is one row of a category table: a canonical label with its
// synonyms and common misspellings. Region is only used by place tables.
type DictionaryEntry struct {
	Canonical  string   `json:"canonical" yaml:"canonical"`
	Synonyms   []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Variations []string `json:"variations,omitempty" yaml:"variations,omitempty"`
	Region     string   `json:"region,omitempty" yaml:"region,omitempty"`
}

// Collision records a term claimed by more than one canonical label.
// The later label wins the mapping.
type Collision struct {
	Term      string `json:"term"`
	Previous  string `json:"previous"`
	Canonical string `json:"canonical"`
}

// Dictionary maps normalized terms of one category to canonical labels.
// A Dictionary is immutable after construction and safe for concurrent use.
type Dictionary struct {
	category   Category
	entries    []DictionaryEntry
	canonical  map[string]string
	terms      []string
	regions    map[string]string
	collisions []Collision
}

// NewDictionary builds a dictionary from entries. Empty terms are skipped, as
// are entries without a canonical label. When two entries claim the same
// term the later one wins and the conflict is recorded in Collisions.
func NewDictionary(category Category, entries []DictionaryEntry) *Dictionary {
	d := &Dictionary{
		category:  category,
		canonical: make(map[string]string),
		regions:   make(map[string]string),
	}

	for _, e := range entries {
		label := strings.TrimSpace(e.Canonical)
		if label == "" {
			continue
		}
		d.entries = append(d.entries, e)

		d.add(label, label)
		for _, s := range e.Synonyms {
			d.add(s, label)
		}
		for _, v := range e.Variations {
			d.add(v, label)
		}

		if region := strings.TrimSpace(e.Region); region != "" {
			d.regions[label] = region
		}
	}

	// Region labels resolve to themselves unless an entry already claims them.
	for _, region := range d.regions {
		key := NormalizeTerm(region)
		if _, ok := d.canonical[key]; !ok {
			d.canonical[key] = region
			d.terms = append(d.terms, key)
		}
	}

	return d
}

func (d *Dictionary) add(term, label string) {
	raw := strings.TrimSpace(term)
	key := NormalizeTerm(raw)
	if key == "" {
		return
	}

	// "country: region" terms feed the country to region lookup.
	if country, region, ok := strings.Cut(raw, ":"); ok {
		if region = strings.TrimSpace(region); region != "" && strings.TrimSpace(country) != "" {
			d.regions[label] = region
		}
	}

	if prev, ok := d.canonical[key]; ok {
		if prev != label {
			d.collisions = append(d.collisions, Collision{Term: key, Previous: prev, Canonical: label})
			d.canonical[key] = label
		}
		return
	}
	d.canonical[key] = label
	d.terms = append(d.terms, key)
}

// NewTermDictionary builds a dictionary from stored term records, where each
// name is its own canonical label.
func NewTermDictionary(category Category, terms []*Term) *Dictionary {
	entries := make([]DictionaryEntry, 0, len(terms))
	for _, t := range terms {
		entries = append(entries, DictionaryEntry{Canonical: t.Name})
	}
	return NewDictionary(category, entries)
}

// Name returns the category name of the dictionary.
func (d *Dictionary) Name() string { return d.category.String() }

// Category returns the category the dictionary describes.
func (d *Dictionary) Category() Category { return d.category }

// Entries returns the accepted entries in insertion order.
func (d *Dictionary) Entries() []DictionaryEntry { return d.entries }

// TermToCanonical returns the normalized term to canonical label mapping.
// Callers must not modify the returned map.
func (d *Dictionary) TermToCanonical() map[string]string { return d.canonical }

// AllTerms returns every normalized term in first-seen order.
func (d *Dictionary) AllTerms() []string { return d.terms }

// Canonical resolves a term to its canonical label.
func (d *Dictionary) Canonical(term string) (string, bool) {
	label, ok := d.canonical[NormalizeTerm(term)]
	return label, ok
}

// Regions returns the canonical country to region lookup.
func (d *Dictionary) Regions() map[string]string { return d.regions }

// Countries returns the canonical labels whose region is region, in entry
// order.
func (d *Dictionary) Countries(region string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range d.entries {
		label := strings.TrimSpace(e.Canonical)
		if r, ok := d.regions[label]; ok && strings.EqualFold(r, region) && !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}

// Collisions returns the terms that were claimed by more than one label.
func (d *Dictionary) Collisions() []Collision { return d.collisions }

// Len returns the number of distinct terms.
func (d *Dictionary) Len() int { return len(d.terms) }
