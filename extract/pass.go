package extract

import (
	"github.com/fwojciec/furniq"
	"github.com/fwojciec/furniq/trie"
)

// Pass orders. Order A looks for features before anything else so that
// feature phrases such as "elevated arms" are not misread as a product.
// Order B starts with the brand.
var (
	OrderA = []furniq.Category{
		furniq.CategoryFeature,
		furniq.CategoryProductType,
		furniq.CategoryBrand,
		furniq.CategoryStyle,
		furniq.CategoryPlace,
		furniq.CategoryProductName,
	}
	OrderB = []furniq.Category{
		furniq.CategoryBrand,
		furniq.CategoryProductType,
		furniq.CategoryFeature,
		furniq.CategoryStyle,
		furniq.CategoryPlace,
		furniq.CategoryProductName,
	}
)

// pass accumulates the outcome of running every category in one order.
type pass struct {
	productType *furniq.MatchResult
	brand       *furniq.MatchResult
	productName *furniq.MatchResult
	features    []string
	styles      []string
	places      []string
	matches     []furniq.MatchResult
}

func (p *pass) hasProductType() bool { return p.productType != nil }
func (p *pass) hasFeatures() bool    { return len(p.features) > 0 }

// run executes one pass over tokens using the given tries.
func (a *Analyzer) run(order []furniq.Category, tokens []token, tries map[furniq.Category]*trie.Trie) *pass {
	p := &pass{features: []string{}, styles: []string{}, places: []string{}}
	remaining := tokens
	for _, c := range order {
		e := &extractor{
			category: c,
			policy:   categoryPolicies[c],
			trie:     tries[c],
			fuzzy:    a.strategy.FindBestMatch,
		}
		x := e.run(remaining)
		remaining = x.remaining
		p.record(c, x.matches, tries[c])
	}
	return p
}

func (p *pass) record(c furniq.Category, matches []furniq.MatchResult, t *trie.Trie) {
	for i := range matches {
		m := matches[i]
		p.matches = append(p.matches, m)
		switch c {
		case furniq.CategoryProductType:
			p.productType = &m
		case furniq.CategoryBrand:
			p.brand = &m
		case furniq.CategoryProductName:
			p.productName = &m
		case furniq.CategoryFeature:
			p.features = appendUnique(p.features, m.CanonicalForm)
		case furniq.CategoryStyle:
			p.styles = appendUnique(p.styles, m.CanonicalForm)
		case furniq.CategoryPlace:
			p.places = appendUnique(p.places, m.CanonicalForm)
			// A region expands to the countries it contains.
			for _, country := range t.Dictionary().Countries(m.CanonicalForm) {
				p.places = appendUnique(p.places, country)
			}
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

// result converts the pass into an analysis result for text.
func (p *pass) result(text string, confidence float64, trace bool) *furniq.AnalysisResult {
	r := furniq.NewAnalysisResult(text)
	r.ProductType = canonicalOf(p.productType)
	r.BrandName = canonicalOf(p.brand)
	r.ProductName = canonicalOf(p.productName)
	r.Features = append(r.Features, p.features...)
	r.Styles = append(r.Styles, p.styles...)
	r.Places = append(r.Places, p.places...)
	r.Confidence = confidence
	if trace {
		r.Matches = append([]furniq.MatchResult(nil), p.matches...)
	}
	return r
}

func canonicalOf(m *furniq.MatchResult) *string {
	if m == nil {
		return nil
	}
	s := m.CanonicalForm
	return &s
}
