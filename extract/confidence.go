package extract

import (
	"strings"

	"github.com/fwojciec/furniq/ahocorasick"
)

// Cue phrases looked for in the raw query and in feature labels.
const (
	cueSofa         = "sofa"
	cueChair        = "chair"
	cueCouch        = "couch"
	cueWith         = "with"
	cueElevated     = "elevated"
	cueRaised       = "raised"
	cueArms         = "arms"
	cueElevatedArms = "elevated arms"
	cueRaisedArms   = "raised arms"
)

var cues = ahocorasick.NewCues(
	cueSofa, cueChair, cueCouch,
	cueWith, cueElevated, cueRaised, cueArms,
	cueElevatedArms, cueRaisedArms,
)

// textCues holds the cue phrases found in a raw query.
type textCues map[string]bool

func findCues(text string) textCues {
	return textCues(cues.Find(text))
}

func (c textCues) any(phrases ...string) bool {
	for _, p := range phrases {
		if c[p] {
			return true
		}
	}
	return false
}

func (c textCues) productNoun() bool { return c.any(cueSofa, cueChair, cueCouch) }
func (c textCues) featureCue() bool  { return c.any(cueWith, cueElevated, cueRaised) }
func (c textCues) armsPhrase() bool  { return c.any(cueElevatedArms, cueRaisedArms) }

// Confidence weights.
const (
	productTypeWeight  = 0.6
	brandWeight        = 0.2
	perFeatureWeight   = 0.03
	featureCueBonus    = 0.1
	maxFeatureWeight   = 0.15
	perStyleWeight     = 0.02
	maxStyleWeight     = 0.08
	perPlaceWeight     = 0.01
	maxPlaceWeight     = 0.02
	falseProductTypeBy = 0.4
	featureOnlyBonus   = 0.1
	productFeatureBy   = 0.15
	bareProductBonus   = 0.1
	bareProductWords   = 2
)

// confidence scores one pass against the raw query text.
func confidence(p *pass, text string, c textCues) float64 {
	score := 0.0
	if p.hasProductType() {
		score += productTypeWeight
	}
	if p.brand != nil {
		score += brandWeight
	}

	if p.hasFeatures() {
		fs := perFeatureWeight * float64(len(p.features))
		for _, f := range p.features {
			if findCues(f).any(cueElevated, cueRaised, cueArms, cueWith) {
				fs += featureCueBonus
				break
			}
		}
		score += min(fs, maxFeatureWeight)
	}
	score += min(perStyleWeight*float64(len(p.styles)), maxStyleWeight)
	score += min(perPlaceWeight*float64(len(p.places)), maxPlaceWeight)

	switch {
	case c.armsPhrase() && !c.productNoun():
		if p.hasProductType() {
			score -= falseProductTypeBy
		}
		if p.hasFeatures() {
			score += featureOnlyBonus
		}
	case c.productNoun() && c.featureCue():
		if p.hasProductType() && p.hasFeatures() {
			score += productFeatureBy
		}
	case c.productNoun() && len(strings.Fields(text)) <= bareProductWords:
		if p.hasProductType() && !p.hasFeatures() {
			score += bareProductBonus
		}
	}

	return max(0, min(1, score))
}
