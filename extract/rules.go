package extract

// choice identifies one of the two passes.
type choice int

const (
	choiceA choice = iota
	choiceB
)

func (c choice) String() string {
	if c == choiceA {
		return "A"
	}
	return "B"
}

// candidates holds both passes of a query for rule evaluation.
type candidates struct {
	cues  textCues
	a, b  *pass
	confA float64
	confB float64
}

// selectionRule picks a pass or abstains.
type selectionRule struct {
	name  string
	apply func(c candidates) (choice, bool)
}

// selectionRules are evaluated in order; the first rule that picks wins.
var selectionRules = []selectionRule{
	{
		// Feature-only text: A found features and no product while B
		// invented a product type on top of features.
		name: "feature-only",
		apply: func(c candidates) (choice, bool) {
			featureOnly := c.cues.any(cueArms, cueElevated) && !c.cues.productNoun()
			if featureOnly &&
				c.a.hasFeatures() && !c.a.hasProductType() &&
				c.b.hasProductType() && c.b.hasFeatures() {
				return choiceA, true
			}
			return 0, false
		},
	},
	{
		// Product with a descriptive cue: prefer the pass that found both.
		name: "product-with-cue",
		apply: func(c candidates) (choice, bool) {
			if !c.cues.productNoun() || !c.cues.featureCue() {
				return 0, false
			}
			aBoth := c.a.hasProductType() && c.a.hasFeatures()
			bBoth := c.b.hasProductType() && c.b.hasFeatures()
			switch {
			case aBoth && !bBoth:
				return choiceA, true
			case bBoth && !aBoth:
				return choiceB, true
			}
			return byConfidence(c), true
		},
	},
	{
		name: "confidence",
		apply: func(c candidates) (choice, bool) {
			return byConfidence(c), true
		},
	},
}

// byConfidence picks B only when it scores strictly higher.
func byConfidence(c candidates) choice {
	if c.confB > c.confA {
		return choiceB
	}
	return choiceA
}

// selectPass returns the chosen pass and the name of the deciding rule.
func selectPass(c candidates) (choice, string) {
	for _, r := range selectionRules {
		if ch, ok := r.apply(c); ok {
			return ch, r.name
		}
	}
	return choiceA, ""
}
