package furniq

// AnalysisResult is the structured outcome of analyzing one query.
// Single-valued attributes are nil when not found. Lists are never nil.
type AnalysisResult struct {
	ProductType  *string  `json:"productType"`
	BrandName    *string  `json:"brandName"`
	ProductName  *string  `json:"productName"`
	Features     []string `json:"features"`
	Styles       []string `json:"styles"`
	Places       []string `json:"places"`
	OriginalText string   `json:"originalText"`
	Confidence   float64  `json:"confidence"`

	// Matches traces every match of the selected extraction pass. It is
	// only populated when tracing is enabled.
	Matches []MatchResult `json:"matchDetails,omitempty"`
}

// NewAnalysisResult returns an empty result for text.
func NewAnalysisResult(text string) *AnalysisResult {
	return &AnalysisResult{
		Features:     []string{},
		Styles:       []string{},
		Places:       []string{},
		OriginalText: text,
	}
}

// Analyzer extracts attributes from a query. Analyze never fails: text with
// nothing recognizable yields an empty result with zero confidence.
type Analyzer interface {
	Analyze(text string) *AnalysisResult
}

// AnalyzerStats summarizes the dictionaries loaded into an analyzer.
type AnalyzerStats struct {
	Categories []CategoryStats  `json:"categories"`
	Matchers   int              `json:"matchers"`
	Algorithms []AlgorithmStats `json:"algorithms,omitempty"`
}

// AlgorithmStats is the configuration a fuzzy algorithm is ranked with.
type AlgorithmStats struct {
	Algorithm    Algorithm `json:"algorithm"`
	Priority     int       `json:"priority"`
	Reliability  float64   `json:"reliability"`
	MinThreshold float64   `json:"minThreshold"`
}

// CategoryStats describes the index built for one category.
type CategoryStats struct {
	Category   Category `json:"category"`
	Entries    int      `json:"entries"`
	Terms      int      `json:"terms"`
	Nodes      int      `json:"nodes"`
	MaxDepth   int      `json:"maxDepth"`
	Collisions int      `json:"collisions"`
}

// TermLookup describes how a phrase resolves against one category's
// dictionary: as a complete term, as the start of longer terms, and as the
// closest fuzzy candidates.
type TermLookup struct {
	Category    Category      `json:"category"`
	Phrase      string        `json:"phrase"`
	Known       bool          `json:"known"`
	Canonical   string        `json:"canonical,omitempty"`
	Completions []string      `json:"completions"`
	Fuzzy       []MatchResult `json:"fuzzy"`
}
