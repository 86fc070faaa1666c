package retrieval

import (
	"regexp"
	"strings"
)

// QueryHints carries the filter and scoring bias inferred from a question
// before any retrieval happens. Both fields are optional; an empty value
// means the question gave no signal.
type QueryHints struct {
	// Ticker becomes an equality filter on the fetch. Empty = no filter,
	// which broadens recall rather than risking a false exclusion.
	Ticker string
	// SectionHint biases ranking toward chunks whose item_label starts with
	// it. It never filters candidates.
	SectionHint string
}

// Section labels the hint classifier can produce.
const (
	SectionRiskFactors = "Item 1A"
	SectionMDAndA      = "Item 7"
)

// entityPatterns maps known entity mentions (exact symbol or common name) to
// the ticker stored in the index. First match wins.
var entityPatterns = []struct {
	ticker  string
	pattern *regexp.Regexp
}{
	{"AAPL", regexp.MustCompile(`(?i)\b(AAPL|Apple)\b`)},
	{"MSFT", regexp.MustCompile(`(?i)\b(MSFT|Microsoft)\b`)},
	{"AMZN", regexp.MustCompile(`(?i)\b(AMZN|Amazon)\b`)},
	{"GOOGL", regexp.MustCompile(`(?i)\b(GOOGL|Alphabet|Google)\b`)},
	{"NVDA", regexp.MustCompile(`(?i)\b(NVDA|Nvidia)\b`)},
	{"TSLA", regexp.MustCompile(`(?i)\b(TSLA|Tesla)\b`)},
}

var riskVocabulary = []string{"risk", "supply-chain", "supply chain"}

var liquidityVocabulary = []string{"cash", "liquidity", "balance sheet", "cash flow"}

// InferHints classifies the question into an optional ticker filter and an
// optional section hint. Pure function of the question text.
func InferHints(question string) QueryHints {
	return QueryHints{
		Ticker:      inferTicker(question),
		SectionHint: inferSection(question),
	}
}

func inferTicker(question string) string {
	for _, e := range entityPatterns {
		if e.pattern.MatchString(question) {
			return e.ticker
		}
	}
	return ""
}

func inferSection(question string) string {
	ql := strings.ToLower(question)
	for _, kw := range riskVocabulary {
		if strings.Contains(ql, kw) {
			return SectionRiskFactors
		}
	}
	for _, kw := range liquidityVocabulary {
		if strings.Contains(ql, kw) {
			return SectionMDAndA
		}
	}
	return ""
}
