package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"filings-qa/internal/domain"
)

// Score weights. Additive and unbounded: this is a heuristic ranking signal,
// not a probability. The section bonus is the dominant term on purpose so
// that section-relevant chunks surface even with modest lexical overlap.
const (
	keywordBonus     = 1.5
	tokenBonus       = 0.2
	sectionBonus     = 5.0
	filingTypeBonus  = 0.2
	recencyPerYear   = 0.01
)

// domainKeywords is the curated list scanned against both the question and
// the chunk text. "manufactur" is a deliberate stem.
var domainKeywords = []string{
	"supply chain", "supplier", "component", "shortage", "manufactur", "risk",
	"cash", "liquidity", "balance sheet", "competition", "regulatory",
}

var tokenPattern = regexp.MustCompile(`[a-z0-9\-]+`)

// scoreInput holds the per-question values shared by every scorer so they are
// derived once per request, not once per chunk.
type scoreInput struct {
	questionLower string
	tokens        []string
	hints         QueryHints
}

type scorer func(in *scoreInput, chunk domain.FilingChunk) float64

// scorers is the additive pipeline. Adding a signal means appending a
// function here; existing scorers stay untouched.
var scorers = []scorer{
	scoreKeywordOverlap,
	scoreTokenOverlap,
	scoreSectionHint,
	scoreFilingType,
	scoreRecency,
}

func newScoreInput(question string, hints QueryHints) *scoreInput {
	ql := strings.ToLower(question)
	return &scoreInput{
		questionLower: ql,
		tokens:        tokenPattern.FindAllString(ql, -1),
		hints:         hints,
	}
}

func (in *scoreInput) score(chunk domain.FilingChunk) float64 {
	total := 0.0
	for _, s := range scorers {
		total += s(in, chunk)
	}
	return total
}

// Score computes the heuristic relevance of one chunk for the question.
// Exposed for tests; Rank is the production entry point.
func Score(question string, hints QueryHints, chunk domain.FilingChunk) float64 {
	return newScoreInput(question, hints).score(chunk)
}

// Rank scores every chunk and returns the top k as candidates sorted by score
// descending. Ties keep their original fetch order.
func Rank(question string, hints QueryHints, chunks []domain.FilingChunk, k int) []domain.Candidate {
	in := newScoreInput(question, hints)

	candidates := make([]domain.Candidate, len(chunks))
	for i, c := range chunks {
		candidates[i] = domain.Candidate{Chunk: c, Score: in.score(c)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates
}

// scoreKeywordOverlap adds the keyword bonus once per curated keyword present
// in either the question or the chunk text.
func scoreKeywordOverlap(in *scoreInput, chunk domain.FilingChunk) float64 {
	text := strings.ToLower(chunk.Text)
	total := 0.0
	for _, kw := range domainKeywords {
		if strings.Contains(in.questionLower, kw) || strings.Contains(text, kw) {
			total += keywordBonus
		}
	}
	return total
}

// scoreTokenOverlap rewards literal lexical overlap beyond the curated list:
// every question token appearing verbatim in the chunk text counts.
func scoreTokenOverlap(in *scoreInput, chunk domain.FilingChunk) float64 {
	text := strings.ToLower(chunk.Text)
	total := 0.0
	for _, tok := range in.tokens {
		if tok != "" && strings.Contains(text, tok) {
			total += tokenBonus
		}
	}
	return total
}

func scoreSectionHint(in *scoreInput, chunk domain.FilingChunk) float64 {
	if in.hints.SectionHint == "" {
		return 0
	}
	label := strings.ToLower(chunk.ItemLabel)
	if strings.HasPrefix(label, strings.ToLower(in.hints.SectionHint)) {
		return sectionBonus
	}
	return 0
}

func scoreFilingType(_ *scoreInput, chunk domain.FilingChunk) float64 {
	if chunk.FilingType == "10-K" || chunk.FilingType == "10-Q" {
		return filingTypeBonus
	}
	return 0
}

// scoreRecency is proportional to the filing year, so more recent filings
// rank slightly higher all else equal. Deliberately unbounded; see DESIGN.md
// for the tuning sensitivity this carries.
func scoreRecency(_ *scoreInput, chunk domain.FilingChunk) float64 {
	return recencyPerYear * float64(chunk.FilingYear)
}
