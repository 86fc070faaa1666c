package retrieval

import (
	"fmt"
	"strings"

	"filings-qa/internal/domain"
)

// contextTextLimit is the hard cut applied to each chunk's text in the
// assembled block. No word-boundary adjustment: context budget control
// matters more than readability here.
const contextTextLimit = 400

// BuildContextBlock formats the ranked candidates into the single text block
// handed to the generator. One line per chunk with provenance, blank line
// between chunks, ranked order preserved.
func BuildContextBlock(candidates []domain.Candidate) string {
	lines := make([]string, len(candidates))
	for i, cand := range candidates {
		c := cand.Chunk
		page := c.Page
		if page <= 0 {
			page = 1
		}
		lines[i] = fmt.Sprintf("%s %d %s p.%d: %s",
			c.Ticker, c.FilingYear, c.FilingType, page, truncate(c.Text, contextTextLimit))
	}
	return strings.Join(lines, "\n\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
