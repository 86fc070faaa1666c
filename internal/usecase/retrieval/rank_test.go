package retrieval_test

import (
	"testing"

	"filings-qa/internal/domain"
	"filings-qa/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_SectionHintDominatesLexicalOverlap(t *testing.T) {
	question := "What are Apple's supply-chain risks?"
	hints := retrieval.InferHints(question)
	require.Equal(t, retrieval.SectionRiskFactors, hints.SectionHint)

	sectionMatch := domain.FilingChunk{
		ChunkID:   "section",
		ItemLabel: "Item 1A",
		Text:      "The registrant discusses various uncertainties here.",
	}
	lexicalMatch := domain.FilingChunk{
		ChunkID:   "lexical",
		ItemLabel: "Item 7",
		Text:      "apple supply chain supplier component shortage risks",
	}

	ranked := retrieval.Rank(question, hints, []domain.FilingChunk{lexicalMatch, sectionMatch}, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "section", ranked[0].Chunk.ChunkID,
		"section bonus must outrank any realistic lexical sum for a short query")
}

func TestRank_StableTieBreak(t *testing.T) {
	// Identical chunks score identically; fetch order must survive ranking.
	chunks := []domain.FilingChunk{
		{ChunkID: "first", FilingYear: 2023, FilingType: "10-K", Text: "same text"},
		{ChunkID: "second", FilingYear: 2023, FilingType: "10-K", Text: "same text"},
		{ChunkID: "third", FilingYear: 2023, FilingType: "10-K", Text: "same text"},
	}

	ranked := retrieval.Rank("unrelated question", retrieval.QueryHints{}, chunks, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].Chunk.ChunkID)
	assert.Equal(t, "second", ranked[1].Chunk.ChunkID)
	assert.Equal(t, "third", ranked[2].Chunk.ChunkID)
}

func TestRank_TruncatesToK(t *testing.T) {
	chunks := make([]domain.FilingChunk, 10)
	for i := range chunks {
		chunks[i] = domain.FilingChunk{ChunkID: string(rune('a' + i)), Text: "text"}
	}

	ranked := retrieval.Rank("question", retrieval.QueryHints{}, chunks, 4)
	assert.Len(t, ranked, 4)
}

func TestScore_KeywordBonusCountsOncePerKeyword(t *testing.T) {
	// "liquidity" appears in both question and chunk; the bonus applies once.
	chunk := domain.FilingChunk{Text: "liquidity remained adequate"}
	withBoth := retrieval.Score("liquidity outlook", retrieval.QueryHints{}, chunk)
	withQuestionOnly := retrieval.Score("liquidity outlook", retrieval.QueryHints{}, domain.FilingChunk{Text: "nothing relevant"})

	// Both sides carry the 1.5 keyword bonus for "liquidity"; the chunk with
	// the literal token also earns the 0.2 token bonus, nothing more.
	assert.InDelta(t, 0.2, withBoth-withQuestionOnly, 1e-9)
}

func TestScore_FilingTypeAndRecency(t *testing.T) {
	base := domain.FilingChunk{Text: "irrelevant", FilingYear: 2000}
	tenK := base
	tenK.FilingType = "10-K"
	eightK := base
	eightK.FilingType = "8-K"

	diff := retrieval.Score("question", retrieval.QueryHints{}, tenK) -
		retrieval.Score("question", retrieval.QueryHints{}, eightK)
	assert.InDelta(t, 0.2, diff, 1e-9)

	newer := base
	newer.FilingYear = 2024
	recencyDiff := retrieval.Score("question", retrieval.QueryHints{}, newer) -
		retrieval.Score("question", retrieval.QueryHints{}, base)
	assert.InDelta(t, 0.01*24, recencyDiff, 1e-9)
}

func TestScore_SectionPrefixMatchIsCaseInsensitive(t *testing.T) {
	hints := retrieval.QueryHints{SectionHint: "Item 1A"}
	chunk := domain.FilingChunk{ItemLabel: "ITEM 1A. Risk Factors", Text: ""}

	withHint := retrieval.Score("q", hints, chunk)
	withoutHint := retrieval.Score("q", retrieval.QueryHints{}, chunk)

	assert.InDelta(t, 5.0, withHint-withoutHint, 1e-9)
}
