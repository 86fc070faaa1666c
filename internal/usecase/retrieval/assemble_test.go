package retrieval_test

import (
	"strings"
	"testing"

	"filings-qa/internal/domain"
	"filings-qa/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContextBlock_Format(t *testing.T) {
	candidates := []domain.Candidate{
		{Chunk: domain.FilingChunk{Ticker: "AAPL", FilingYear: 2023, FilingType: "10-K", Page: 12, Text: "Supply chain risks include component shortages."}},
		{Chunk: domain.FilingChunk{Ticker: "MSFT", FilingYear: 2022, FilingType: "10-Q", Page: 3, Text: "Liquidity remained strong."}},
	}

	block := retrieval.BuildContextBlock(candidates)

	parts := strings.Split(block, "\n\n")
	require.Len(t, parts, 2)
	assert.Equal(t, "AAPL 2023 10-K p.12: Supply chain risks include component shortages.", parts[0])
	assert.Equal(t, "MSFT 2022 10-Q p.3: Liquidity remained strong.", parts[1])
}

func TestBuildContextBlock_HardCutAt400Chars(t *testing.T) {
	long := strings.Repeat("a", 450)
	candidates := []domain.Candidate{
		{Chunk: domain.FilingChunk{Ticker: "AAPL", FilingYear: 2023, FilingType: "10-K", Page: 1, Text: long}},
	}

	block := retrieval.BuildContextBlock(candidates)

	prefix := "AAPL 2023 10-K p.1: "
	assert.Equal(t, prefix+long[:400], block)
}

func TestBuildContextBlock_PageDefaultsToOne(t *testing.T) {
	candidates := []domain.Candidate{
		{Chunk: domain.FilingChunk{Ticker: "AAPL", FilingYear: 2023, FilingType: "10-K", Text: "text"}},
	}

	block := retrieval.BuildContextBlock(candidates)
	assert.Contains(t, block, "p.1:")
}

func TestBuildContextBlock_EmptyPool(t *testing.T) {
	assert.Equal(t, "", retrieval.BuildContextBlock(nil))
}
