package retrieval_test

import (
	"testing"

	"filings-qa/internal/usecase/retrieval"

	"github.com/stretchr/testify/assert"
)

func TestInferHints_TickerFromCommonName(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"company name", "What are Apple's supply-chain risks?", "AAPL"},
		{"exact symbol", "Summarize AAPL liquidity position", "AAPL"},
		{"case insensitive", "how is microsoft doing?", "MSFT"},
		{"no mention", "What are the biggest regulatory risks this year?", ""},
		{"substring does not match", "The pineapple industry outlook", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := retrieval.InferHints(tt.question)
			assert.Equal(t, tt.want, hints.Ticker)
		})
	}
}

func TestInferHints_SectionHint(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"risk vocabulary", "What are Apple's supply-chain risks?", retrieval.SectionRiskFactors},
		{"supply chain spelled out", "any supply chain exposure?", retrieval.SectionRiskFactors},
		{"liquidity vocabulary", "How strong is the balance sheet?", retrieval.SectionMDAndA},
		{"cash flow", "Describe cash flow from operations", retrieval.SectionMDAndA},
		{"no signal", "Who is the CEO?", ""},
		{"risk wins over liquidity", "risks to cash generation", retrieval.SectionRiskFactors},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hints := retrieval.InferHints(tt.question)
			assert.Equal(t, tt.want, hints.SectionHint)
		})
	}
}
