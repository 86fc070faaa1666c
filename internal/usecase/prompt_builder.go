package usecase

import (
	"fmt"

	"filings-qa/internal/domain"
)

// SystemPrompt is the fixed instruction sent with every generation request.
const SystemPrompt = `You are a financial filings analyst. Answer the user's question using ONLY the provided context excerpts from company filings.
Quote the supporting passages as bullet points.
Cite every claim inline in brackets with ticker, filing year, filing type and item, e.g. [AAPL 2023 10-K — Item 1A].
If the context does not contain enough information to answer, say so plainly instead of guessing.`

// PromptBuilder composes the chat messages sent to the generation service.
type PromptBuilder interface {
	Build(question, contextBlock string) []domain.Message
}

type filingPromptBuilder struct{}

// NewPromptBuilder returns the default builder: the fixed system instruction
// plus a user message carrying the question and the assembled context block.
func NewPromptBuilder() PromptBuilder {
	return &filingPromptBuilder{}
}

func (b *filingPromptBuilder) Build(question, contextBlock string) []domain.Message {
	user := fmt.Sprintf("User question: %s\n\nContext:\n%s", question, contextBlock)
	return []domain.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: user},
	}
}
