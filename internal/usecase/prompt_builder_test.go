package usecase_test

import (
	"strings"
	"testing"

	"filings-qa/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilder_Build(t *testing.T) {
	builder := usecase.NewPromptBuilder()

	messages := builder.Build("What are the risks?", "AAPL 2023 10-K p.1: risk text")

	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, usecase.SystemPrompt, messages[0].Content)
	assert.Equal(t, "user", messages[1].Role)
	assert.True(t, strings.HasPrefix(messages[1].Content, "User question: What are the risks?\n\nContext:\n"))
	assert.Contains(t, messages[1].Content, "AAPL 2023 10-K p.1: risk text")
}
