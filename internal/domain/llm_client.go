package domain

import "context"

// Message is a single chat turn sent to the generation service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMResponse carries the generated answer text.
type LLMResponse struct {
	Text string
}

// LLMClient defines the capability to send prompts to a text-generation model
// and receive the produced answer. One synchronous call per question, no
// retry and no streaming.
type LLMClient interface {
	Generate(ctx context.Context, messages []Message, maxTokens int) (*LLMResponse, error)
	Version() string
}
