package usecase

import "fmt"

// RetrievalConfig holds the tunable parameters of the retrieval pipeline.
type RetrievalConfig struct {
	// TopK is the number of ranked chunks kept for the generation context.
	TopK int

	// PoolMultiplier and PoolFloor size the raw candidate pool requested from
	// the search service: max(PoolMultiplier*TopK, PoolFloor). The wide pool
	// guarantees enough raw material survives deduplication and re-ranking.
	PoolMultiplier int
	PoolFloor      int

	// MaxAnswerTokens bounds the generator's output length.
	MaxAnswerTokens int
}

// DefaultRetrievalConfig returns the contract defaults.
func DefaultRetrievalConfig() RetrievalConfig {
	return RetrievalConfig{
		TopK:            8,
		PoolMultiplier:  4,
		PoolFloor:       30,
		MaxAnswerTokens: 512,
	}
}

// PoolSize returns the candidate pool size requested from the search service.
func (c RetrievalConfig) PoolSize() int {
	n := c.PoolMultiplier * c.TopK
	if n < c.PoolFloor {
		return c.PoolFloor
	}
	return n
}

// Validate checks the configuration values.
func (c RetrievalConfig) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("topK must be positive, got %d", c.TopK)
	}
	if c.PoolMultiplier <= 0 {
		return fmt.Errorf("poolMultiplier must be positive, got %d", c.PoolMultiplier)
	}
	if c.PoolFloor <= 0 {
		return fmt.Errorf("poolFloor must be positive, got %d", c.PoolFloor)
	}
	if c.MaxAnswerTokens <= 0 {
		return fmt.Errorf("maxAnswerTokens must be positive, got %d", c.MaxAnswerTokens)
	}
	return nil
}
