package domain

import "context"

// VectorEncoder defines the interface for turning text into a fixed-length
// embedding vector.
type VectorEncoder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Version() string
}
