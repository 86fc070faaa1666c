package domain

import "context"

// EmbeddingDim is the dimensionality of the indexed chunk embeddings and of
// every vector produced by the embedding service. The two must match; the
// index is provisioned with this value.
const EmbeddingDim = 1024

// FilingChunk is one indexed passage of a filing document together with its
// provenance metadata. Chunks are produced by an offline ingestion process
// and are read-only to this service.
type FilingChunk struct {
	DocID      string
	ChunkID    string
	Ticker     string
	FilingType string
	FilingYear int
	ItemLabel  string
	Page       int
	Text       string
}

// Candidate pairs a fetched chunk with the heuristic relevance score assigned
// during ranking. Candidates live for one request only.
type Candidate struct {
	Chunk FilingChunk
	Score float64
}

// ChunkFilter narrows a vector search to chunks matching every non-empty
// field. An empty filter matches everything.
type ChunkFilter struct {
	Ticker string
}

// IsZero reports whether the filter constrains anything.
func (f ChunkFilter) IsZero() bool {
	return f.Ticker == ""
}

// ChunkSearcher runs k-nearest-neighbor retrieval against the filing chunk
// index. Results come back in the search service's own relevance order; the
// stored embedding is never part of the result.
type ChunkSearcher interface {
	Search(ctx context.Context, vector []float32, filter ChunkFilter, size int) ([]FilingChunk, error)
}
