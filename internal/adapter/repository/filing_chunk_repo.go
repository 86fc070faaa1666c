package repository

import (
	"context"
	"fmt"

	"filings-qa/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// filingChunkRepository implements domain.ChunkSearcher against a pgvector
// table, for deployments that index filings in Postgres instead of an
// OpenSearch cluster. The table is written by the offline ingestion process;
// this repository only reads.
type filingChunkRepository struct {
	pool *pgxpool.Pool
}

// NewFilingChunkRepository creates a pgvector-backed ChunkSearcher.
func NewFilingChunkRepository(pool *pgxpool.Pool) domain.ChunkSearcher {
	return &filingChunkRepository{pool: pool}
}

func (r *filingChunkRepository) Search(ctx context.Context, vector []float32, filter domain.ChunkFilter, size int) ([]domain.FilingChunk, error) {
	// Cosine distance ordering matches the similarity space the OpenSearch
	// backend is provisioned with.
	query := `
		SELECT doc_id, chunk_id, ticker, filing_type, filing_year, item_label, page, text
		FROM filing_chunks
		WHERE ($2::text = '' OR ticker = $2)
		ORDER BY embedding <=> $1
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(vector), filter.Ticker, size)
	if err != nil {
		return nil, domain.NewDependencyError(domain.ServiceSearch,
			fmt.Errorf("failed to query filing chunks: %w", err))
	}
	defer rows.Close()

	var chunks []domain.FilingChunk
	for rows.Next() {
		var c domain.FilingChunk
		if err := rows.Scan(&c.DocID, &c.ChunkID, &c.Ticker, &c.FilingType, &c.FilingYear, &c.ItemLabel, &c.Page, &c.Text); err != nil {
			return nil, domain.NewDependencyError(domain.ServiceSearch,
				fmt.Errorf("failed to scan filing chunk: %w", err))
		}
		if c.Page <= 0 {
			c.Page = 1
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDependencyError(domain.ServiceSearch,
			fmt.Errorf("failed to read filing chunks: %w", err))
	}

	return chunks, nil
}
