package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"filings-qa/internal/domain"
	"filings-qa/internal/usecase/retrieval"

	"github.com/google/uuid"
)

// ErrEmptyQuestion is returned before any external call when the question is
// blank. A local validation failure, not a dependency failure.
var ErrEmptyQuestion = errors.New("question is empty")

// RetrieveChunksInput defines the input parameters for RetrieveChunks.
type RetrieveChunksInput struct {
	Question string
}

// RetrieveChunksOutput carries the ranked candidates for one question.
type RetrieveChunksOutput struct {
	RetrievalID string
	Hints       retrieval.QueryHints
	Candidates  []domain.Candidate
}

// RetrieveChunksUsecase runs the retrieval half of the pipeline: embed the
// question, fetch a wide candidate pool, deduplicate, rank to top-K.
type RetrieveChunksUsecase interface {
	Execute(ctx context.Context, input RetrieveChunksInput) (*RetrieveChunksOutput, error)
}

type retrieveChunksUsecase struct {
	encoder  domain.VectorEncoder
	searcher domain.ChunkSearcher
	cfg      RetrievalConfig
	logger   *slog.Logger
}

// NewRetrieveChunksUsecase creates a new RetrieveChunksUsecase.
func NewRetrieveChunksUsecase(
	encoder domain.VectorEncoder,
	searcher domain.ChunkSearcher,
	cfg RetrievalConfig,
	logger *slog.Logger,
) RetrieveChunksUsecase {
	return &retrieveChunksUsecase{
		encoder:  encoder,
		searcher: searcher,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *retrieveChunksUsecase) Execute(ctx context.Context, input RetrieveChunksInput) (*RetrieveChunksOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	retrievalID := uuid.NewString()
	hints := retrieval.InferHints(question)

	vector, err := u.encoder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	// The inferred ticker filter is strict: a ticker that matches nothing in
	// the index yields zero candidates rather than silently widening.
	filter := domain.ChunkFilter{Ticker: hints.Ticker}
	pool, err := u.searcher.Search(ctx, vector, filter, u.cfg.PoolSize())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate pool: %w", err)
	}

	deduped := retrieval.Dedupe(pool)
	ranked := retrieval.Rank(question, hints, deduped, u.cfg.TopK)

	u.logger.Info("retrieval_completed",
		slog.String("retrieval_id", retrievalID),
		slog.String("ticker_filter", hints.Ticker),
		slog.String("section_hint", hints.SectionHint),
		slog.Int("pool_size", len(pool)),
		slog.Int("after_dedupe", len(deduped)),
		slog.Int("ranked", len(ranked)))

	return &RetrieveChunksOutput{
		RetrievalID: retrievalID,
		Hints:       hints,
		Candidates:  ranked,
	}, nil
}
