package di

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"filings-qa/internal/adapter/modelgw"
	"filings-qa/internal/adapter/repository"
	"filings-qa/internal/adapter/search"
	"filings-qa/internal/domain"
	"filings-qa/internal/infra/config"
	"filings-qa/internal/infra/httpclient"
	"filings-qa/internal/usecase"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Encoder   domain.VectorEncoder
	Searcher  domain.ChunkSearcher
	Generator domain.LLMClient

	RetrieveUsecase usecase.RetrieveChunksUsecase
	AnswerUsecase   usecase.AnswerQuestionUsecase
}

// NewApplicationComponents wires all dependencies from config. The pool is
// only consulted when the pgvector search backend is selected and may be nil
// otherwise.
func NewApplicationComponents(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) (*ApplicationComponents, error) {
	// Shared HTTP clients with connection pooling
	embedHTTP := httpclient.NewPooledClient(time.Duration(cfg.EmbedTimeout) * time.Second)
	genHTTP := httpclient.NewPooledClient(time.Duration(cfg.GenTimeout) * time.Second)

	// Embedding client, fronted by an LRU cache so repeated questions skip
	// the gateway round-trip.
	var encoder domain.VectorEncoder = modelgw.NewEmbedderClient(
		cfg.EmbedEndpoint, cfg.EmbedModelID,
		time.Duration(cfg.EmbedTimeout)*time.Second, embedHTTP,
	)
	if cfg.EmbedCacheSize > 0 {
		cached, err := modelgw.NewCachedEncoder(encoder, cfg.EmbedCacheSize)
		if err != nil {
			return nil, err
		}
		encoder = cached
	}

	generator := modelgw.NewGeneratorClient(
		cfg.GenEndpoint, cfg.GenModelID,
		time.Duration(cfg.GenTimeout)*time.Second, genHTTP,
	)

	// Search backend selection
	var searcher domain.ChunkSearcher
	switch cfg.SearchBackend {
	case config.SearchBackendPgvector:
		searcher = repository.NewFilingChunkRepository(pool)
		log.Info("search_backend_selected", slog.String("backend", config.SearchBackendPgvector))
	default:
		searchHTTP := httpclient.NewPooledClient(time.Duration(cfg.SearchTimeout) * time.Second)
		searcher = search.NewOpenSearchClient(
			cfg.OpenSearchEndpoint, cfg.OpenSearchIndex,
			time.Duration(cfg.SearchTimeout)*time.Second, searchHTTP,
		)
		log.Info("search_backend_selected",
			slog.String("backend", config.SearchBackendOpenSearch),
			slog.String("index", cfg.OpenSearchIndex))
	}

	retrievalConfig := usecase.DefaultRetrievalConfig()
	retrievalConfig.TopK = cfg.TopK
	retrievalConfig.MaxAnswerTokens = cfg.MaxAnswerTokens
	if err := retrievalConfig.Validate(); err != nil {
		return nil, err
	}

	retrieveUsecase := usecase.NewRetrieveChunksUsecase(encoder, searcher, retrievalConfig, log)

	answerUsecase := usecase.NewAnswerQuestionUsecase(
		retrieveUsecase, usecase.NewPromptBuilder(), generator, retrievalConfig, log,
	)

	return &ApplicationComponents{
		Encoder:         encoder,
		Searcher:        searcher,
		Generator:       generator,
		RetrieveUsecase: retrieveUsecase,
		AnswerUsecase:   answerUsecase,
	}, nil
}
