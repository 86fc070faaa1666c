package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"filings-qa/internal/domain"
	"filings-qa/internal/usecase/retrieval"
)

// AnswerQuestionInput encapsulates the parameters of one answer request.
type AnswerQuestionInput struct {
	Question string
}

// AnswerQuestionOutput is the normalized answer response returned to API
// clients. Contexts is extra metadata; callers that only read Answer keep
// working if it grows.
type AnswerQuestionOutput struct {
	Answer      string
	Contexts    []domain.Candidate
	RetrievalID string
}

// AnswerQuestionUsecase composes the full pipeline: retrieve, assemble
// context, generate.
type AnswerQuestionUsecase interface {
	Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error)
}

type answerQuestionUsecase struct {
	retrieve      RetrieveChunksUsecase
	promptBuilder PromptBuilder
	llmClient     domain.LLMClient
	cfg           RetrievalConfig
	logger        *slog.Logger
}

// NewAnswerQuestionUsecase wires together the components needed to answer a
// question.
func NewAnswerQuestionUsecase(
	retrieve RetrieveChunksUsecase,
	promptBuilder PromptBuilder,
	llmClient domain.LLMClient,
	cfg RetrievalConfig,
	logger *slog.Logger,
) AnswerQuestionUsecase {
	return &answerQuestionUsecase{
		retrieve:      retrieve,
		promptBuilder: promptBuilder,
		llmClient:     llmClient,
		cfg:           cfg,
		logger:        logger,
	}
}

func (u *answerQuestionUsecase) Execute(ctx context.Context, input AnswerQuestionInput) (*AnswerQuestionOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	retrieved, err := u.retrieve.Execute(ctx, RetrieveChunksInput{Question: question})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve context: %w", err)
	}

	// Zero candidates is not an error: the generator still runs with an
	// empty context block and may answer "insufficient information".
	if len(retrieved.Candidates) == 0 {
		u.logger.Warn("empty_candidate_pool",
			slog.String("retrieval_id", retrieved.RetrievalID))
	}

	contextBlock := retrieval.BuildContextBlock(retrieved.Candidates)
	messages := u.promptBuilder.Build(question, contextBlock)

	resp, err := u.llmClient.Generate(ctx, messages, u.cfg.MaxAnswerTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	u.logger.Info("answer_generated",
		slog.String("retrieval_id", retrieved.RetrievalID),
		slog.Int("context_count", len(retrieved.Candidates)),
		slog.String("model", u.llmClient.Version()))

	return &AnswerQuestionOutput{
		Answer:      strings.TrimSpace(resp.Text),
		Contexts:    retrieved.Candidates,
		RetrievalID: retrieved.RetrievalID,
	}, nil
}
