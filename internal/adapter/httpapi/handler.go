package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"filings-qa/internal/domain"
	"filings-qa/internal/infra/logger"
	"filings-qa/internal/usecase"
)

type Handler struct {
	retrieveUsecase usecase.RetrieveChunksUsecase
	answerUsecase   usecase.AnswerQuestionUsecase
	logger          *slog.Logger
}

func NewHandler(
	retrieveUsecase usecase.RetrieveChunksUsecase,
	answerUsecase usecase.AnswerQuestionUsecase,
	log *slog.Logger,
) *Handler {
	return &Handler{
		retrieveUsecase: retrieveUsecase,
		answerUsecase:   answerUsecase,
		logger:          log,
	}
}

// Register mounts the API routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/chat", h.Chat)
	e.POST("/v1/retrieve", h.Retrieve)
}

type ChatRequest struct {
	Query string `json:"query"`
}

type ChatResponse struct {
	Answer      string        `json:"answer"`
	RetrievalID string        `json:"retrieval_id"`
	Contexts    []ContextItem `json:"contexts,omitempty"`
}

type RetrieveRequest struct {
	Query string `json:"query"`
}

type RetrieveResponse struct {
	RetrievalID string        `json:"retrieval_id"`
	Ticker      string        `json:"ticker,omitempty"`
	SectionHint string        `json:"section_hint,omitempty"`
	Candidates  []ContextItem `json:"candidates"`
}

type ContextItem struct {
	DocID      string  `json:"doc_id"`
	ChunkID    string  `json:"chunk_id"`
	Ticker     string  `json:"ticker"`
	FilingType string  `json:"filing_type"`
	FilingYear int     `json:"filing_year"`
	ItemLabel  string  `json:"item_label"`
	Page       int     `json:"page"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// Chat answers a question grounded on retrieved filing excerpts.
// (POST /chat)
func (h *Handler) Chat(ctx echo.Context) error {
	var req ChatRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	reqCtx := requestContext(ctx)
	output, err := h.answerUsecase.Execute(reqCtx, usecase.AnswerQuestionInput{
		Question: req.Query,
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	reqCtx = logger.WithRetrievalID(reqCtx, output.RetrievalID)
	logger.WithContext(reqCtx, h.logger).Info("chat_completed",
		slog.Int("context_count", len(output.Contexts)),
		slog.Int("answer_chars", len(output.Answer)))

	return ctx.JSON(http.StatusOK, ChatResponse{
		Answer:      output.Answer,
		RetrievalID: output.RetrievalID,
		Contexts:    toContextItems(output.Contexts),
	})
}

// Retrieve exposes the retrieval half of the pipeline without generation, for
// debugging ranking behavior against a live index.
// (POST /v1/retrieve)
func (h *Handler) Retrieve(ctx echo.Context) error {
	var req RetrieveRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	reqCtx := requestContext(ctx)
	output, err := h.retrieveUsecase.Execute(reqCtx, usecase.RetrieveChunksInput{
		Question: req.Query,
	})
	if err != nil {
		return errorResponse(ctx, err)
	}

	reqCtx = logger.WithRetrievalID(logger.WithTicker(reqCtx, output.Hints.Ticker), output.RetrievalID)
	logger.WithContext(reqCtx, h.logger).Info("retrieve_completed",
		slog.Int("candidate_count", len(output.Candidates)))

	return ctx.JSON(http.StatusOK, RetrieveResponse{
		RetrievalID: output.RetrievalID,
		Ticker:      output.Hints.Ticker,
		SectionHint: output.Hints.SectionHint,
		Candidates:  toContextItems(output.Candidates),
	})
}

func toContextItems(candidates []domain.Candidate) []ContextItem {
	items := make([]ContextItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, ContextItem{
			DocID:      c.Chunk.DocID,
			ChunkID:    c.Chunk.ChunkID,
			Ticker:     c.Chunk.Ticker,
			FilingType: c.Chunk.FilingType,
			FilingYear: c.Chunk.FilingYear,
			ItemLabel:  c.Chunk.ItemLabel,
			Page:       c.Chunk.Page,
			Text:       c.Chunk.Text,
			Score:      c.Score,
		})
	}
	return items
}

// requestContext lifts the echo request ID into the context so downstream
// log lines correlate with the access log.
func requestContext(ctx echo.Context) context.Context {
	reqCtx := ctx.Request().Context()
	if reqID := ctx.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		reqCtx = logger.WithRequestID(reqCtx, reqID)
	}
	return reqCtx
}

// errorResponse maps pipeline errors to HTTP status codes: caller mistakes
// are 400, upstream dependency failures are 502, anything else 500.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyQuestion):
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "query must not be empty"})
	case domain.IsDependencyError(err):
		var depErr *domain.DependencyError
		errors.As(err, &depErr)
		return ctx.JSON(http.StatusBadGateway, map[string]string{
			"error":   "upstream dependency failed",
			"service": depErr.Service,
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
