package modelgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"filings-qa/internal/domain"
)

// EmbedderClient calls the external embedding service over HTTP.
type EmbedderClient struct {
	BaseURL string
	ModelID string
	Client  *http.Client
}

// NewEmbedderClient constructs an embedder for the given endpoint and model.
// If client is nil, a default http.Client with the given timeout is used.
func NewEmbedderClient(baseURL, modelID string, timeout time.Duration, client *http.Client) *EmbedderClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &EmbedderClient{
		BaseURL: baseURL,
		ModelID: modelID,
		Client:  client,
	}
}

type embedRequest struct {
	ModelID string `json:"model_id"`
	Text    string `json:"text"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (e *EmbedderClient) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()

	jsonData, err := json.Marshal(embedRequest{ModelID: e.ModelID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/embed", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		slog.Error("embed_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, domain.NewDependencyError(domain.ServiceEmbedding, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Error("embed_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return nil, domain.NewDependencyError(domain.ServiceEmbedding,
			fmt.Errorf("embedding endpoint returned status %d", resp.StatusCode))
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, domain.NewDependencyError(domain.ServiceEmbedding,
			fmt.Errorf("failed to decode embed response: %w", err))
	}
	if len(respBody.Embedding) == 0 {
		return nil, domain.NewDependencyError(domain.ServiceEmbedding,
			fmt.Errorf("embedding endpoint returned empty vector"))
	}

	slog.Debug("embed_completed",
		slog.Int("dimension", len(respBody.Embedding)),
		slog.Duration("elapsed", time.Since(start)))

	return respBody.Embedding, nil
}

func (e *EmbedderClient) Version() string {
	return e.ModelID
}

var _ domain.VectorEncoder = (*EmbedderClient)(nil)
