package modelgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"filings-qa/internal/domain"
)

// GeneratorClient sends chat prompts to the external text-generation service
// and returns the produced answer. One synchronous call per question.
type GeneratorClient struct {
	BaseURL string
	ModelID string
	Client  *http.Client
}

// NewGeneratorClient constructs a generator for the given endpoint and model.
// If client is nil, a default http.Client with the given timeout is used.
func NewGeneratorClient(baseURL, modelID string, timeout time.Duration, client *http.Client) *GeneratorClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &GeneratorClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		ModelID: modelID,
		Client:  client,
	}
}

type generateRequest struct {
	ModelID   string           `json:"model_id"`
	Messages  []domain.Message `json:"messages"`
	MaxTokens int              `json:"max_tokens,omitempty"`
}

type generateResponse struct {
	Output struct {
		Message struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"message"`
	} `json:"output"`
}

func (g *GeneratorClient) Generate(ctx context.Context, messages []domain.Message, maxTokens int) (*domain.LLMResponse, error) {
	jsonPayload, err := json.Marshal(generateRequest{
		ModelID:   g.ModelID,
		Messages:  messages,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/generate", g.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, domain.NewDependencyError(domain.ServiceGeneration, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewDependencyError(domain.ServiceGeneration,
			fmt.Errorf("generation endpoint returned %d: %s", resp.StatusCode, string(body)))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, domain.NewDependencyError(domain.ServiceGeneration,
			fmt.Errorf("failed to decode generation response: %w", err))
	}
	if len(genResp.Output.Message.Content) == 0 {
		return nil, domain.NewDependencyError(domain.ServiceGeneration,
			fmt.Errorf("generation endpoint returned no content"))
	}

	return &domain.LLMResponse{
		Text: genResp.Output.Message.Content[0].Text,
	}, nil
}

func (g *GeneratorClient) Version() string {
	return g.ModelID
}

var _ domain.LLMClient = (*GeneratorClient)(nil)
