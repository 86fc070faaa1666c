package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"filings-qa/internal/domain"
)

// sourceFields is the fixed projection requested from the search service.
// The stored embedding is never fetched, to bound response size.
var sourceFields = []string{
	"doc_id", "chunk_id", "ticker", "filing_type", "filing_year",
	"item_label", "page", "text",
}

// OpenSearchClient runs hybrid (kNN + term filter) queries against an
// OpenSearch-dialect cluster. The cluster owns similarity-space semantics and
// approximate-kNN tuning; this client only shapes requests and parses hits.
type OpenSearchClient struct {
	BaseURL string
	Index   string
	Client  *http.Client
}

// NewOpenSearchClient constructs a client for the given cluster endpoint and
// index. If client is nil, a default http.Client with the given timeout is
// used.
func NewOpenSearchClient(baseURL, index string, timeout time.Duration, client *http.Client) *OpenSearchClient {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &OpenSearchClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Index:   index,
		Client:  client,
	}
}

type knnClause struct {
	Embedding struct {
		Vector []float32 `json:"vector"`
		K      int       `json:"k"`
	} `json:"embedding"`
}

type searchRequest struct {
	Size  int `json:"size"`
	Query struct {
		Bool struct {
			Must   []map[string]knnClause   `json:"must"`
			Filter []map[string]interface{} `json:"filter"`
		} `json:"bool"`
	} `json:"query"`
	Source []string `json:"_source"`
}

type chunkSource struct {
	DocID      string `json:"doc_id"`
	ChunkID    string `json:"chunk_id"`
	Ticker     string `json:"ticker"`
	FilingType string `json:"filing_type"`
	FilingYear int    `json:"filing_year"`
	ItemLabel  string `json:"item_label"`
	Page       int    `json:"page"`
	Text       string `json:"text"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source chunkSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (c *OpenSearchClient) Search(ctx context.Context, vector []float32, filter domain.ChunkFilter, size int) ([]domain.FilingChunk, error) {
	start := time.Now()

	var body searchRequest
	body.Size = size
	var knn knnClause
	knn.Embedding.Vector = vector
	knn.Embedding.K = size
	body.Query.Bool.Must = []map[string]knnClause{{"knn": knn}}
	body.Query.Bool.Filter = []map[string]interface{}{}
	if filter.Ticker != "" {
		body.Query.Bool.Filter = append(body.Query.Bool.Filter,
			map[string]interface{}{"term": map[string]string{"ticker": filter.Ticker}})
	}
	body.Source = sourceFields

	jsonPayload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", c.BaseURL, c.Index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		slog.Error("knn_search_failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return nil, domain.NewDependencyError(domain.ServiceSearch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		slog.Error("knn_search_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Duration("elapsed", time.Since(start)))
		return nil, domain.NewDependencyError(domain.ServiceSearch,
			fmt.Errorf("search endpoint returned %d: %s", resp.StatusCode, string(respBody)))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, domain.NewDependencyError(domain.ServiceSearch,
			fmt.Errorf("failed to decode search response: %w", err))
	}

	chunks := make([]domain.FilingChunk, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		src := hit.Source
		page := src.Page
		if page <= 0 {
			page = 1
		}
		chunks = append(chunks, domain.FilingChunk{
			DocID:      src.DocID,
			ChunkID:    src.ChunkID,
			Ticker:     src.Ticker,
			FilingType: src.FilingType,
			FilingYear: src.FilingYear,
			ItemLabel:  src.ItemLabel,
			Page:       page,
			Text:       src.Text,
		})
	}

	slog.Debug("knn_search_completed",
		slog.Int("requested", size),
		slog.Int("hits", len(chunks)),
		slog.Duration("elapsed", time.Since(start)))

	return chunks, nil
}

var _ domain.ChunkSearcher = (*OpenSearchClient)(nil)
