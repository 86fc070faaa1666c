package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"filings-qa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hitsPayload = `{
  "hits": {
    "hits": [
      {"_source": {"doc_id": "d1", "chunk_id": "c1", "ticker": "AAPL", "filing_type": "10-K", "filing_year": 2023, "item_label": "Item 1A", "page": 12, "text": "supply chain risk"}},
      {"_source": {"doc_id": "d1", "chunk_id": "c2", "ticker": "AAPL", "filing_type": "10-K", "filing_year": 2023, "item_label": "Item 7", "text": "liquidity discussion"}}
    ]
  }
}`

func TestOpenSearchClient_Search_BuildsHybridQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/kb_chunks/_search", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, float64(32), body["size"])

		boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
		must := boolQuery["must"].([]interface{})
		require.Len(t, must, 1)
		knn := must[0].(map[string]interface{})["knn"].(map[string]interface{})["embedding"].(map[string]interface{})
		assert.Equal(t, float64(32), knn["k"])
		assert.Len(t, knn["vector"].([]interface{}), 3)

		filters := boolQuery["filter"].([]interface{})
		require.Len(t, filters, 1)
		term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
		assert.Equal(t, "AAPL", term["ticker"])

		source := body["_source"].([]interface{})
		assert.Contains(t, source, "item_label")
		assert.NotContains(t, source, "embedding", "stored embeddings must never be fetched")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hitsPayload))
	}))
	defer server.Close()

	client := NewOpenSearchClient(server.URL, "kb_chunks", 10*time.Second, nil)
	chunks, err := client.Search(context.Background(), []float32{0.1, 0.2, 0.3}, domain.ChunkFilter{Ticker: "AAPL"}, 32)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "c1", chunks[0].ChunkID)
	assert.Equal(t, 12, chunks[0].Page)
	assert.Equal(t, 1, chunks[1].Page, "missing page defaults to 1")
}

func TestOpenSearchClient_Search_NoFilterWhenNoTicker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		boolQuery := body["query"].(map[string]interface{})["bool"].(map[string]interface{})
		assert.Empty(t, boolQuery["filter"])

		_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
	}))
	defer server.Close()

	client := NewOpenSearchClient(server.URL, "kb_chunks", 10*time.Second, nil)
	chunks, err := client.Search(context.Background(), []float32{0.1}, domain.ChunkFilter{}, 30)

	require.NoError(t, err)
	assert.Empty(t, chunks, "empty result set is not an error")
}

func TestOpenSearchClient_Search_BadStatusIsDependencyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"parsing_exception"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewOpenSearchClient(server.URL, "kb_chunks", 10*time.Second, nil)
	_, err := client.Search(context.Background(), []float32{0.1}, domain.ChunkFilter{}, 30)

	require.Error(t, err)
	assert.True(t, domain.IsDependencyError(err))
}

func TestOpenSearchClient_Search_MalformedBodyIsDependencyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewOpenSearchClient(server.URL, "kb_chunks", 10*time.Second, nil)
	_, err := client.Search(context.Background(), []float32{0.1}, domain.ChunkFilter{}, 30)

	require.Error(t, err)
	assert.True(t, domain.IsDependencyError(err))
}
