package modelgw

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

func TestEmbedderClient_Embed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/embed", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req embedRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "titan-embed-v2", req.ModelID)
		assert.Equal(t, "What are Apple's risks?", req.Text)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := NewEmbedderClient(server.URL, "titan-embed-v2", 5*time.Second, nil)
	vec, err := client.Embed(context.Background(), "What are Apple's risks?")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestEmbedderClient_Embed_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewEmbedderClient(server.URL, "titan-embed-v2", 5*time.Second, nil)
	_, err := client.Embed(context.Background(), "question")

	require.Error(t, err)
	assert.True(t, domain.IsDependencyError(err))
}

func TestEmbedderClient_Embed_EmptyVectorIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"embedding": []}`))
	}))
	defer server.Close()

	client := NewEmbedderClient(server.URL, "titan-embed-v2", 5*time.Second, nil)
	_, err := client.Embed(context.Background(), "question")

	require.Error(t, err)
	assert.True(t, domain.IsDependencyError(err))
}

func TestEmbedderClient_Embed_Unreachable(t *testing.T) {
	client := NewEmbedderClient("http://127.0.0.1:1", "titan-embed-v2", time.Second, nil)
	_, err := client.Embed(context.Background(), "question")

	require.Error(t, err)
	assert.True(t, domain.IsDependencyError(err))
}
