package embedding

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestEncode_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embed", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, []string{"resume text"}, req.Input)

		_ = json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 3, discard(), nil)

	embeddings, err := client.Encode(context.Background(), []string{"resume text"})

	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embeddings[0])
}

func TestEncode_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 0, discard(), nil)

	_, err := client.Encode(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestEncode_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{0.1}, {0.2}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 0, discard(), nil)

	_, err := client.Encode(context.Background(), []string{"only one"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 embeddings")
}

func TestEncode_DimensionMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{
			Embeddings: [][]float32{{0.1, 0.2}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", 1024, discard(), nil)

	_, err := client.Encode(context.Background(), []string{"text"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension")
}

func TestEncode_ServerDown(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "test-model", 0, discard(), nil)

	_, err := client.Encode(context.Background(), []string{"text"})

	assert.Error(t, err)
}
