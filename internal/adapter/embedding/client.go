package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"job-recommender/internal/domain"
)

// Client calls the embedding model service over HTTP.
type Client struct {
	BaseURL   string
	Model     string
	Dimension int
	Client    *http.Client
	logger    *slog.Logger
}

// NewClient constructs an embedding client. If httpClient is nil a
// default client with a 30s timeout is used. dimension of 0 disables
// dimensionality validation.
func NewClient(baseURL, model string, dimension int, logger *slog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		Model:     model,
		Dimension: dimension,
		Client:    httpClient,
		logger:    logger,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// Encode embeds the given texts, one vector per text.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	c.logger.Info("embed_started",
		slog.Int("text_count", len(texts)),
		slog.String("model", c.Model))

	jsonData, err := json.Marshal(embedRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embed request: %w", err)
	}

	url := fmt.Sprintf("%s/api/embed", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Error("embed_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("failed to call embedder: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("embed_bad_status",
			slog.Int("status", resp.StatusCode),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("embedder returned status %d", resp.StatusCode)
	}

	var respBody embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode embed response: %w", err)
	}
	if len(respBody.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(respBody.Embeddings))
	}
	if c.Dimension > 0 {
		for i, emb := range respBody.Embeddings {
			if len(emb) != c.Dimension {
				return nil, fmt.Errorf("embedding %d has dimension %d, want %d", i, len(emb), c.Dimension)
			}
		}
	}

	c.logger.Info("embed_completed",
		slog.Int("embedding_count", len(respBody.Embeddings)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return respBody.Embeddings, nil
}

var _ domain.VectorEncoder = (*Client)(nil)
