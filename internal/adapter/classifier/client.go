package classifier

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

	"job-recommender/internal/domain"
)

// predictRequest is the payload for the domain prediction endpoint.
type predictRequest struct {
	Embedding []float32 `json:"embedding"`
	TopK      int       `json:"top_k"`
}

// predictResponse is the domain prediction endpoint response.
type predictResponse struct {
	Predictions []predictionEntry `json:"predictions"`
}

type predictionEntry struct {
	Domain      string  `json:"domain"`
	Probability float64 `json:"probability"`
}

// Client calls the domain classifier model service over HTTP.
type Client struct {
	BaseURL string
	Client  *http.Client
	logger  *slog.Logger
}

// NewClient constructs a classifier client. If httpClient is nil a
// default client with a 30s timeout is used.
func NewClient(baseURL string, logger *slog.Logger, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  httpClient,
		logger:  logger,
	}
}

// PredictTopK returns the top-k predicted domains for an embedding,
// ordered by descending probability. The service's ordering is
// preserved; responses longer than k are truncated.
func (c *Client) PredictTopK(ctx context.Context, embedding []float32, k int) (domain.DomainPrediction, error) {
	start := time.Now()

	jsonData, err := json.Marshal(predictRequest{Embedding: embedding, TopK: k})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/domains/predict", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("domain_prediction_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("failed to call classifier: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("domain_prediction_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return nil, fmt.Errorf("classifier returned %d: %s", resp.StatusCode, truncateString(string(body), 500))
	}

	var predictResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}

	entries := predictResp.Predictions
	if len(entries) > k {
		entries = entries[:k]
	}
	prediction := make(domain.DomainPrediction, 0, len(entries))
	for _, p := range entries {
		prediction = append(prediction, domain.DomainProbability{
			Name:        p.Domain,
			Probability: p.Probability,
		})
	}

	c.logger.Info("domain_prediction_completed",
		slog.Int("domain_count", len(prediction)),
		slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))

	return prediction, nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ domain.DomainClassifier = (*Client)(nil)
