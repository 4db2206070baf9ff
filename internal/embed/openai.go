package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/balisaldo/saldo/internal/common"
)

const defaultOpenAIEmbeddingModel = "text-embedding-3-small"

// openAIClient implements the Client interface for the OpenAI embeddings API.
type openAIClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// newOpenAIClient creates a new OpenAI embeddings client.
func newOpenAIClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIEmbeddingModel
	}

	return &openAIClient{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: "https://api.openai.com/v1/embeddings",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed sends an embeddings request to OpenAI.
func (c *openAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", common.ErrInvalidInput)
	}

	requestBody := map[string]any{
		"model": c.model,
		"input": text,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("request failed: %w", err),
			Retryable: true,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatusError(resp.StatusCode, body)
	}

	var response openAIEmbeddingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Data) == 0 || len(response.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return response.Data[0].Embedding, nil
}

// classifyStatusError separates transient failures from permanent
// configuration problems so callers can decide whether to retry or alert.
func classifyStatusError(status int, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", common.ErrRateLimit, string(body))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &common.RetryableError{
			Err:       fmt.Errorf("%w (status %d): %s", common.ErrUnauthorized, status, string(body)),
			Retryable: false,
		}
	case status >= http.StatusInternalServerError:
		return &common.RetryableError{
			Err:       fmt.Errorf("embedding API error (status %d): %s", status, string(body)),
			Retryable: true,
		}
	default:
		return &common.RetryableError{
			Err:       fmt.Errorf("embedding API error (status %d): %s", status, string(body)),
			Retryable: false,
		}
	}
}
