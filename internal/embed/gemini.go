package embed

import (
	"context"
	"fmt"
	"strings"

	"github.com/balisaldo/saldo/internal/common"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

// geminiClient implements the Client interface using Google's Gemini API.
type geminiClient struct {
	model *genai.EmbeddingModel
}

// newGeminiClient creates a new Gemini embeddings client.
func newGeminiClient(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key is required", common.ErrMissingConfig)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiEmbeddingModel
	}

	return &geminiClient{
		model: client.EmbeddingModel(model),
	}, nil
}

// Embed sends an embedding request to Gemini.
func (c *geminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is empty", common.ErrInvalidInput)
	}

	res, err := c.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		// The SDK does not expose status codes uniformly; treat API-level
		// failures as transient and let retry exhaustion surface the rest.
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("gemini embed failed: %w", err),
			Retryable: true,
		}
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return res.Embedding.Values, nil
}
