package embedder

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "text-embedding-3-small"

// OpenAIConfig configures the OpenAI embedder.
type OpenAIConfig struct {
	APIKey string
	// BaseURL points at any OpenAI-compatible server. Empty means api.openai.com.
	BaseURL string
	Model   string
	// Timeout bounds each HTTP call. Zero means no timeout.
	Timeout time.Duration
}

// OpenAIEmbedder uses OpenAI API for embeddings
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	dim    int
}

// NewOpenAIEmbedder creates an OpenAI embedder
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key not set")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	config.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	// Set dimension based on model
	dim := 1536 // default for text-embedding-3-small and ada-002
	if model == "text-embedding-3-large" {
		dim = 3072
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(config),
		model:  model,
		dim:    dim,
	}, nil
}

// Embed makes exactly one embeddings call for text. It never retries.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, &EmbeddingError{Kind: KindTransport, Model: e.model, Err: err}
	}

	if len(resp.Data) == 0 {
		return nil, &EmbeddingError{Kind: KindMalformed, Model: e.model, Err: errors.New("no embedding data returned from API")}
	}
	if len(resp.Data[0].Embedding) == 0 {
		return nil, &EmbeddingError{Kind: KindMalformed, Model: e.model, Err: errors.New("empty embedding vector")}
	}

	v := make([]float32, len(resp.Data[0].Embedding))
	copy(v, resp.Data[0].Embedding)

	// L2 normalize (important for cosine similarity)
	l2normalize(v)

	return v, nil
}

// Dimension returns the embedding dimension
func (e *OpenAIEmbedder) Dimension() int {
	return e.dim
}

// ModelInfo returns model information
func (e *OpenAIEmbedder) ModelInfo() string {
	return "openai-" + e.model
}
