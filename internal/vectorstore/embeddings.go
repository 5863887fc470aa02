package vectorstore

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"interviewgen/internal/config"
)

// GeminiEmbedder implements Embedder using the Gemini embeddings API
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder from the configured API key
func NewGeminiEmbedder(ctx context.Context, cfg *config.Config) (*GeminiEmbedder, error) {
	if cfg.Embeddings.APIKey == "" {
		return nil, fmt.Errorf("embeddings API key not configured - set EMBEDDINGS_API_KEY environment variable")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.Embeddings.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  cfg.Embeddings.Model,
	}, nil
}

// Embed returns the embedding vector for the given text
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := g.client.Models.EmbedContent(ctx, g.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("embeddings API returned an empty result")
	}

	return result.Embeddings[0].Values, nil
}
