// Package vectorstore provides best-effort enrichment of generated question
// sets using a vector index of past sessions. Nothing in this package is
// required for correctness: every failure is swallowed and logged, and the
// primary generation output is never altered or blocked.
package vectorstore

import (
	"context"

	"interviewgen/pkg/models"
)

// Embedder turns text into an embedding vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Record is one stored question with its embedding and metadata
type Record struct {
	ID              string
	Embedding       []float32
	Role            string
	ExperienceLevel models.ExperienceLevel
	Skills          []string
	Question        string
}

// Match is a single nearest-neighbor result, ordered by ascending distance
type Match struct {
	ID              string
	Score           float64 // cosine distance, lower is closer
	Role            string
	ExperienceLevel models.ExperienceLevel
	Question        string
}

// Index is the vector index capability: upsert records, query nearest
type Index interface {
	Upsert(ctx context.Context, records []Record) error
	Query(ctx context.Context, embedding []float32, k int) ([]Match, error)
	IsHealthy(ctx context.Context) error
	Close()
}
