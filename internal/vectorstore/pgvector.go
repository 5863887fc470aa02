package vectorstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"interviewgen/internal/config"
	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"
)

// PgIndex implements Index on Postgres with the pgvector extension
type PgIndex struct {
	pool      *pgxpool.Pool
	dimension int
}

// NewPgIndex connects to Postgres, registers the vector type and ensures the
// questions table exists
func NewPgIndex(ctx context.Context, cfg *config.Config) (*PgIndex, error) {
	if cfg.VectorStore.DatabaseURL == "" {
		return nil, fmt.Errorf("vector store database URL is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.VectorStore.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vector store database URL: %w", err)
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping vector store database: %w", err)
	}

	idx := &PgIndex{
		pool:      pool,
		dimension: cfg.VectorStore.Dimension,
	}

	if err := idx.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return idx, nil
}

func (p *PgIndex) ensureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %w", err)
	}

	sql := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS interview_questions (
			id uuid PRIMARY KEY,
			role text NOT NULL,
			experience_level text NOT NULL,
			skills text[] NOT NULL DEFAULT '{}',
			question text NOT NULL,
			embedding vector(%d),
			created_at timestamptz NOT NULL DEFAULT now()
		)`, p.dimension)

	if _, err := p.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to create interview_questions table: %w", err)
	}

	return nil
}

// Upsert stores records, replacing any existing row with the same ID
func (p *PgIndex) Upsert(ctx context.Context, records []Record) error {
	sql := `
		INSERT INTO interview_questions (id, role, experience_level, skills, question, embedding)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET role = EXCLUDED.role,
		    experience_level = EXCLUDED.experience_level,
		    skills = EXCLUDED.skills,
		    question = EXCLUDED.question,
		    embedding = EXCLUDED.embedding`

	for _, record := range records {
		_, err := p.pool.Exec(ctx, sql,
			record.ID,
			record.Role,
			string(record.ExperienceLevel),
			record.Skills,
			record.Question,
			pgvector.NewVector(record.Embedding),
		)
		if err != nil {
			return utils.NewIndexError(fmt.Sprintf("failed to upsert question record: %v", err))
		}
	}

	return nil
}

// Query returns the k nearest stored questions by cosine distance
func (p *PgIndex) Query(ctx context.Context, embedding []float32, k int) ([]Match, error) {
	sql := `
		SELECT id, role, experience_level, question, embedding <=> $1 AS distance
		FROM interview_questions
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`

	rows, err := p.pool.Query(ctx, sql, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, utils.NewIndexError(err.Error())
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var level string
		if err := rows.Scan(&m.ID, &m.Role, &level, &m.Question, &m.Score); err != nil {
			return nil, fmt.Errorf("failed to scan vector query row: %w", err)
		}
		m.ExperienceLevel = models.ExperienceLevel(level)
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vector query iteration failed: %w", err)
	}

	return matches, nil
}

// IsHealthy checks the database connection
func (p *PgIndex) IsHealthy(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close releases the connection pool
func (p *PgIndex) Close() {
	p.pool.Close()
}
