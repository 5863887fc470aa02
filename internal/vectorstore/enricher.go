package vectorstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"
)

// Enricher ties the embedder and index together behind a contract that never
// returns errors to the caller
type Enricher struct {
	embedder Embedder
	index    Index
	topK     int
	timeout  time.Duration
	logger   logging.Logger
}

// NewEnricher creates an enricher. Either dependency may be nil, in which
// case every operation is a silent no-op.
func NewEnricher(embedder Embedder, index Index, cfg *config.Config) *Enricher {
	return &Enricher{
		embedder: embedder,
		index:    index,
		topK:     cfg.VectorStore.TopK,
		timeout:  cfg.VectorStore.Timeout,
		logger:   logging.GetGlobalLogger(),
	}
}

// Enabled reports whether both the embedder and the index are configured
func (e *Enricher) Enabled() bool {
	return e != nil && e.embedder != nil && e.index != nil
}

// TryEnrich queries the index for questions similar to the profile and
// returns their text, deduplicated against the already-collected questions.
// Never returns an error; on any failure the result is nil.
func (e *Enricher) TryEnrich(ctx context.Context, profile models.CandidateProfile, collected []models.Question) []string {
	if !e.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	embedding, err := e.embedder.Embed(ctx, profileText(profile))
	if err != nil {
		e.logger.Warn("Enrichment embedding failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	matches, err := e.index.Query(ctx, embedding, e.topK)
	if err != nil {
		e.logger.Warn("Enrichment query failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	seen := make(map[string]bool, len(collected))
	for _, q := range collected {
		seen[strings.ToLower(strings.TrimSpace(q.Text))] = true
	}

	var related []string
	for _, m := range matches {
		key := strings.ToLower(strings.TrimSpace(m.Question))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		related = append(related, m.Question)
	}

	return related
}

// StoreSession embeds and upserts the questions of a finished session.
// Best-effort; failures are logged and swallowed.
func (e *Enricher) StoreSession(ctx context.Context, session models.QuestionSession) {
	if !e.Enabled() {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	records := make([]Record, 0, len(session.Questions))
	for _, q := range session.Questions {
		embedding, err := e.embedder.Embed(ctx, q.Text)
		if err != nil {
			e.logger.Warn("Session upsert embedding failed", map[string]interface{}{
				"session_id": session.SessionID,
				"error":      err.Error(),
			})
			return
		}
		records = append(records, Record{
			ID:              utils.GenerateRequestID(),
			Embedding:       embedding,
			Role:            session.Role,
			ExperienceLevel: session.ExperienceLevel,
			Skills:          session.Skills,
			Question:        q.Text,
		})
	}

	if err := e.index.Upsert(ctx, records); err != nil {
		e.logger.Warn("Session upsert failed", map[string]interface{}{
			"session_id": session.SessionID,
			"error":      err.Error(),
		})
		return
	}

	e.logger.Debug("Session stored in vector index", map[string]interface{}{
		"session_id": session.SessionID,
		"records":    len(records),
	})
}

// Search embeds a free-text query and returns the nearest stored questions.
// Never returns an error; on any failure the result is nil.
func (e *Enricher) Search(ctx context.Context, query string, limit int) []models.SearchMatch {
	if !e.Enabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	embedding, err := e.embedder.Embed(ctx, query)
	if err != nil {
		e.logger.Warn("Search embedding failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	matches, err := e.index.Query(ctx, embedding, limit)
	if err != nil {
		e.logger.Warn("Search query failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	results := make([]models.SearchMatch, 0, len(matches))
	for _, m := range matches {
		results = append(results, models.SearchMatch{
			Question:        m.Question,
			Role:            m.Role,
			ExperienceLevel: m.ExperienceLevel,
			Score:           m.Score,
		})
	}
	return results
}

// profileText renders a profile as the text that gets embedded for
// similarity lookups. Skills are sorted for stability.
func profileText(profile models.CandidateProfile) string {
	skills := make([]string, len(profile.Skills))
	copy(skills, profile.Skills)
	sort.Strings(skills)

	var b strings.Builder
	b.WriteString(profile.Role)
	b.WriteString(" ")
	b.WriteString(string(profile.ExperienceLevel))
	if len(skills) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(skills, " "))
	}
	return b.String()
}
