// Package sessions persists generated question sessions in Redis so the UI
// can show recent activity. Storage is best-effort: callers log and continue
// when Redis is unavailable.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/pkg/models"
)

const recentKey = "sessions:recent"

// Store wraps the Redis client with question session management
type Store struct {
	client      *redis.Client
	ttl         time.Duration
	recentLimit int
	logger      logging.Logger
}

// NewStore creates a new session store instance
func NewStore(cfg *config.Config) *Store {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		// Fallback to default configuration
		opts = &redis.Options{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		}
	}

	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &Store{
		client:      redis.NewClient(opts),
		ttl:         cfg.Sessions.TTL,
		recentLimit: cfg.Sessions.RecentLimit,
		logger:      logging.GetGlobalLogger(),
	}
}

// Save stores a session under its ID and pushes it onto the recent list
func (s *Store) Save(ctx context.Context, session models.QuestionSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKey(session.SessionID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, recentKey, session.SessionID)
	pipe.LTrim(ctx, recentKey, 0, int64(s.recentLimit)-1)
	pipe.Expire(ctx, recentKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update recent sessions list: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (s *Store) Get(ctx context.Context, sessionID string) (*models.QuestionSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session %s not found", sessionID)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.QuestionSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Recent returns up to limit recently generated sessions, newest first.
// Session IDs whose payload has expired are skipped.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.QuestionSession, error) {
	if limit <= 0 || limit > s.recentLimit {
		limit = s.recentLimit
	}

	ids, err := s.client.LRange(ctx, recentKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sessions: %w", err)
	}

	sessions := make([]models.QuestionSession, 0, len(ids))
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if err != nil {
			continue
		}
		sessions = append(sessions, *session)
	}

	return sessions, nil
}

// Ping tests the Redis connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// IsHealthy checks if Redis is connected and healthy
func (s *Store) IsHealthy(ctx context.Context) error {
	return s.Ping(ctx)
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("sessions:question-set:%s", sessionID)
}
