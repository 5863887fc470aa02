package llm

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/pkg/utils"
)

// Manager manages the configured LLM provider and its lifecycle. It also
// applies client-side rate limiting so bursts of requests do not exhaust the
// upstream API quota.
type Manager struct {
	config   *config.Config
	factory  *Factory
	provider Provider
	limiter  *rate.Limiter
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance
func NewManager(cfg *config.Config) *Manager {
	perMinute := cfg.LLM.RateLimit
	if perMinute <= 0 {
		perMinute = 30
	}

	return &Manager{
		config:  cfg,
		factory: NewFactory(cfg),
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
		logger:  logging.GetGlobalLogger(),
	}
}

// Start initializes the LLM manager and creates the provider
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("LLM provider health check failed - requests will be served from the fallback bank", map[string]interface{}{
			"error": err.Error(),
		})
		m.healthy = false
		// Don't return error - the service still works on fallback content
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started successfully", map[string]interface{}{
			"provider": m.provider.GetProviderName(),
		})
	}

	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// Complete sends a prompt to the provider, waiting on the rate limiter first
func (m *Manager) Complete(ctx context.Context, prompt string) (string, error) {
	provider, err := m.currentProvider()
	if err != nil {
		return "", err
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	return provider.Complete(ctx, prompt)
}

// ExtractSkills extracts skill keywords from resume text using the provider
func (m *Manager) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	provider, err := m.currentProvider()
	if err != nil {
		return nil, err
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	return provider.ExtractSkills(ctx, resumeText)
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth performs a health check on the LLM provider
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = (err == nil)
	m.mu.Unlock()

	return err
}

func (m *Manager) currentProvider() (Provider, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return nil, utils.NewGenerationError("LLM manager not started or provider not available")
	}

	if !healthy {
		return nil, utils.NewGenerationError("LLM provider is not available - check API key configuration (set LLM_API_KEY environment variable)")
	}

	return provider, nil
}
