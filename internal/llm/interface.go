package llm

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// Complete sends a prompt to the model and returns the raw completion text
	Complete(ctx context.Context, prompt string) (string, error)

	// ExtractSkills pulls skill keywords out of resume text
	ExtractSkills(ctx context.Context, resumeText string) ([]string, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
