package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/pkg/utils"
)

// maxSkillResumeChars bounds how much resume text is sent for skill
// extraction to stay well under token limits
const maxSkillResumeChars = 3000

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Complete sends a prompt to Claude and returns the raw completion text
func (cp *ClaudeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	text, err := responseText(response)
	if err != nil {
		return "", err
	}

	cp.logger.Debug("Claude completion finished", map[string]interface{}{
		"provider":        "claude",
		"prompt_length":   len(prompt),
		"response_length": len(text),
		"processing_time": time.Since(startTime),
	})

	return text, nil
}

// ExtractSkills asks Claude for a comma-separated skill list from resume text
func (cp *ClaudeProvider) ExtractSkills(ctx context.Context, resumeText string) ([]string, error) {
	prompt := buildSkillExtractionPrompt(utils.Truncate(resumeText, maxSkillResumeChars))

	raw, err := cp.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var skills []string
	for _, part := range strings.Split(raw, ",") {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}

	return skills, nil
}

// buildSkillExtractionPrompt creates the prompt used for resume skill extraction
func buildSkillExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are a skilled resume parser. Extract technical and soft skills from the following resume text.

Resume text:
%s

Guidelines:
- Extract both technical skills (programming languages, frameworks, tools) and soft skills (leadership, communication, etc.)
- Focus on specific skills, not generic descriptions
- Look for skills in the Skills section, as well as those mentioned in work experience and projects
- Return a comma-separated list of skills, with no additional text or explanation

Example output: Python, JavaScript, React, AWS, Docker, Project Management, Team Leadership`, resumeText)
}

// responseText pulls the first text block out of a Claude message
func responseText(response *anthropic.Message) (string, error) {
	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var text string
	for _, content := range response.Content {
		textContent := content.AsText()
		text = textContent.Text
		break
	}

	if text == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return strings.TrimSpace(text), nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
