// Package generator builds prompts, calls the LLM provider and assembles the
// final question list. The caller always receives a non-empty list: provider
// failures and short responses degrade to the fallback bank, never to an
// error.
package generator

import (
	"context"
	"math"
	"strings"
	"time"

	"interviewgen/internal/bank"
	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/pkg/models"
)

// Completer is the slice of the LLM manager the generator needs
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one generation run
type Result struct {
	Questions []models.Question
	Degraded  bool // true when any fallback content was used
}

// Generator produces interview questions for a candidate profile
type Generator struct {
	completer Completer
	bank      *bank.Bank
	config    *config.Config
	logger    logging.Logger
}

// New creates a generator backed by the given completer and fallback bank
func New(completer Completer, b *bank.Bank, cfg *config.Config) *Generator {
	return &Generator{
		completer: completer,
		bank:      b,
		config:    cfg,
		logger:    logging.GetGlobalLogger(),
	}
}

// ResolveMix normalizes the requested question counts. Explicit per-category
// counts win; otherwise the total is split by the configured technical share.
func (g *Generator) ResolveMix(total int, explicit map[string]int) Mix {
	if len(explicit) > 0 {
		mix := Mix{}
		for category, n := range explicit {
			if n <= 0 {
				continue
			}
			switch models.QuestionCategory(strings.ToLower(category)) {
			case models.CategoryTechnical:
				mix[models.CategoryTechnical] += n
			case models.CategoryBehavioral:
				mix[models.CategoryBehavioral] += n
			}
		}
		if mix.Total() > 0 {
			return g.clampMix(mix)
		}
	}

	if total <= 0 {
		total = g.config.Generator.DefaultQuestions
	}
	if total > g.config.Generator.MaxQuestions {
		total = g.config.Generator.MaxQuestions
	}

	technical := int(math.Round(float64(total) * g.config.Generator.TechnicalShare))
	if technical > total {
		technical = total
	}

	mix := Mix{}
	if technical > 0 {
		mix[models.CategoryTechnical] = technical
	}
	if total-technical > 0 {
		mix[models.CategoryBehavioral] = total - technical
	}
	return mix
}

// clampMix caps an explicit mix at the configured maximum total, trimming
// categories in fixed order
func (g *Generator) clampMix(mix Mix) Mix {
	max := g.config.Generator.MaxQuestions
	if mix.Total() <= max {
		return mix
	}

	clamped := Mix{}
	remaining := max
	for _, category := range categoryOrder {
		n := mix[category]
		if n > remaining {
			n = remaining
		}
		if n > 0 {
			clamped[category] = n
		}
		remaining -= n
	}
	return clamped
}

// Generate runs the full pipeline: prompt, LLM call, lenient parse, fallback
// padding. The returned list is never empty and never longer than the
// requested total.
func (g *Generator) Generate(ctx context.Context, profile models.CandidateProfile, mix Mix) Result {
	prompt := g.buildPrompt(profile, mix)

	generated := g.complete(ctx, profile, prompt)

	return g.assemble(profile, mix, generated)
}

// buildPrompt selects the plain or personalized prompt depending on whether
// resume text is present
func (g *Generator) buildPrompt(profile models.CandidateProfile, mix Mix) string {
	if profile.ResumeText != "" {
		return BuildPersonalizedPrompt(profile, mix)
	}
	return BuildPrompt(profile, mix)
}

// complete calls the LLM with a bounded timeout and parses the response.
// A failed or hung call yields nil; the caller pads from the bank.
func (g *Generator) complete(ctx context.Context, profile models.CandidateProfile, prompt string) []string {
	if g.completer == nil {
		return nil
	}

	timeout := g.config.Generator.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	raw, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		g.logger.Warn("LLM generation failed, falling back to question bank", map[string]interface{}{
			"role":  profile.Role,
			"error": err.Error(),
		})
		return nil
	}

	questions := ParseQuestions(raw, g.config.Generator.MaxQuestionLen)

	g.logger.Info("LLM generation completed", map[string]interface{}{
		"role":            profile.Role,
		"parsed":          len(questions),
		"processing_time": time.Since(startTime),
	})

	return questions
}

// assemble distributes generated questions across the category mix in prompt
// order, then pads each category from the fallback bank without duplicating
// text already collected
func (g *Generator) assemble(profile models.CandidateProfile, mix Mix, generated []string) Result {
	seen := make(map[string]bool)
	result := Result{}

	next := 0
	for _, category := range categoryOrder {
		want := mix[category]
		if want == 0 {
			continue
		}

		have := 0
		for have < want && next < len(generated) {
			q := generated[next]
			next++
			if seen[dedupKey(q)] {
				continue
			}
			seen[dedupKey(q)] = true
			result.Questions = append(result.Questions, models.Question{
				Text:     q,
				Category: category,
				Source:   "llm",
			})
			have++
		}

		if have < want {
			result.Degraded = true
			have += g.padFromBank(profile, category, want-have, seen, &result.Questions)
		}

		// bank had nothing left for this category; keep the list non-empty
		if have < want {
			for _, q := range bank.LastResort(profile.Role, profile.ExperienceLevel) {
				if have >= want {
					break
				}
				if seen[dedupKey(q)] {
					continue
				}
				seen[dedupKey(q)] = true
				result.Questions = append(result.Questions, models.Question{
					Text:     q,
					Category: category,
					Source:   "bank",
				})
				have++
			}
		}
	}

	return result
}

// padFromBank appends bank questions for the category, in bank order,
// skipping duplicates. Returns the number added.
func (g *Generator) padFromBank(profile models.CandidateProfile, category models.QuestionCategory, want int, seen map[string]bool, out *[]models.Question) int {
	added := 0
	for _, q := range g.bank.Questions(profile.Role, profile.ExperienceLevel, category) {
		if added >= want {
			break
		}
		if seen[dedupKey(q)] {
			continue
		}
		seen[dedupKey(q)] = true
		*out = append(*out, models.Question{
			Text:     q,
			Category: category,
			Source:   "bank",
		})
		added++
	}
	return added
}

// dedupKey implements the exact case-insensitive match used for duplicate
// detection between generated and bank questions
func dedupKey(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
