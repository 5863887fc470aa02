package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewgen/internal/bank"
	"interviewgen/internal/config"
	"interviewgen/pkg/models"
)

type stubCompleter struct {
	response string
	err      error
	prompts  []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return cfg
}

func pythonProfile() models.CandidateProfile {
	return models.CandidateProfile{
		Role:            "Python Developer",
		ExperienceLevel: models.LevelEntry,
		Skills:          []string{"Python", "Django"},
	}
}

func TestResolveMix_DefaultSplit(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	mix := gen.ResolveMix(10, nil)

	assert.Equal(t, 7, mix[models.CategoryTechnical])
	assert.Equal(t, 3, mix[models.CategoryBehavioral])
	assert.Equal(t, 10, mix.Total())
}

func TestResolveMix_ZeroUsesConfiguredDefault(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	mix := gen.ResolveMix(0, nil)

	assert.Equal(t, 10, mix.Total())
}

func TestResolveMix_ExplicitCountsWin(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	mix := gen.ResolveMix(10, map[string]int{
		"technical":  2,
		"behavioral": 4,
	})

	assert.Equal(t, 2, mix[models.CategoryTechnical])
	assert.Equal(t, 4, mix[models.CategoryBehavioral])
}

func TestResolveMix_IgnoresUnknownAndNonPositive(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	mix := gen.ResolveMix(6, map[string]int{
		"technical": -3,
		"trivia":    5,
	})

	// explicit map contributed nothing usable, fall back to the split
	assert.Equal(t, 6, mix.Total())
	assert.Equal(t, 4, mix[models.CategoryTechnical])
}

func TestResolveMix_ClampsAtMaximum(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	mix := gen.ResolveMix(0, map[string]int{
		"technical":  40,
		"behavioral": 40,
	})

	assert.Equal(t, 50, mix.Total())
	assert.Equal(t, 40, mix[models.CategoryTechnical])
	assert.Equal(t, 10, mix[models.CategoryBehavioral])

	capped := gen.ResolveMix(200, nil)
	assert.Equal(t, 50, capped.Total())
}

func TestGenerate_ProviderFailureUsesBankOnly(t *testing.T) {
	completer := &stubCompleter{err: errors.New("provider unavailable")}
	b := bank.New()
	gen := New(completer, b, testConfig(t))

	mix := Mix{models.CategoryTechnical: 3, models.CategoryBehavioral: 2}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	require.Len(t, result.Questions, 5)
	assert.True(t, result.Degraded)

	bankTechnical := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)
	bankBehavioral := b.Questions("Python Developer", models.LevelEntry, models.CategoryBehavioral)

	for i := 0; i < 3; i++ {
		assert.Equal(t, bankTechnical[i], result.Questions[i].Text)
		assert.Equal(t, models.CategoryTechnical, result.Questions[i].Category)
		assert.Equal(t, "bank", result.Questions[i].Source)
	}
	for i := 0; i < 2; i++ {
		assert.Equal(t, bankBehavioral[i], result.Questions[3+i].Text)
		assert.Equal(t, models.CategoryBehavioral, result.Questions[3+i].Category)
	}
}

func TestGenerate_ShortResponsePadsFromBank(t *testing.T) {
	completer := &stubCompleter{
		response: `["How do Python iterators work?", "Explain list comprehensions.", "What does PEP 8 cover?", "How does pip resolve dependencies?"]`,
	}
	b := bank.New()
	gen := New(completer, b, testConfig(t))

	mix := Mix{models.CategoryTechnical: 5, models.CategoryBehavioral: 2}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	require.Len(t, result.Questions, 7)
	assert.True(t, result.Degraded)

	llmCount := 0
	for _, q := range result.Questions {
		if q.Source == "llm" {
			llmCount++
			assert.Equal(t, models.CategoryTechnical, q.Category)
		}
	}
	assert.Equal(t, 4, llmCount)

	// categories keep prompt order: technical block first, behavioral after
	for _, q := range result.Questions[:5] {
		assert.Equal(t, models.CategoryTechnical, q.Category)
	}
	for _, q := range result.Questions[5:] {
		assert.Equal(t, models.CategoryBehavioral, q.Category)
		assert.Equal(t, "bank", q.Source)
	}
}

func TestGenerate_FullResponseIsNotDegraded(t *testing.T) {
	completer := &stubCompleter{
		response: `["Q one?", "Q two?", "Q three?", "Q four?", "Q five?"]`,
	}
	gen := New(completer, bank.New(), testConfig(t))

	mix := Mix{models.CategoryTechnical: 3, models.CategoryBehavioral: 2}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	require.Len(t, result.Questions, 5)
	assert.False(t, result.Degraded)
	for _, q := range result.Questions {
		assert.Equal(t, "llm", q.Source)
	}
}

func TestGenerate_DeduplicatesCaseInsensitively(t *testing.T) {
	b := bank.New()
	bankFirst := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)[0]
	completer := &stubCompleter{
		response: `["` + bankFirst + `", "  ` + bankFirst + ` ", "A genuinely new question?"]`,
	}
	gen := New(completer, b, testConfig(t))

	mix := Mix{models.CategoryTechnical: 4}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	require.Len(t, result.Questions, 4)

	seen := make(map[string]bool)
	for _, q := range result.Questions {
		key := q.Text
		assert.False(t, seen[key], "duplicate question: %s", key)
		seen[key] = true
	}
}

func TestGenerate_NeverReturnsEmpty(t *testing.T) {
	completer := &stubCompleter{err: errors.New("provider unavailable")}
	gen := New(completer, bank.New(), testConfig(t))

	// more behavioral questions than the bank holds for this role/level
	mix := Mix{models.CategoryBehavioral: 10}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	require.Len(t, result.Questions, 10)
	assert.True(t, result.Degraded)
	for _, q := range result.Questions {
		assert.NotEmpty(t, q.Text)
		assert.Equal(t, models.CategoryBehavioral, q.Category)
	}
}

func TestGenerate_NeverExceedsRequestedTotal(t *testing.T) {
	completer := &stubCompleter{
		response: `["One?", "Two?", "Three?", "Four?", "Five?", "Six?", "Seven?", "Eight?"]`,
	}
	gen := New(completer, bank.New(), testConfig(t))

	mix := Mix{models.CategoryTechnical: 2, models.CategoryBehavioral: 1}
	result := gen.Generate(context.Background(), pythonProfile(), mix)

	assert.Len(t, result.Questions, 3)
}

func TestGenerate_UnknownRoleFallsBackToDefaultBank(t *testing.T) {
	completer := &stubCompleter{err: errors.New("provider unavailable")}
	b := bank.New()
	gen := New(completer, b, testConfig(t))

	profile := models.CandidateProfile{
		Role:            "Underwater Basket Weaver",
		ExperienceLevel: models.LevelEntry,
	}
	mix := Mix{models.CategoryTechnical: 2}
	result := gen.Generate(context.Background(), profile, mix)

	require.Len(t, result.Questions, 2)
	defaults := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)
	assert.Equal(t, defaults[0], result.Questions[0].Text)
}

func TestGenerate_PersonalizedPromptWhenResumePresent(t *testing.T) {
	completer := &stubCompleter{response: `["Q?"]`}
	gen := New(completer, bank.New(), testConfig(t))

	profile := pythonProfile()
	profile.ResumeText = "Built a Django billing service handling 10k requests per day."

	gen.Generate(context.Background(), profile, Mix{models.CategoryTechnical: 1})

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "personalized")
	assert.Contains(t, completer.prompts[0], "Django billing service")
}

func TestGenerate_NilCompleterUsesBank(t *testing.T) {
	gen := New(nil, bank.New(), testConfig(t))

	result := gen.Generate(context.Background(), pythonProfile(), Mix{models.CategoryTechnical: 2})

	require.Len(t, result.Questions, 2)
	assert.True(t, result.Degraded)
}
