package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interviewgen/pkg/models"
)

func TestQuestions_KnownRole(t *testing.T) {
	b := New()

	questions := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)

	require.NotEmpty(t, questions)
	assert.Equal(t, "What is Python? What are its key features?", questions[0])
}

func TestQuestions_OrderIsStable(t *testing.T) {
	b := New()

	first := b.Questions("Backend Engineer", models.LevelMid, models.CategoryTechnical)
	second := b.Questions("Backend Engineer", models.LevelMid, models.CategoryTechnical)

	assert.Equal(t, first, second)
}

func TestQuestions_UnknownRoleUsesDefault(t *testing.T) {
	b := New()

	unknown := b.Questions("Blacksmith", models.LevelEntry, models.CategoryTechnical)
	fallback := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)

	assert.Equal(t, fallback, unknown)
}

func TestQuestions_UnknownLevelUsesEntry(t *testing.T) {
	b := New()

	// Data Scientist only has entry-level content
	got := b.Questions("Data Scientist", models.LevelSenior, models.CategoryBehavioral)
	entry := b.Questions("Data Scientist", models.LevelEntry, models.CategoryBehavioral)

	assert.Equal(t, entry, got)
}

func TestQuestions_RoleLookupIgnoresCase(t *testing.T) {
	b := New()

	got := b.Questions("python developer", models.LevelEntry, models.CategoryTechnical)
	want := b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical)

	assert.Equal(t, want, got)
}

func TestRoles_Sorted(t *testing.T) {
	b := New()

	roles := b.Roles()

	require.Contains(t, roles, "Python Developer")
	require.Contains(t, roles, "Data Scientist")
	assert.IsNonDecreasing(t, roles)
}

func TestLastResort(t *testing.T) {
	questions := LastResort("Site Reliability Engineer", models.LevelSenior)

	require.Len(t, questions, 5)
	for _, q := range questions {
		assert.NotEmpty(t, q)
	}
	assert.Contains(t, questions[0], "Site Reliability Engineer")
	assert.Contains(t, questions[1], "senior")
}

func TestNewFromFile_MergesOverrides(t *testing.T) {
	content := `roles:
  Frontend Developer:
    entry:
      technical:
        - "What is the virtual DOM?"
        - "Explain event delegation."
      behavioral:
        - "Tell me about a UI you are proud of."
`
	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	b, err := NewFromFile(path)
	require.NoError(t, err)

	added := b.Questions("Frontend Developer", models.LevelEntry, models.CategoryTechnical)
	require.Len(t, added, 2)
	assert.Equal(t, "What is the virtual DOM?", added[0])

	// built-in roles survive the merge
	assert.NotEmpty(t, b.Questions("Python Developer", models.LevelEntry, models.CategoryTechnical))
}

func TestNewFromFile_MissingFile(t *testing.T) {
	_, err := NewFromFile("/nonexistent/bank.yaml")
	assert.Error(t, err)
}

func TestNewFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roles: [not a map"), 0o644))

	_, err := NewFromFile(path)
	assert.Error(t, err)
}
