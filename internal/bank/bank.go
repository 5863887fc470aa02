// Package bank holds the static fallback question bank used when live
// generation is unavailable or returns fewer questions than requested.
package bank

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"interviewgen/pkg/models"
)

// Bank is a read-only mapping from role, experience level and category to an
// ordered list of canned questions. Loaded once at startup, never mutated.
type Bank struct {
	roles       map[string]roleEntry
	defaultRole string
}

type roleEntry map[models.ExperienceLevel]levelEntry

type levelEntry map[models.QuestionCategory][]string

// bankFile is the YAML shape of an optional override file
type bankFile struct {
	Roles map[string]map[string]map[string][]string `yaml:"roles"`
}

// New returns the built-in bank
func New() *Bank {
	return &Bank{
		roles:       builtinRoles(),
		defaultRole: "Python Developer",
	}
}

// NewFromFile returns the built-in bank merged with an override YAML file.
// Roles present in the file replace the built-in entry for that role.
func NewFromFile(path string) (*Bank, error) {
	b := New()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bank file: %w", err)
	}

	var bf bankFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse bank file: %w", err)
	}

	for role, levels := range bf.Roles {
		entry := roleEntry{}
		for level, categories := range levels {
			le := levelEntry{}
			for category, questions := range categories {
				le[models.QuestionCategory(category)] = questions
			}
			entry[models.NormalizeExperienceLevel(level)] = le
		}
		b.roles[role] = entry
	}

	return b, nil
}

// Questions returns the bank questions for the given role, level and category
// in bank order. Unknown roles fall back to the default role; unknown levels
// fall back to entry level.
func (b *Bank) Questions(role string, level models.ExperienceLevel, category models.QuestionCategory) []string {
	entry, ok := b.lookupRole(role)
	if !ok {
		entry = b.roles[b.defaultRole]
	}

	le, ok := entry[level]
	if !ok {
		le = entry[models.LevelEntry]
	}

	return le[category]
}

// Roles returns the configured role names, sorted
func (b *Bank) Roles() []string {
	names := make([]string, 0, len(b.roles))
	for name := range b.roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LastResort returns templated questions built from the role and level alone,
// used when the bank itself has nothing for the requested category. The
// caller must never receive an empty question list.
func LastResort(role string, level models.ExperienceLevel) []string {
	return []string{
		fmt.Sprintf("Tell me about your experience as a %s.", role),
		fmt.Sprintf("What are your key strengths as a %s %s?", level, role),
		fmt.Sprintf("Describe a challenging project you worked on as a %s.", role),
		fmt.Sprintf("How do you stay updated with the latest %s technologies?", role),
		fmt.Sprintf("What tools and frameworks do you use in your %s work?", role),
	}
}

func (b *Bank) lookupRole(role string) (roleEntry, bool) {
	if entry, ok := b.roles[role]; ok {
		return entry, true
	}
	// tolerate case differences in user-supplied role names
	for name, entry := range b.roles {
		if strings.EqualFold(name, role) {
			return entry, true
		}
	}
	return nil, false
}
