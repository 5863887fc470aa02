package generator

import (
	"fmt"
	"sort"
	"strings"

	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"
)

// maxResumePromptChars bounds how much resume text is interpolated into the
// personalized prompt
const maxResumePromptChars = 2000

// categoryOrder fixes the order categories appear in prompts and results
var categoryOrder = []models.QuestionCategory{
	models.CategoryTechnical,
	models.CategoryBehavioral,
}

// Mix maps a question category to the number of questions requested for it
type Mix map[models.QuestionCategory]int

// Total returns the total number of requested questions
func (m Mix) Total() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// BuildPrompt constructs the generation prompt for a candidate profile.
// Pure function: identical inputs always produce byte-identical output.
func BuildPrompt(profile models.CandidateProfile, mix Mix) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d interview questions for a %s %s position.\n",
		mix.Total(), profile.ExperienceLevel, profile.Role)
	fmt.Fprintf(&b, "Required skills: %s\n\n", joinSkills(profile.Skills))

	writeRules(&b, profile, mix)
	writeFormat(&b, mix)

	return b.String()
}

// BuildPersonalizedPrompt constructs the generation prompt when resume text
// is available. Pure function like BuildPrompt.
func BuildPersonalizedPrompt(profile models.CandidateProfile, mix Mix) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d personalized interview questions for a %s %s position.\n\n",
		mix.Total(), profile.ExperienceLevel, profile.Role)
	fmt.Fprintf(&b, "Job Requirements:\n- Required skills: %s\n\n", joinSkills(profile.Skills))
	fmt.Fprintf(&b, "Candidate Profile:\n- Resume: %s\n- Extracted skills: %s\n\n",
		utils.Truncate(profile.ResumeText, maxResumePromptChars), joinSkills(profile.ExtractedSkills))

	b.WriteString("Rules:\n")
	b.WriteString("1. Questions must be specific to the candidate's experience and skills\n")
	b.WriteString("2. Focus on areas where the candidate's experience matches the job requirements\n")
	b.WriteString("3. Ask about specific projects and achievements from their resume\n")
	fmt.Fprintf(&b, "4. Questions should be challenging but fair for %s level\n", profile.ExperienceLevel)
	b.WriteString("5. Each question should be unique and personalized\n\n")

	writeFormat(&b, mix)

	return b.String()
}

func writeRules(b *strings.Builder, profile models.CandidateProfile, mix Mix) {
	b.WriteString("Rules:\n")
	fmt.Fprintf(b, "1. Questions must be specific to %s and the required skills\n", profile.Role)
	fmt.Fprintf(b, "2. Questions should be challenging but fair for %s level\n", profile.ExperienceLevel)
	b.WriteString("3. Avoid generic questions that could apply to any role\n")
	b.WriteString("4. Each question should be unique and specific\n\n")
}

func writeFormat(b *strings.Builder, mix Mix) {
	b.WriteString("Format: Return a JSON list of question strings and nothing else.\n")
	b.WriteString("Order the questions by category:\n")
	for _, category := range categoryOrder {
		if n := mix[category]; n > 0 {
			fmt.Fprintf(b, "- %d %s questions\n", n, category)
		}
	}
}

// joinSkills renders a skill set as a comma-joined, sorted list so the
// prompt does not depend on input ordering
func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "none specified"
	}
	sorted := make([]string, len(skills))
	copy(sorted, skills)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}
