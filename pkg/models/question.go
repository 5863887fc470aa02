package models

import "time"

// QuestionCategory identifies the kind of interview question
type QuestionCategory string

const (
	CategoryTechnical  QuestionCategory = "technical"
	CategoryBehavioral QuestionCategory = "behavioral"
)

// ExperienceLevel represents the candidate's seniority
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "entry"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

// NormalizeExperienceLevel maps common spellings onto a known level,
// defaulting to entry level for anything unrecognized
func NormalizeExperienceLevel(s string) ExperienceLevel {
	switch s {
	case "entry", "entry-level", "junior":
		return LevelEntry
	case "mid", "mid-level", "intermediate":
		return LevelMid
	case "senior", "senior-level", "lead":
		return LevelSenior
	default:
		return LevelEntry
	}
}

// Question is a single generated interview question
type Question struct {
	Text     string           `json:"text"`
	Category QuestionCategory `json:"category"`
	Source   string           `json:"source"` // "llm" or "bank"
}

// CandidateProfile is the normalized input describing the interview candidate.
// Immutable once built; discarded after the response is produced.
type CandidateProfile struct {
	Role            string          `json:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Skills          []string        `json:"skills"`
	ResumeText      string          `json:"resume_text,omitempty"`
	ExtractedSkills []string        `json:"extracted_skills,omitempty"`
}

// QuestionSession groups the questions produced for one request
type QuestionSession struct {
	SessionID       string          `json:"session_id"`
	Role            string          `json:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Skills          []string        `json:"skills"`
	Questions       []Question      `json:"questions"`
	Personalized    bool            `json:"personalized"`
	CreatedAt       time.Time       `json:"created_at"`
}
