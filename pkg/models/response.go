package models

import "time"

// GenerateQuestionsResponse represents the response from a generation request
type GenerateQuestionsResponse struct {
	SessionID       string          `json:"session_id"`
	JobRole         string          `json:"job_role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Skills          []string        `json:"skills"`
	ExtractedSkills []string        `json:"extracted_skills,omitempty"`
	Questions       []Question      `json:"questions"`
	RelatedQuestions []string       `json:"related_questions,omitempty"` // best-effort vector index enrichment
	Degraded        bool            `json:"degraded"` // true when live generation was unavailable
	Notice          string          `json:"notice,omitempty"`
	ProcessingTime  time.Duration   `json:"processing_time"`
	RequestID       string          `json:"request_id"`
}

// ParseResumeResponse represents the response from a resume parse request
type ParseResumeResponse struct {
	Skills      []string `json:"skills"`
	TextPreview string   `json:"text_preview"`
	Notice      string   `json:"notice,omitempty"`
	RequestID   string   `json:"request_id"`
}

// SearchQuestionsResponse represents the response from a similarity search
type SearchQuestionsResponse struct {
	Query     string        `json:"query"`
	Results   []SearchMatch `json:"results"`
	RequestID string        `json:"request_id"`
}

// SearchMatch is a single similarity search hit
type SearchMatch struct {
	Question        string          `json:"question"`
	Role            string          `json:"role"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	Score           float64         `json:"score"`
}

// RecentSessionsResponse lists recently generated question sessions
type RecentSessionsResponse struct {
	Sessions  []QuestionSession `json:"sessions"`
	RequestID string            `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
