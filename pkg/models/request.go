package models

// GenerateQuestionsRequest represents the request payload for question generation
type GenerateQuestionsRequest struct {
	JobRole         string         `json:"job_role" validate:"required"`
	ExperienceLevel string         `json:"experience_level" validate:"required"`
	Skills          []string       `json:"skills,omitempty"`
	NumQuestions    int            `json:"num_questions,omitempty" validate:"omitempty,min=1,max=50"`
	QuestionTypes   map[string]int `json:"question_types,omitempty"` // category -> count, overrides the default mix
}

// PersonalizedQuestionsRequest carries the form fields that accompany a resume
// upload on the personalized generation endpoint
type PersonalizedQuestionsRequest struct {
	JobRole         string   `form:"job_role" validate:"required"`
	ExperienceLevel string   `form:"experience_level" validate:"required"`
	Skills          []string `form:"skills"`
	NumQuestions    int      `form:"num_questions" validate:"omitempty,min=1,max=50"`
}

// SearchQuestionsRequest represents the query parameters for similarity search
type SearchQuestionsRequest struct {
	Query string `query:"query" validate:"required"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=50"`
}
