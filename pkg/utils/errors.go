package utils

import (
	"fmt"
	"net/http"
)

// CustomError represents a custom application error
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewExtractionError is returned when resume text extraction fails.
// Extraction failures are non-fatal and never abort the pipeline.
func NewExtractionError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Resume extraction failed",
		Detail:  detail,
	}
}

// NewGenerationError is returned when the LLM provider is unavailable
func NewGenerationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Question generation failed",
		Detail:  detail,
	}
}

// NewIndexError is returned when the vector index is unreachable
func NewIndexError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "Vector index unavailable",
		Detail:  detail,
	}
}
