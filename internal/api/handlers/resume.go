package handlers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"interviewgen/internal/config"
	"interviewgen/internal/logging"
	"interviewgen/internal/resume"
	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"
)

// ParseResumeHandler handles standalone resume parsing: PDF text extraction
// plus skill identification, without generating any questions
func ParseResumeHandler(cfg *config.Config, extractor *resume.Extractor) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		fileHeader, err := c.FormFile("resume")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_file",
				Message:   "A resume file is required under the 'resume' form field",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "unsupported_file_type",
				Message:   "Only PDF resumes are supported",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if fileHeader.Size > cfg.Resume.MaxUploadBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:     "file_too_large",
				Message:   "Resume file exceeds the upload size limit",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open resume upload", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "upload_failed",
				Message:   "Failed to read the uploaded file",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, cfg.Resume.MaxUploadBytes))
		if err != nil {
			logger.Error("Failed to read resume upload", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "upload_failed",
				Message:   "Failed to read the uploaded file",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		text, skills := extractor.Extract(c.Request().Context(), data)

		response := models.ParseResumeResponse{
			Skills:      skills,
			TextPreview: utils.Truncate(text, cfg.Resume.MaxTextLen),
			RequestID:   reqID,
		}
		if response.Skills == nil {
			response.Skills = []string{}
		}
		if text == "" {
			response.Notice = "No text could be extracted from the resume"
		}

		logger.Info("Resume parsed", map[string]interface{}{
			"skills":          len(skills),
			"text_chars":      len(text),
			"processing_time": utils.FormatDuration(time.Since(startTime)),
		})

		return c.JSON(http.StatusOK, response)
	}
}
