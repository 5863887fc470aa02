package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"interviewgen/internal/background"
	"interviewgen/internal/config"
	"interviewgen/internal/generator"
	"interviewgen/internal/logging"
	"interviewgen/internal/resume"
	"interviewgen/internal/sessions"
	"interviewgen/internal/vectorstore"
	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const degradedNotice = "Live generation was unavailable; some questions come from the fallback bank"

// requestID returns the ID the validation middleware attached to the request,
// generating a fresh one if the middleware did not run
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// GenerateQuestionsHandler handles question generation from a role description
func GenerateQuestionsHandler(cfg *config.Config, gen *generator.Generator, enricher *vectorstore.Enricher, sessionStore *sessions.Store, bgManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.GenerateQuestionsRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind generate request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Generate request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		profile := models.CandidateProfile{
			Role:            strings.TrimSpace(req.JobRole),
			ExperienceLevel: models.NormalizeExperienceLevel(strings.ToLower(strings.TrimSpace(req.ExperienceLevel))),
			Skills:          cleanSkills(req.Skills),
		}

		logger.Info("Generating questions", map[string]interface{}{
			"role":  profile.Role,
			"level": profile.ExperienceLevel,
		})

		mix := gen.ResolveMix(req.NumQuestions, req.QuestionTypes)
		result := gen.Generate(c.Request().Context(), profile, mix)

		response := buildGenerateResponse(c, cfg, profile, result, enricher, sessionStore, bgManager, false)
		response.ProcessingTime = time.Since(startTime)
		response.RequestID = reqID

		logger.Info("Question generation completed", map[string]interface{}{
			"questions":       len(response.Questions),
			"degraded":        response.Degraded,
			"processing_time": utils.FormatDuration(response.ProcessingTime),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// PersonalizedQuestionsHandler handles question generation from a resume
// upload plus role form fields. Resume problems degrade to plain generation
// instead of failing the request.
func PersonalizedQuestionsHandler(cfg *config.Config, gen *generator.Generator, extractor *resume.Extractor, enricher *vectorstore.Enricher, sessionStore *sessions.Store, bgManager *background.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		startTime := time.Now()
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)

		var req models.PersonalizedQuestionsRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind personalized request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Personalized request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		resumeText, extractedSkills, notice := readResume(c, cfg, extractor, logger)

		profile := models.CandidateProfile{
			Role:            strings.TrimSpace(req.JobRole),
			ExperienceLevel: models.NormalizeExperienceLevel(strings.ToLower(strings.TrimSpace(req.ExperienceLevel))),
			Skills:          cleanSkills(req.Skills),
			ResumeText:      resumeText,
			ExtractedSkills: extractedSkills,
		}

		logger.Info("Generating personalized questions", map[string]interface{}{
			"role":             profile.Role,
			"level":            profile.ExperienceLevel,
			"resume_chars":     len(resumeText),
			"extracted_skills": len(extractedSkills),
		})

		mix := gen.ResolveMix(req.NumQuestions, nil)
		result := gen.Generate(c.Request().Context(), profile, mix)

		response := buildGenerateResponse(c, cfg, profile, result, enricher, sessionStore, bgManager, resumeText != "")
		response.ProcessingTime = time.Since(startTime)
		response.RequestID = reqID
		if notice != "" {
			if response.Notice != "" {
				response.Notice = response.Notice + "; " + notice
			} else {
				response.Notice = notice
			}
		}

		logger.Info("Personalized generation completed", map[string]interface{}{
			"questions":       len(response.Questions),
			"degraded":        response.Degraded,
			"personalized":    resumeText != "",
			"processing_time": utils.FormatDuration(response.ProcessingTime),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// SearchQuestionsHandler handles similarity search over stored questions
func SearchQuestionsHandler(cfg *config.Config, enricher *vectorstore.Enricher) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		var req models.SearchQuestionsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		if enricher == nil || !enricher.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "search_unavailable",
				Message:   "Question search requires the vector store, which is not configured",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		limit := req.Limit
		if limit <= 0 {
			limit = cfg.VectorStore.TopK
		}

		results := enricher.Search(c.Request().Context(), req.Query, limit)
		if results == nil {
			results = []models.SearchMatch{}
		}

		return c.JSON(http.StatusOK, models.SearchQuestionsResponse{
			Query:     req.Query,
			Results:   results,
			RequestID: reqID,
		})
	}
}

// RecentSessionsHandler lists the most recently generated question sessions
func RecentSessionsHandler(cfg *config.Config, sessionStore *sessions.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)

		if sessionStore == nil {
			return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error:     "sessions_unavailable",
				Message:   "Session history requires Redis, which is not configured",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}

		limit := cfg.Sessions.RecentLimit
		if raw := c.QueryParam("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= cfg.Sessions.RecentLimit {
				limit = n
			}
		}

		recent, err := sessionStore.Recent(c.Request().Context(), limit)
		if err != nil {
			logging.LogWithRequestID(reqID).Error("Failed to load recent sessions", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "sessions_failed",
				Message:   "Failed to load recent sessions",
				RequestID: reqID,
				Timestamp: time.Now(),
			})
		}
		if recent == nil {
			recent = []models.QuestionSession{}
		}

		return c.JSON(http.StatusOK, models.RecentSessionsResponse{
			Sessions:  recent,
			RequestID: reqID,
		})
	}
}

// buildGenerateResponse packages a generation result, kicks off the
// best-effort enrichment and schedules background persistence. Neither the
// vector store nor Redis can fail the request.
func buildGenerateResponse(c echo.Context, cfg *config.Config, profile models.CandidateProfile, result generator.Result, enricher *vectorstore.Enricher, sessionStore *sessions.Store, bgManager *background.Manager, personalized bool) models.GenerateQuestionsResponse {
	sessionID := utils.GenerateSessionID()

	response := models.GenerateQuestionsResponse{
		SessionID:       sessionID,
		JobRole:         profile.Role,
		ExperienceLevel: profile.ExperienceLevel,
		Skills:          profile.Skills,
		ExtractedSkills: profile.ExtractedSkills,
		Questions:       result.Questions,
		Degraded:        result.Degraded,
	}
	if result.Degraded {
		response.Notice = degradedNotice
	}

	if enricher != nil && enricher.Enabled() {
		response.RelatedQuestions = enricher.TryEnrich(c.Request().Context(), profile, result.Questions)
	}

	session := models.QuestionSession{
		SessionID:       sessionID,
		Role:            profile.Role,
		ExperienceLevel: profile.ExperienceLevel,
		Skills:          profile.Skills,
		Questions:       result.Questions,
		Personalized:    personalized,
		CreatedAt:       time.Now().UTC(),
	}

	if bgManager != nil {
		if sessionStore != nil {
			bgManager.Submit(background.Task{
				Name: "session-save",
				Run: func(ctx context.Context) error {
					return sessionStore.Save(ctx, session)
				},
			})
		}
		if enricher != nil && enricher.Enabled() {
			bgManager.Submit(background.Task{
				Name: "vector-upsert",
				Run: func(ctx context.Context) error {
					enricher.StoreSession(ctx, session)
					return nil
				},
			})
		}
	}

	return response
}

// readResume pulls the uploaded file off the multipart form and extracts its
// text and skills. Returns a user-facing notice when the resume could not be
// used; only a missing or non-PDF file is a hard error, and that is handled
// by the caller seeing empty text with the notice.
func readResume(c echo.Context, cfg *config.Config, extractor *resume.Extractor, logger logging.Logger) (string, []string, string) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return "", nil, "No resume file was provided; questions are not personalized"
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return "", nil, "Resume must be a PDF file; questions are not personalized"
	}

	if fileHeader.Size > cfg.Resume.MaxUploadBytes {
		return "", nil, "Resume file exceeds the upload size limit; questions are not personalized"
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Warn("Failed to open resume upload", map[string]interface{}{"error": err.Error()})
		return "", nil, "Resume could not be read; questions are not personalized"
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, cfg.Resume.MaxUploadBytes))
	if err != nil {
		logger.Warn("Failed to read resume upload", map[string]interface{}{"error": err.Error()})
		return "", nil, "Resume could not be read; questions are not personalized"
	}

	text, skills := extractor.Extract(c.Request().Context(), data)
	if text == "" {
		return "", nil, "Resume text could not be extracted; questions are not personalized"
	}

	return text, skills, ""
}

// cleanSkills trims and drops empty skill entries while preserving order
func cleanSkills(skills []string) []string {
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
