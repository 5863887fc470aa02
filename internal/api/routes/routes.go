package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"interviewgen/internal/api/handlers"
	"interviewgen/internal/api/middleware"
	"interviewgen/internal/background"
	"interviewgen/internal/config"
	"interviewgen/internal/generator"
	"interviewgen/internal/llm"
	"interviewgen/internal/resume"
	"interviewgen/internal/sessions"
	"interviewgen/internal/vectorstore"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, gen *generator.Generator, extractor *resume.Extractor, llmManager *llm.Manager, enricher *vectorstore.Enricher, sessionStore *sessions.Store, bgManager *background.Manager) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation(cfg.Resume.MaxUploadBytes))
	// Selective timeout: short for most endpoints, longer for LLM-backed ones
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(llmManager, sessionStore))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(llmManager))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		questions := v1.Group("/questions")
		{
			questions.POST("/generate", handlers.GenerateQuestionsHandler(cfg, gen, enricher, sessionStore, bgManager))
			questions.POST("/personalized", handlers.PersonalizedQuestionsHandler(cfg, gen, extractor, enricher, sessionStore, bgManager))
			questions.GET("/search", handlers.SearchQuestionsHandler(cfg, enricher))
		}

		resumeGroup := v1.Group("/resume")
		{
			resumeGroup.POST("/parse", handlers.ParseResumeHandler(cfg, extractor))
		}

		sessionsGroup := v1.Group("/sessions")
		{
			sessionsGroup.GET("/recent", handlers.RecentSessionsHandler(cfg, sessionStore))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "Interview Question Generator",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
