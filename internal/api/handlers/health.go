package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"interviewgen/internal/llm"
	"interviewgen/internal/sessions"
	"interviewgen/pkg/models"
	"interviewgen/pkg/utils"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests, reporting the state of
// external collaborators. The service is ready even when the LLM is down:
// generation degrades to the fallback bank.
func ReadinessHandler(llmManager *llm.Manager, sessionStore *sessions.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api": "ok",
		}

		if llmManager != nil && llmManager.IsHealthy() {
			checks["llm"] = "ok"
		} else {
			checks["llm"] = "degraded"
		}

		if sessionStore != nil {
			if err := sessionStore.IsHealthy(c.Request().Context()); err != nil {
				checks["sessions"] = "degraded"
			} else {
				checks["sessions"] = "ok"
			}
		}

		response := models.HealthResponse{
			Status:    "ready",
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(http.StatusOK, response)
	}
}

// StatusHandler provides detailed service status
func StatusHandler(llmManager *llm.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		llmStatus := "unavailable"
		providerName := ""
		if llmManager != nil {
			providerName = llmManager.GetProviderName()
			if llmManager.IsHealthy() {
				llmStatus = "operational"
			}
		}

		response := models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":      "operational",
				"llm":      llmStatus,
				"provider": utils.GetStringOrDefault(providerName, "none"),
			},
		}

		return c.JSON(http.StatusOK, response)
	}
}
