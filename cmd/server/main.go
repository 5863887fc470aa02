package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewgen/internal/api/routes"
	"interviewgen/internal/background"
	"interviewgen/internal/bank"
	"interviewgen/internal/config"
	"interviewgen/internal/generator"
	"interviewgen/internal/llm"
	"interviewgen/internal/logging"
	"interviewgen/internal/resume"
	"interviewgen/internal/sessions"
	"interviewgen/internal/vectorstore"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting interview question generator")

	// Initialize LLM manager. A failed provider check degrades to the
	// fallback bank rather than aborting startup.
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Error("Failed to start LLM manager", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Initialize background task manager
	bgManager := background.NewManager(cfg)
	ctx := context.Background()
	if err := bgManager.Start(ctx); err != nil {
		logger.Error("Failed to start background manager", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	// Fallback question bank, optionally extended from a YAML file
	questionBank := bank.New()
	if cfg.Generator.BankFile != "" {
		loaded, err := bank.NewFromFile(cfg.Generator.BankFile)
		if err != nil {
			logger.Warn("Failed to load question bank file, using built-in bank", map[string]interface{}{
				"file":  cfg.Generator.BankFile,
				"error": err.Error(),
			})
		} else {
			questionBank = loaded
		}
	}

	// Resume extractor, with LLM-assisted skill extraction when enabled
	var skillAI resume.SkillExtractor
	if cfg.Resume.AISkills {
		skillAI = llmManager
	}
	extractor := resume.NewExtractor(skillAI)

	gen := generator.New(llmManager, questionBank, cfg)

	// Optional collaborators: vector store and session store. Both are
	// best-effort and never block startup.
	var enricher *vectorstore.Enricher
	if cfg.VectorStore.Enabled {
		embedder, err := vectorstore.NewGeminiEmbedder(ctx, cfg)
		if err != nil {
			logger.Warn("Embeddings client unavailable, enrichment disabled", map[string]interface{}{"error": err.Error()})
		} else {
			index, err := vectorstore.NewPgIndex(ctx, cfg)
			if err != nil {
				logger.Warn("Vector index unavailable, enrichment disabled", map[string]interface{}{"error": err.Error()})
			} else {
				enricher = vectorstore.NewEnricher(embedder, index, cfg)
				defer index.Close()
			}
		}
	}

	var sessionStore *sessions.Store
	if cfg.Sessions.Enabled {
		store := sessions.NewStore(cfg)
		if err := store.Ping(ctx); err != nil {
			logger.Warn("Redis unavailable, session history disabled", map[string]interface{}{"error": err.Error()})
		} else {
			sessionStore = store
			defer store.Close()
		}
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, gen, extractor, llmManager, enricher, sessionStore, bgManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop background tasks first so pending session saves can drain
		logger.Info("Stopping background manager...")
		if err := bgManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping background manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping LLM manager...")
		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Error("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
