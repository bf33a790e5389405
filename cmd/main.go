package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/adapters/gemini"
	"github.com/ashumnni/juris-ai/internal/api"
	"github.com/ashumnni/juris-ai/internal/config"
	"github.com/ashumnni/juris-ai/internal/voice"
	"github.com/ashumnni/juris-ai/internal/websocket"
	"github.com/ashumnni/juris-ai/usecase"
)

const maxConsultationAge = 30 * time.Minute

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load environment from .env when present
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize the Gemini client and adapters
	ctx := context.Background()
	client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatal("Failed to create Gemini client", zap.Error(err))
	}

	analyzer := gemini.NewAnalyzer(client, logger, cfg.ProModel)
	rewriter := gemini.NewRewriter(client, logger, cfg.FlashModel)
	researcher := gemini.NewResearcher(client, logger, cfg.ProModel)
	curator := gemini.NewCurator(client, logger, cfg.FlashModel)
	liveTransport := gemini.NewLiveTransport(client, logger)

	// Initialize usecase services
	legalService := usecase.NewLegalService(analyzer, rewriter, researcher, curator, logger)

	// Initialize WebSocket hub for voice consultations
	voiceCfg := voice.Config{
		Model:             cfg.LiveModel,
		SystemInstruction: cfg.SystemInstruction,
		VoiceName:         cfg.VoiceName,
	}
	hub := websocket.NewHub(liveTransport, voiceCfg, clock.New(), logger)
	go hub.Run()

	janitor := websocket.NewConsultationJanitor(hub, maxConsultationAge, logger)
	janitor.Start()
	defer janitor.Stop()

	// Initialize API routes
	api.InitRoutes(e, legalService, hub, cfg.RequestTimeout, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("liveModel", cfg.LiveModel))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
