// @title           VoxAssist Call API
// @version         1.0
// @description     AI-powered call support service.
// @description     Handles call sessions, intent classification, and human handoff.

// @host      localhost:8080
// @BasePath  /v1

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/infrastructure/archive"
	"voxassist/call-api/internal/infrastructure/llm"
	"voxassist/call-api/internal/infrastructure/logger"
	"voxassist/call-api/internal/infrastructure/observability"
	"voxassist/call-api/internal/infrastructure/store"
	"voxassist/call-api/internal/infrastructure/tools"
	"voxassist/call-api/internal/infrastructure/voice"
	"voxassist/call-api/internal/interfaces/httpserver"
	"voxassist/call-api/internal/interfaces/httpserver/handlers"
)

// Application holds the main application components.
type Application struct {
	httpServer *httpserver.HTTPServer
	log        zerolog.Logger
}

// NewApplication creates a new application instance.
func NewApplication(httpServer *httpserver.HTTPServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

// Start runs the application until the context is cancelled.
func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup observability
	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown telemetry")
		}
	}()

	// Persistence: postgres when configured, in-memory otherwise
	archiveStore, err := archive.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize archive store")
	}

	// Live session registry
	registry := store.NewMemoryRegistry(log)

	// Domain services
	classifier := intent.NewClassifier()
	callService := call.NewService(registry, archiveStore, log)
	faqService := faq.NewService(archiveStore, log)
	agentService := agent.NewService(archiveStore, callService, log)

	// Collaborators
	responder := llm.NewOpenAIResponder(cfg, log)
	toolRegistry := tools.NewRegistry(faqService, log)
	transcriber := voice.NewWhisperTranscriber(cfg, log)
	synthesizer, err := voice.NewSynthesizer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize speech synthesizer")
	}

	orchestrator := call.NewOrchestrator(
		registry,
		classifier,
		responder,
		toolRegistry,
		agentService,
		archiveStore,
		call.OrchestratorTimeouts{
			Responder: cfg.ResponderTimeout,
			Tool:      cfg.ToolTimeout,
		},
		log,
	)

	// HTTP layer
	voiceHandler := handlers.NewVoiceHandler(transcriber, synthesizer, cfg.STTTimeout, cfg.TTSTimeout)
	handlerProvider := handlers.NewProvider(
		handlers.NewCallHandler(callService, orchestrator),
		handlers.NewFAQHandler(faqService),
		handlers.NewTransferHandler(agentService),
		voiceHandler,
		handlers.NewStreamHandler(orchestrator, voiceHandler, log),
		handlers.NewIntentHandler(classifier, responder, cfg.ResponderTimeout, log),
	)
	httpServer := httpserver.New(cfg, log, handlerProvider)

	app := NewApplication(httpServer, log)

	log.Info().
		Str("service", cfg.ServiceName).
		Int("port", cfg.HTTPPort).
		Str("environment", cfg.Environment).
		Msg("starting application")

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
