//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/infrastructure/archive"
	"voxassist/call-api/internal/infrastructure/llm"
	"voxassist/call-api/internal/infrastructure/store"
	"voxassist/call-api/internal/infrastructure/tools"
	"voxassist/call-api/internal/infrastructure/voice"
	"voxassist/call-api/internal/interfaces/httpserver"
	"voxassist/call-api/internal/interfaces/httpserver/handlers"
)

// ProviderSet is the wire provider set for the application.
var ProviderSet = wire.NewSet(
	// Infrastructure providers
	ProvideArchive,
	ProvideRegistry,
	ProvideResponder,
	ProvideToolExecutor,
	ProvideTranscriber,
	ProvideSynthesizer,

	// Domain providers
	intent.NewClassifier,
	ProvideCallService,
	ProvideFAQService,
	ProvideAgentService,
	ProvideOrchestrator,

	// Interface providers
	ProvideVoiceHandler,
	ProvideIntentHandler,
	handlers.NewCallHandler,
	handlers.NewFAQHandler,
	handlers.NewTransferHandler,
	handlers.NewStreamHandler,
	handlers.NewProvider,
	httpserver.New,

	// Application
	NewApplication,
)

// ProvideArchive provides the archive store.
func ProvideArchive(cfg *config.Config, log zerolog.Logger) (archive.Store, error) {
	return archive.New(cfg, log)
}

// ProvideRegistry provides the live session registry.
func ProvideRegistry(log zerolog.Logger) call.Registry {
	return store.NewMemoryRegistry(log)
}

// ProvideResponder provides the LLM responder.
func ProvideResponder(cfg *config.Config, log zerolog.Logger) call.Responder {
	return llm.NewOpenAIResponder(cfg, log)
}

// ProvideToolExecutor provides the tool registry.
func ProvideToolExecutor(faqService faq.Service, log zerolog.Logger) call.ToolExecutor {
	return tools.NewRegistry(faqService, log)
}

// ProvideTranscriber provides the speech-to-text collaborator.
func ProvideTranscriber(cfg *config.Config, log zerolog.Logger) call.Transcriber {
	return voice.NewWhisperTranscriber(cfg, log)
}

// ProvideSynthesizer provides the text-to-speech collaborator.
func ProvideSynthesizer(cfg *config.Config, log zerolog.Logger) (call.Synthesizer, error) {
	return voice.NewSynthesizer(cfg, log)
}

// ProvideCallService provides the call lifecycle service.
func ProvideCallService(registry call.Registry, archiveStore archive.Store, log zerolog.Logger) call.Service {
	return call.NewService(registry, archiveStore, log)
}

// ProvideFAQService provides the knowledge-base service.
func ProvideFAQService(archiveStore archive.Store, log zerolog.Logger) faq.Service {
	return faq.NewService(archiveStore, log)
}

// ProvideAgentService provides the human-handoff service.
func ProvideAgentService(archiveStore archive.Store, callService call.Service, log zerolog.Logger) agent.Service {
	return agent.NewService(archiveStore, callService, log)
}

// ProvideOrchestrator provides the turn orchestrator.
func ProvideOrchestrator(
	registry call.Registry,
	classifier *intent.Classifier,
	responder call.Responder,
	toolExecutor call.ToolExecutor,
	agentService agent.Service,
	archiveStore archive.Store,
	cfg *config.Config,
	log zerolog.Logger,
) *call.Orchestrator {
	return call.NewOrchestrator(
		registry,
		classifier,
		responder,
		toolExecutor,
		agentService,
		archiveStore,
		call.OrchestratorTimeouts{
			Responder: cfg.ResponderTimeout,
			Tool:      cfg.ToolTimeout,
		},
		log,
	)
}

// ProvideVoiceHandler provides the speech handler.
func ProvideVoiceHandler(transcriber call.Transcriber, synthesizer call.Synthesizer, cfg *config.Config) *handlers.VoiceHandler {
	return handlers.NewVoiceHandler(transcriber, synthesizer, cfg.STTTimeout, cfg.TTSTimeout)
}

// ProvideIntentHandler provides the standalone intent-analysis handler.
func ProvideIntentHandler(classifier *intent.Classifier, responder call.Responder, cfg *config.Config, log zerolog.Logger) *handlers.IntentHandler {
	return handlers.NewIntentHandler(classifier, responder, cfg.ResponderTimeout, log)
}

// CreateApplication creates the application with all dependencies wired.
func CreateApplication(
	cfg *config.Config,
	log zerolog.Logger,
) (*Application, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
