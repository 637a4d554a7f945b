package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the call-api service.
type Config struct {
	// Service settings
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"call-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"CALL_API_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// OpenTelemetry
	EnableTracing bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint  string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`

	// OpenAI (responder, advanced intent, Whisper STT, OpenAI TTS)
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:""`
	PromptFile    string `env:"PROMPT_FILE" envDefault:"prompts/system_prompt.txt"`

	// Text-to-speech
	TTSProvider       string `env:"TTS_PROVIDER" envDefault:"openai"`
	TTSVoice          string `env:"TTS_VOICE" envDefault:"alloy"`
	ElevenLabsAPIKey  string `env:"ELEVENLABS_API_KEY"`
	ElevenLabsVoiceID string `env:"ELEVENLABS_VOICE_ID" envDefault:"21m00Tcm4TlvDq8ikWAM"`

	// Collaborator timeouts. Every external call is bounded; a timeout
	// is handled like any other collaborator failure.
	ResponderTimeout time.Duration `env:"RESPONDER_TIMEOUT" envDefault:"30s"`
	ToolTimeout      time.Duration `env:"TOOL_TIMEOUT" envDefault:"10s"`
	STTTimeout       time.Duration `env:"STT_TIMEOUT" envDefault:"30s"`
	TTSTimeout       time.Duration `env:"TTS_TIMEOUT" envDefault:"30s"`

	// Persistence. Empty DATABASE_URL selects the in-memory archive.
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch cfg.TTSProvider {
	case "openai":
	case "elevenlabs":
		if strings.TrimSpace(cfg.ElevenLabsAPIKey) == "" {
			return nil, fmt.Errorf("ELEVENLABS_API_KEY is required when TTS_PROVIDER is elevenlabs")
		}
	default:
		return nil, fmt.Errorf("unsupported TTS_PROVIDER %q", cfg.TTSProvider)
	}

	return cfg, nil
}

// Addr returns the HTTP server address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
