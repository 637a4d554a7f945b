package voice

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/utils/platformerrors"
)

// NewSynthesizer selects a TTS backend from the configuration.
func NewSynthesizer(cfg *config.Config, log zerolog.Logger) (call.Synthesizer, error) {
	switch cfg.TTSProvider {
	case "openai":
		return NewOpenAISynthesizer(cfg, log), nil
	case "elevenlabs":
		return NewElevenLabsSynthesizer(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider %q", cfg.TTSProvider)
	}
}

// OpenAISynthesizer produces MP3 speech with the OpenAI TTS API.
type OpenAISynthesizer struct {
	client       *openai.Client
	defaultVoice string
	log          zerolog.Logger
}

var _ call.Synthesizer = (*OpenAISynthesizer)(nil)

// NewOpenAISynthesizer builds a synthesizer from the service
// configuration.
func NewOpenAISynthesizer(cfg *config.Config, log zerolog.Logger) *OpenAISynthesizer {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAISynthesizer{
		client:       openai.NewClientWithConfig(clientCfg),
		defaultVoice: cfg.TTSVoice,
		log:          log.With().Str("component", "openai-tts").Logger(),
	}
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text, voice, _ string) (*call.Speech, error) {
	if voice == "" {
		voice = s.defaultVoice
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.SpeechVoice(voice),
	})
	if err != nil {
		errType := platformerrors.ErrorTypeExternal
		if errors.Is(err, context.DeadlineExceeded) {
			errType = platformerrors.ErrorTypeTimeout
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			errType, "openai speech synthesis failed", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech audio: %w", err)
	}
	return &call.Speech{Audio: audio, Format: "mp3"}, nil
}
