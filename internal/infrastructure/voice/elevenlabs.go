package voice

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/utils/platformerrors"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabsSynthesizer produces MP3 speech through the ElevenLabs
// REST API.
type ElevenLabsSynthesizer struct {
	client       *resty.Client
	apiKey       string
	defaultVoice string
	log          zerolog.Logger
}

var _ call.Synthesizer = (*ElevenLabsSynthesizer)(nil)

// NewElevenLabsSynthesizer builds a synthesizer from the service
// configuration.
func NewElevenLabsSynthesizer(cfg *config.Config, log zerolog.Logger) *ElevenLabsSynthesizer {
	client := resty.New().
		SetBaseURL(elevenLabsBaseURL).
		SetTimeout(cfg.TTSTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &ElevenLabsSynthesizer{
		client:       client,
		apiKey:       cfg.ElevenLabsAPIKey,
		defaultVoice: cfg.ElevenLabsVoiceID,
		log:          log.With().Str("component", "elevenlabs-tts").Logger(),
	}
}

func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text, voice, _ string) (*call.Speech, error) {
	if voice == "" {
		voice = s.defaultVoice
	}

	body := map[string]any{
		"text":     text,
		"model_id": "eleven_monolingual_v1",
		"voice_settings": map[string]any{
			"stability":        0.5,
			"similarity_boost": 0.5,
		},
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "audio/mpeg").
		SetHeader("Content-Type", "application/json").
		SetHeader("xi-api-key", s.apiKey).
		SetBody(body).
		Post("/text-to-speech/" + voice)
	if err != nil {
		errType := platformerrors.ErrorTypeExternal
		if errors.Is(err, context.DeadlineExceeded) {
			errType = platformerrors.ErrorTypeTimeout
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			errType, "elevenlabs request failed", err)
	}
	if resp.IsError() {
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "elevenlabs api error", nil,
			map[string]any{"status": resp.StatusCode()})
	}

	return &call.Speech{Audio: resp.Body(), Format: "mp3"}, nil
}
