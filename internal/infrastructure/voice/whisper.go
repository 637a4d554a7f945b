// Package voice implements speech-to-text and text-to-speech for the
// call surface.
package voice

import (
	"bytes"
	"context"
	"errors"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/utils/platformerrors"
)

// WhisperTranscriber converts caller audio to text with the Whisper
// API.
type WhisperTranscriber struct {
	client *openai.Client
	log    zerolog.Logger
}

var _ call.Transcriber = (*WhisperTranscriber)(nil)

// NewWhisperTranscriber builds a transcriber from the service
// configuration.
func NewWhisperTranscriber(cfg *config.Config, log zerolog.Logger) *WhisperTranscriber {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientCfg),
		log:    log.With().Str("component", "whisper-stt").Logger(),
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, language string) (*call.Transcription, error) {
	if len(audio) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation, "empty audio payload", nil)
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio.wav",
		Language: language,
	})
	if err != nil {
		errType := platformerrors.ErrorTypeExternal
		if errors.Is(err, context.DeadlineExceeded) {
			errType = platformerrors.ErrorTypeTimeout
		}
		return nil, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure,
			errType, "whisper transcription failed", err, map[string]any{"language": language})
	}

	lang := resp.Language
	if lang == "" {
		lang = language
	}
	return &call.Transcription{Text: resp.Text, Language: lang}, nil
}
