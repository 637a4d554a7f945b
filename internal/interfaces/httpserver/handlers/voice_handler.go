package handlers

import (
	"context"
	"time"

	"voxassist/call-api/internal/domain/call"
)

// VoiceHandler handles speech HTTP requests.
type VoiceHandler struct {
	transcriber call.Transcriber
	synthesizer call.Synthesizer
	sttTimeout  time.Duration
	ttsTimeout  time.Duration
}

// NewVoiceHandler creates a new voice handler.
func NewVoiceHandler(transcriber call.Transcriber, synthesizer call.Synthesizer, sttTimeout, ttsTimeout time.Duration) *VoiceHandler {
	return &VoiceHandler{
		transcriber: transcriber,
		synthesizer: synthesizer,
		sttTimeout:  sttTimeout,
		ttsTimeout:  ttsTimeout,
	}
}

// Transcribe converts caller audio to text.
func (h *VoiceHandler) Transcribe(ctx context.Context, audio []byte, language string) (*call.Transcription, error) {
	ctx, cancel := context.WithTimeout(ctx, h.sttTimeout)
	defer cancel()
	return h.transcriber.Transcribe(ctx, audio, language)
}

// Synthesize converts assistant text to audio.
func (h *VoiceHandler) Synthesize(ctx context.Context, text, voice, language string) (*call.Speech, error) {
	ctx, cancel := context.WithTimeout(ctx, h.ttsTimeout)
	defer cancel()
	return h.synthesizer.Synthesize(ctx, text, voice, language)
}
