// Package voice contains HTTP response DTOs for speech endpoints.
package voice

import (
	"encoding/base64"

	"voxassist/call-api/internal/domain/call"
)

// TranscriptionResponse holds a speech-to-text result.
type TranscriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// NewTranscriptionResponse builds a transcription result.
func NewTranscriptionResponse(t *call.Transcription) *TranscriptionResponse {
	return &TranscriptionResponse{Text: t.Text, Language: t.Language}
}

// SpeechResponse holds synthesized audio, base64 encoded.
type SpeechResponse struct {
	Audio  string `json:"audio"`
	Format string `json:"format"`
}

// NewSpeechResponse builds a synthesis result.
func NewSpeechResponse(s *call.Speech) *SpeechResponse {
	return &SpeechResponse{
		Audio:  base64.StdEncoding.EncodeToString(s.Audio),
		Format: s.Format,
	}
}
