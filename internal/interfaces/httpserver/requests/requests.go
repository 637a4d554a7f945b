// Package requests contains HTTP request DTOs for the call-api.
package requests

// StartCallRequest is the body for starting a call session.
type StartCallRequest struct {
	// CallerNumber identifies the caller; required.
	CallerNumber string `json:"caller_number"`
	// CallID is an optional externally supplied identifier.
	CallID string `json:"call_id,omitempty"`
}

// TurnRequest is the body for one caller utterance.
type TurnRequest struct {
	Text string `json:"text" binding:"required"`
}

// EndCallRequest is the body for ending a call session.
type EndCallRequest struct {
	// Duration overrides the computed call duration when positive.
	Duration float64 `json:"duration,omitempty"`
	// Sentiment is the final caller sentiment, if known.
	Sentiment string `json:"sentiment,omitempty"`
}

// TransferCallRequest is the body for handing a call to a human agent.
type TransferCallRequest struct {
	CallID   string `json:"call_id" binding:"required"`
	Reason   string `json:"reason,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// SynthesizeRequest is the body for text-to-speech synthesis.
type SynthesizeRequest struct {
	Text     string `json:"text" binding:"required"`
	Voice    string `json:"voice,omitempty"`
	Language string `json:"language,omitempty"`
}

// TranscribeRequest is the body for speech-to-text transcription.
// Audio is base64 encoded.
type TranscribeRequest struct {
	Audio    string `json:"audio" binding:"required"`
	Language string `json:"language,omitempty"`
}

// AnalyzeIntentRequest is the body for standalone intent analysis.
type AnalyzeIntentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddFAQRequest is the body for adding a knowledge-base entry.
type AddFAQRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Category string `json:"category,omitempty"`
}

// StreamMessage is one inbound WebSocket frame on the call stream.
// Either Text or Audio (base64) must be set.
type StreamMessage struct {
	Text     string `json:"text,omitempty"`
	Audio    string `json:"audio,omitempty"`
	Language string `json:"language,omitempty"`
	// Speak requests synthesized audio in the reply.
	Speak bool `json:"speak,omitempty"`
}
