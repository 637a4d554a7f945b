package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/utils/platformerrors"
)

// IntentHandler exposes intent classification outside the turn
// pipeline, for dashboards and conversation tuning.
type IntentHandler struct {
	classifier *intent.Classifier
	responder  call.Responder
	timeout    time.Duration
	log        zerolog.Logger
}

// NewIntentHandler creates a new intent handler.
func NewIntentHandler(classifier *intent.Classifier, responder call.Responder, timeout time.Duration, log zerolog.Logger) *IntentHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &IntentHandler{
		classifier: classifier,
		responder:  responder,
		timeout:    timeout,
		log:        log.With().Str("component", "intent-handler").Logger(),
	}
}

// Analysis combines the keyword classification with the LLM-backed one.
// Advanced is nil when the responder path fails; the keyword result is
// always present.
type Analysis struct {
	Keyword  intent.Result          `json:"keyword"`
	Advanced *intent.AdvancedResult `json:"advanced,omitempty"`
}

// Analyze classifies text with both paths.
func (h *IntentHandler) Analyze(ctx context.Context, text string) *Analysis {
	analysis := &Analysis{Keyword: h.classifier.Classify(text)}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	advanced, err := h.responder.ClassifyAdvanced(ctx, text)
	if err != nil {
		msg := "advanced classification failed, keyword result only"
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeTimeout) {
			msg = "advanced classification timed out, keyword result only"
		}
		h.log.Warn().Err(err).Msg(msg)
		return analysis
	}
	analysis.Advanced = advanced
	return analysis
}
