package handlers

import (
	"github.com/google/wire"
)

// Provider holds all HTTP handlers.
type Provider struct {
	Call     *CallHandler
	FAQ      *FAQHandler
	Transfer *TransferHandler
	Voice    *VoiceHandler
	Stream   *StreamHandler
	Intent   *IntentHandler
}

// NewProvider creates a new handler provider.
func NewProvider(
	callHandler *CallHandler,
	faqHandler *FAQHandler,
	transferHandler *TransferHandler,
	voiceHandler *VoiceHandler,
	streamHandler *StreamHandler,
	intentHandler *IntentHandler,
) *Provider {
	return &Provider{
		Call:     callHandler,
		FAQ:      faqHandler,
		Transfer: transferHandler,
		Voice:    voiceHandler,
		Stream:   streamHandler,
		Intent:   intentHandler,
	}
}

// HandlerProvider provides all handlers for wire. The voice and intent
// handlers need configured timeouts, so their providers live with the
// injector.
var HandlerProvider = wire.NewSet(
	NewCallHandler,
	NewFAQHandler,
	NewTransferHandler,
	NewStreamHandler,
	NewProvider,
)
