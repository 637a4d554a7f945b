package handlers

import (
	"context"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
)

// CallHandler handles call-session HTTP requests.
type CallHandler struct {
	service      call.Service
	orchestrator *call.Orchestrator
}

// NewCallHandler creates a new call handler.
func NewCallHandler(service call.Service, orchestrator *call.Orchestrator) *CallHandler {
	return &CallHandler{service: service, orchestrator: orchestrator}
}

// StartCall creates a new call session.
func (h *CallHandler) StartCall(ctx context.Context, callerNumber, callID string) (*call.Session, error) {
	return h.service.StartCall(ctx, callerNumber, callID)
}

// GetCall retrieves a call session by ID.
func (h *CallHandler) GetCall(ctx context.Context, id string) (*call.Session, error) {
	return h.service.GetCall(ctx, id)
}

// ListActiveCalls retrieves all live call sessions.
func (h *CallHandler) ListActiveCalls(ctx context.Context) ([]*call.Session, error) {
	return h.service.ListActiveCalls(ctx)
}

// EndCall terminates a call session.
func (h *CallHandler) EndCall(ctx context.Context, id string, duration float64, sentiment string) (*call.Session, error) {
	return h.service.EndCall(ctx, id, duration, intent.Sentiment(sentiment))
}

// ProcessTurn drives one caller utterance through the orchestrator.
func (h *CallHandler) ProcessTurn(ctx context.Context, id, text string) (*call.TurnResult, error) {
	return h.orchestrator.HandleTurn(ctx, id, text)
}
