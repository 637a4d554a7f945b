package handlers

import (
	"context"

	"voxassist/call-api/internal/domain/agent"
)

// TransferHandler handles human-handoff HTTP requests.
type TransferHandler struct {
	service agent.Service
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(service agent.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

// Transfer hands a call to a human agent.
func (h *TransferHandler) Transfer(ctx context.Context, callID, reason, priority string) (*agent.Transfer, error) {
	return h.service.TransferCall(ctx, callID, reason, priority)
}

// Escalate hands a call to a human agent at urgent priority.
func (h *TransferHandler) Escalate(ctx context.Context, callID, reason string) (*agent.Transfer, error) {
	return h.service.TransferCall(ctx, callID, reason, agent.PriorityUrgent)
}

// AvailableAgents lists agents able to take a call.
func (h *TransferHandler) AvailableAgents(ctx context.Context) ([]agent.Agent, error) {
	return h.service.AvailableAgents(ctx)
}
