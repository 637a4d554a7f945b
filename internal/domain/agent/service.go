package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/utils/idgen"
)

// Transfer priorities, lowest to highest.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// baseWaitSeconds is the estimated wait quoted to a caller when an
// agent has been claimed for them.
const baseWaitSeconds = 30

// Service assigns calls to human agents. It also serves as the
// orchestrator's handoff requester.
type Service interface {
	call.HandoffRequester

	// TransferCall performs an operator-initiated transfer: it claims an
	// agent, marks the call session as transferred, and records the
	// transfer. A session that cannot be transferred fails the whole
	// operation without claiming anyone.
	TransferCall(ctx context.Context, callID, reason, priority string) (*Transfer, error)

	// AvailableAgents lists agents currently able to take a call.
	AvailableAgents(ctx context.Context) ([]Agent, error)
}

type service struct {
	store Store
	calls call.Service
	log   zerolog.Logger
}

// NewService creates an agent service.
func NewService(store Store, calls call.Service, log zerolog.Logger) Service {
	return &service{
		store: store,
		calls: calls,
		log:   log.With().Str("component", "agent-service").Logger(),
	}
}

// NormalizePriority maps arbitrary input onto a known priority,
// defaulting to normal.
func NormalizePriority(priority string) string {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return priority
	default:
		return PriorityNormal
	}
}

// RequestHandoff claims an agent and records the transfer without
// touching the call session. The caller owns the session transition.
func (s *service) RequestHandoff(ctx context.Context, callID, reason, priority string) (*call.Handoff, error) {
	claimed, err := s.store.ClaimAgent(ctx)
	if err != nil {
		return nil, err
	}

	transfer, err := s.recordTransfer(ctx, callID, reason, priority, claimed)
	if err != nil {
		s.releaseClaim(ctx, claimed.AgentID)
		return nil, err
	}
	return &call.Handoff{
		TransferID:           transfer.TransferID,
		AgentID:              transfer.AgentID,
		AgentName:            transfer.AgentName,
		EstimatedWaitSeconds: transfer.EstimatedWaitSeconds,
	}, nil
}

// TransferCall transitions the session before any transfer record is
// written. A failed transition releases the claimed agent, so unknown
// or already-terminal calls leave no trace.
func (s *service) TransferCall(ctx context.Context, callID, reason, priority string) (*Transfer, error) {
	claimed, err := s.store.ClaimAgent(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.calls.TransferCall(ctx, callID, reason, claimed.AgentID); err != nil {
		s.releaseClaim(ctx, claimed.AgentID)
		return nil, err
	}
	return s.recordTransfer(ctx, callID, reason, priority, claimed)
}

func (s *service) AvailableAgents(ctx context.Context) ([]Agent, error) {
	return s.store.ListAgents(ctx, StatusAvailable)
}

func (s *service) releaseClaim(ctx context.Context, agentID string) {
	if err := s.store.ReleaseAgent(ctx, agentID); err != nil {
		s.log.Error().Err(err).Str("agent_id", agentID).Msg("release claimed agent")
	}
}

func (s *service) recordTransfer(ctx context.Context, callID, reason, priority string, claimed *Agent) (*Transfer, error) {
	id, err := idgen.GenerateSecureID("transfer", 12)
	if err != nil {
		return nil, err
	}

	transfer := &Transfer{
		TransferID:           id,
		CallID:               callID,
		Reason:               reason,
		Priority:             NormalizePriority(priority),
		AgentID:              claimed.AgentID,
		AgentName:            claimed.Name,
		EstimatedWaitSeconds: baseWaitSeconds * (claimed.CurrentCalls + 1),
		CreatedAt:            time.Now(),
	}
	if err := s.store.SaveTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("transfer_id", transfer.TransferID).
		Str("call_id", callID).
		Str("agent_id", transfer.AgentID).
		Str("priority", transfer.Priority).
		Msg("call transfer created")
	return transfer, nil
}
