package agent_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
	callstore "voxassist/call-api/internal/infrastructure/store"
)

type fakeAgentStore struct {
	agents    []agent.Agent
	claimed   *agent.Agent
	claimErr  error
	transfers []*agent.Transfer
	released  []string
}

func (f *fakeAgentStore) ListAgents(_ context.Context, status string) ([]agent.Agent, error) {
	out := make([]agent.Agent, 0, len(f.agents))
	for _, a := range f.agents {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAgentStore) ClaimAgent(_ context.Context) (*agent.Agent, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return f.claimed, nil
}

func (f *fakeAgentStore) ReleaseAgent(_ context.Context, agentID string) error {
	f.released = append(f.released, agentID)
	return nil
}

func (f *fakeAgentStore) SaveTransfer(_ context.Context, transfer *agent.Transfer) error {
	f.transfers = append(f.transfers, transfer)
	return nil
}

// fakeCallService tracks whether the call session was transitioned.
type fakeCallService struct {
	transferErr       error
	transferredCallID string
	transferredAgent  string
}

func (f *fakeCallService) StartCall(context.Context, string, string) (*call.Session, error) {
	return nil, nil
}

func (f *fakeCallService) GetCall(context.Context, string) (*call.Session, error) {
	return nil, nil
}

func (f *fakeCallService) ListActiveCalls(context.Context) ([]*call.Session, error) {
	return nil, nil
}

func (f *fakeCallService) EndCall(context.Context, string, float64, intent.Sentiment) (*call.Session, error) {
	return nil, nil
}

func (f *fakeCallService) TransferCall(_ context.Context, callID, _ string, agentID string) (*call.Session, error) {
	if f.transferErr != nil {
		return nil, f.transferErr
	}
	f.transferredCallID = callID
	f.transferredAgent = agentID
	return &call.Session{CallID: callID}, nil
}

func (f *fakeCallService) UpdateSentiment(context.Context, string, intent.Sentiment) error {
	return nil
}

func newTestService(store *fakeAgentStore, calls *fakeCallService) agent.Service {
	return agent.NewService(store, calls, zerolog.Nop())
}

func TestNormalizePriority(t *testing.T) {
	assert.Equal(t, agent.PriorityHigh, agent.NormalizePriority("high"))
	assert.Equal(t, agent.PriorityUrgent, agent.NormalizePriority("urgent"))
	assert.Equal(t, agent.PriorityNormal, agent.NormalizePriority(""))
	assert.Equal(t, agent.PriorityNormal, agent.NormalizePriority("asap"))
}

func TestRequestHandoff_DoesNotTouchCallSession(t *testing.T) {
	store := &fakeAgentStore{claimed: &agent.Agent{AgentID: "agent_001", Name: "Sarah Johnson", CurrentCalls: 1}}
	calls := &fakeCallService{}
	svc := newTestService(store, calls)

	handoff, err := svc.RequestHandoff(context.Background(), "call_1", "customer complaint", "high")
	require.NoError(t, err)

	assert.Equal(t, "agent_001", handoff.AgentID)
	assert.Equal(t, "Sarah Johnson", handoff.AgentName)
	assert.NotEmpty(t, handoff.TransferID)
	assert.Equal(t, 60, handoff.EstimatedWaitSeconds)
	assert.Empty(t, calls.transferredCallID, "handoff must leave the session transition to the caller")

	require.Len(t, store.transfers, 1)
	assert.Equal(t, "call_1", store.transfers[0].CallID)
	assert.Equal(t, agent.PriorityHigh, store.transfers[0].Priority)
}

func TestTransferCall_TransitionsSession(t *testing.T) {
	store := &fakeAgentStore{claimed: &agent.Agent{AgentID: "agent_002", Name: "Mike Chen", CurrentCalls: 0}}
	calls := &fakeCallService{}
	svc := newTestService(store, calls)

	transfer, err := svc.TransferCall(context.Background(), "call_2", "caller asked for a human", "")
	require.NoError(t, err)

	assert.Equal(t, "call_2", calls.transferredCallID)
	assert.Equal(t, "agent_002", calls.transferredAgent)
	assert.Equal(t, agent.PriorityNormal, transfer.Priority)
	assert.Equal(t, 30, transfer.EstimatedWaitSeconds)
	assert.False(t, transfer.CreatedAt.IsZero())
}

func TestTransferCall_UnknownCallReleasesClaim(t *testing.T) {
	store := &fakeAgentStore{claimed: &agent.Agent{AgentID: "agent_001", Name: "Sarah Johnson"}}
	calls := &fakeCallService{transferErr: callstore.ErrCallNotFound}
	svc := newTestService(store, calls)

	_, err := svc.TransferCall(context.Background(), "no_such_call", "escalation", "high")
	assert.ErrorIs(t, err, callstore.ErrCallNotFound)

	// A failed transition must undo the claim and leave no record.
	assert.Equal(t, []string{"agent_001"}, store.released)
	assert.Empty(t, store.transfers)
}

func TestTransferCall_TerminalCallReleasesClaim(t *testing.T) {
	store := &fakeAgentStore{claimed: &agent.Agent{AgentID: "agent_002", Name: "Mike Chen"}}
	calls := &fakeCallService{transferErr: call.ErrCallNotActive}
	svc := newTestService(store, calls)

	_, err := svc.TransferCall(context.Background(), "call_done", "escalation", "")
	assert.ErrorIs(t, err, call.ErrCallNotActive)
	assert.Equal(t, []string{"agent_002"}, store.released)
	assert.Empty(t, store.transfers)
}

func TestTransferCall_NoAgentAvailable(t *testing.T) {
	store := &fakeAgentStore{claimErr: agent.ErrNoAgentAvailable}
	calls := &fakeCallService{}
	svc := newTestService(store, calls)

	_, err := svc.TransferCall(context.Background(), "call_3", "escalation", "urgent")
	assert.ErrorIs(t, err, agent.ErrNoAgentAvailable)
	assert.Empty(t, calls.transferredCallID)
	assert.Empty(t, store.transfers)
}

func TestAvailableAgents_FiltersByStatus(t *testing.T) {
	store := &fakeAgentStore{agents: []agent.Agent{
		{AgentID: "agent_001", Status: agent.StatusAvailable},
		{AgentID: "agent_002", Status: agent.StatusBusy},
	}}
	svc := newTestService(store, &fakeCallService{})

	available, err := svc.AvailableAgents(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "agent_001", available[0].AgentID)
}
