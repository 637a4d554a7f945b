package archive_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/infrastructure/archive"
	"voxassist/call-api/internal/infrastructure/store"
)

func TestMemoryStore_Seeds(t *testing.T) {
	s := archive.NewMemoryStore()

	agents, err := s.ListAgents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "agent_001", agents[0].AgentID)
	assert.Equal(t, "Sarah Johnson", agents[0].Name)
	assert.Equal(t, "agent_002", agents[1].AgentID)

	faqs, err := s.ListFAQs(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, faqs, 2)
}

func TestMemoryStore_SearchFAQsBumpsFrequency(t *testing.T) {
	s := archive.NewMemoryStore()

	first, err := s.SearchFAQs(context.Background(), "hours", 5)
	require.NoError(t, err)
	require.Len(t, first, 1)
	baseline := first[0].Frequency

	second, err := s.SearchFAQs(context.Background(), "hours", 5)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, baseline+1, second[0].Frequency)
}

func TestMemoryStore_SearchFAQsRespectsLimit(t *testing.T) {
	s := archive.NewMemoryStore()
	require.NoError(t, s.SaveFAQ(context.Background(), &faq.FAQ{
		ID:       "faq_ret",
		Question: "What is your return policy?",
		Answer:   "Returns are accepted within 30 days.",
	}))

	// Empty query matches everything.
	results, err := s.SearchFAQs(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemoryStore_ClaimAgentPicksLeastLoaded(t *testing.T) {
	s := archive.NewMemoryStore()

	first, err := s.ClaimAgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "agent_001", first.AgentID)
	assert.Equal(t, 1, first.CurrentCalls)

	second, err := s.ClaimAgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "agent_002", second.AgentID)
}

func TestMemoryStore_ClaimAgentExhaustion(t *testing.T) {
	s := archive.NewMemoryStore()

	// Both seeded agents allow 3 concurrent calls.
	for i := 0; i < 6; i++ {
		claimed, err := s.ClaimAgent(context.Background())
		require.NoError(t, err)
		if claimed.CurrentCalls == claimed.MaxConcurrentCalls {
			assert.Equal(t, agent.StatusBusy, claimed.Status)
		}
	}

	_, err := s.ClaimAgent(context.Background())
	assert.ErrorIs(t, err, agent.ErrNoAgentAvailable)

	available, err := s.ListAgents(context.Background(), agent.StatusAvailable)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestMemoryStore_ReleaseAgentReturnsSlot(t *testing.T) {
	s := archive.NewMemoryStore()

	claimed, err := s.ClaimAgent(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.ReleaseAgent(context.Background(), claimed.AgentID))

	agents, err := s.ListAgents(context.Background(), "")
	require.NoError(t, err)
	for _, a := range agents {
		assert.Zero(t, a.CurrentCalls)
	}
}

func TestMemoryStore_ReleaseAgentReopensBusyAgent(t *testing.T) {
	s := archive.NewMemoryStore()

	for i := 0; i < 6; i++ {
		_, err := s.ClaimAgent(context.Background())
		require.NoError(t, err)
	}
	_, err := s.ClaimAgent(context.Background())
	require.ErrorIs(t, err, agent.ErrNoAgentAvailable)

	require.NoError(t, s.ReleaseAgent(context.Background(), "agent_002"))

	claimed, err := s.ClaimAgent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "agent_002", claimed.AgentID)
}

func TestMemoryStore_ReleaseAgentUnknown(t *testing.T) {
	s := archive.NewMemoryStore()
	assert.ErrorIs(t, s.ReleaseAgent(context.Background(), "agent_999"), agent.ErrAgentNotFound)
}

func TestMemoryStore_SaveAndGetCall(t *testing.T) {
	s := archive.NewMemoryStore()
	sess := call.NewSession("call_arch", "+15550000000")
	sess.AppendMessage(call.SpeakerCaller, "hello", "greeting")

	require.NoError(t, s.SaveCall(context.Background(), sess))

	got, err := s.GetCall(context.Background(), "call_arch")
	require.NoError(t, err)
	assert.Equal(t, "+15550000000", got.CallerNumber)
	require.Len(t, got.Messages, 1)

	// The archived snapshot is detached from the live session.
	sess.AppendMessage(call.SpeakerAssistant, "hi there", "")
	again, err := s.GetCall(context.Background(), "call_arch")
	require.NoError(t, err)
	assert.Len(t, again.Messages, 1)
}

func TestMemoryStore_GetCallMissing(t *testing.T) {
	s := archive.NewMemoryStore()
	_, err := s.GetCall(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrCallNotFound)
}
