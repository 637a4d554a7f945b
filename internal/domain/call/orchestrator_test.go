package call_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/intent"
)

// fakeRegistry is a minimal single-map registry for orchestrator tests.
type fakeRegistry struct {
	mu       sync.Mutex
	sessions map[string]*call.Session
	removed  []string
}

func newFakeRegistry(sessions ...*call.Session) *fakeRegistry {
	r := &fakeRegistry{sessions: make(map[string]*call.Session)}
	for _, sess := range sessions {
		r.sessions[sess.CallID] = sess
	}
	return r
}

var errNotFound = errors.New("not found")

func (r *fakeRegistry) Create(_ context.Context, sess *call.Session) error {
	r.sessions[sess.CallID] = sess
	return nil
}

func (r *fakeRegistry) Get(_ context.Context, callID string) (*call.Session, error) {
	sess, ok := r.sessions[callID]
	if !ok {
		return nil, errNotFound
	}
	return sess.Clone(), nil
}

func (r *fakeRegistry) List(_ context.Context) ([]*call.Session, error) {
	var out []*call.Session
	for _, sess := range r.sessions {
		out = append(out, sess.Clone())
	}
	return out, nil
}

func (r *fakeRegistry) BeginTurn(_ context.Context, callID string) (*call.Session, call.EndTurn, error) {
	r.mu.Lock()
	sess, ok := r.sessions[callID]
	if !ok {
		r.mu.Unlock()
		return nil, nil, errNotFound
	}
	if !sess.Active() {
		r.mu.Unlock()
		return nil, nil, call.ErrCallNotActive
	}
	return sess, r.mu.Unlock, nil
}

func (r *fakeRegistry) Remove(_ context.Context, callID string) error {
	delete(r.sessions, callID)
	r.removed = append(r.removed, callID)
	return nil
}

// scriptedResponder returns canned replies and records invocations.
type scriptedResponder struct {
	reply         *call.ResponderReply
	finalReply    *call.ResponderReply
	err           error
	respondCalls  int
	toolCalls     int
	lastHistLen   int
	lastToolsSeen int
}

func (s *scriptedResponder) Respond(_ context.Context, _ string, history []call.Message, _ map[string]any, tools []call.ToolDefinition) (*call.ResponderReply, error) {
	s.respondCalls++
	s.lastHistLen = len(history)
	s.lastToolsSeen = len(tools)
	if s.err != nil {
		return nil, s.err
	}
	return s.reply, nil
}

func (s *scriptedResponder) RespondWithToolResult(_ context.Context, _ string, _ []call.Message, _ *call.ToolRequest, _ map[string]any) (*call.ResponderReply, error) {
	s.toolCalls++
	if s.finalReply == nil {
		return nil, errors.New("no final reply scripted")
	}
	return s.finalReply, nil
}

func (s *scriptedResponder) ClassifyAdvanced(context.Context, string) (*intent.AdvancedResult, error) {
	return nil, errors.New("not scripted")
}

type fakeTools struct {
	defs     []call.ToolDefinition
	result   map[string]any
	err      error
	executed []string
}

func (f *fakeTools) Definitions() []call.ToolDefinition { return f.defs }

func (f *fakeTools) Execute(_ context.Context, name string, _ map[string]any) (map[string]any, error) {
	f.executed = append(f.executed, name)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeHandoff struct {
	handoff *call.Handoff
	err     error
	calls   int
}

func (f *fakeHandoff) RequestHandoff(context.Context, string, string, string) (*call.Handoff, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.handoff, nil
}

type recordingArchive struct {
	calls    []*call.Session
	messages []call.Message
}

func (a *recordingArchive) SaveCall(_ context.Context, snapshot *call.Session) error {
	a.calls = append(a.calls, snapshot)
	return nil
}

func (a *recordingArchive) SaveMessage(_ context.Context, _ string, msg call.Message) error {
	a.messages = append(a.messages, msg)
	return nil
}

func (a *recordingArchive) GetCall(context.Context, string) (*call.Session, error) {
	return nil, errNotFound
}

func newTestOrchestrator(registry call.Registry, responder call.Responder, tools call.ToolExecutor, handoff call.HandoffRequester, archive call.Archive) *call.Orchestrator {
	return call.NewOrchestrator(
		registry,
		intent.NewClassifier(),
		responder,
		tools,
		handoff,
		archive,
		call.OrchestratorTimeouts{},
		zerolog.Nop(),
	)
}

func TestOrchestrator_SuccessfulTurn(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{reply: &call.ResponderReply{Text: "We open at nine."}}
	archive := &recordingArchive{}

	orch := newTestOrchestrator(registry, responder, &fakeTools{}, &fakeHandoff{}, archive)

	turn, err := orch.HandleTurn(context.Background(), "call_1", "what are your hours?")
	require.NoError(t, err)

	assert.Equal(t, "We open at nine.", turn.Reply)
	assert.Equal(t, intent.IntentBusinessHours, turn.Intent)
	assert.False(t, turn.Escalate)
	assert.Empty(t, turn.ToolUsed)

	// Caller utterance plus assistant reply, both archived.
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, call.SpeakerCaller, sess.Messages[0].Speaker)
	assert.Equal(t, call.SpeakerAssistant, sess.Messages[1].Speaker)
	assert.Len(t, archive.messages, 2)

	// History passed to the responder excludes the current utterance.
	assert.Equal(t, 0, responder.lastHistLen)
	assert.True(t, sess.Active())
}

func TestOrchestrator_TurnRecordsIntentOnce(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{reply: &call.ResponderReply{Text: "We open at nine."}}

	orch := newTestOrchestrator(registry, responder, &fakeTools{}, &fakeHandoff{}, &recordingArchive{})

	_, err := orch.HandleTurn(context.Background(), "call_1", "what are your hours?")
	require.NoError(t, err)

	// One intents-seen entry per turn; the assistant reply carries the
	// classified intent without recording it again.
	assert.Equal(t, []intent.Intent{intent.IntentBusinessHours}, sess.IntentsSeen)
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, intent.IntentBusinessHours, sess.Messages[1].Intent)
}

func TestOrchestrator_ToolRoundTrip(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{
		reply: &call.ResponderReply{
			Text: "",
			ToolRequest: &call.ToolRequest{
				ID:        "tc_1",
				Name:      "get_business_hours",
				Arguments: map[string]any{},
			},
		},
		finalReply: &call.ResponderReply{Text: "We are open nine to five."},
	}
	tools := &fakeTools{result: map[string]any{"hours": "9-5"}}

	orch := newTestOrchestrator(registry, responder, tools, &fakeHandoff{}, &recordingArchive{})

	turn, err := orch.HandleTurn(context.Background(), "call_1", "are you open right now?")
	require.NoError(t, err)

	assert.Equal(t, "We are open nine to five.", turn.Reply)
	assert.Equal(t, "get_business_hours", turn.ToolUsed)
	assert.False(t, turn.Escalate)

	// Exactly one tool execution and one follow-up responder call.
	assert.Equal(t, []string{"get_business_hours"}, tools.executed)
	assert.Equal(t, 1, responder.respondCalls)
	assert.Equal(t, 1, responder.toolCalls)
}

func TestOrchestrator_ResponderFailureFallsBack(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{err: context.DeadlineExceeded}

	orch := newTestOrchestrator(registry, responder, &fakeTools{}, &fakeHandoff{}, &recordingArchive{})

	turn, err := orch.HandleTurn(context.Background(), "call_1", "tell me about your services")
	require.NoError(t, err)

	assert.Equal(t, call.FallbackReply, turn.Reply)
	assert.True(t, turn.Escalate)

	// Collaborator failure never terminates the session.
	assert.True(t, sess.Active())
	assert.Len(t, sess.Messages, 2)
}

func TestOrchestrator_ToolFailureFallsBack(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{
		reply: &call.ResponderReply{
			ToolRequest: &call.ToolRequest{ID: "tc_1", Name: "search_faqs", Arguments: map[string]any{"query": "hours"}},
		},
	}
	tools := &fakeTools{err: errors.New("backend down")}

	orch := newTestOrchestrator(registry, responder, tools, &fakeHandoff{}, &recordingArchive{})

	turn, err := orch.HandleTurn(context.Background(), "call_1", "when do you open")
	require.NoError(t, err)

	assert.Equal(t, call.FallbackReply, turn.Reply)
	assert.True(t, turn.Escalate)
	assert.Equal(t, 0, responder.toolCalls)
	assert.True(t, sess.Active())
}

func TestOrchestrator_ComplaintEscalatesAndTransfers(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{reply: &call.ResponderReply{Text: "unused"}}
	handoff := &fakeHandoff{handoff: &call.Handoff{TransferID: "transfer_1", AgentID: "agent_001"}}
	archive := &recordingArchive{}

	orch := newTestOrchestrator(registry, responder, &fakeTools{}, handoff, archive)

	turn, err := orch.HandleTurn(context.Background(), "call_1", "I have a complaint, this is terrible")
	require.NoError(t, err)

	assert.True(t, turn.Escalate)
	assert.Equal(t, intent.IntentComplaint, turn.Intent)
	assert.NotEmpty(t, turn.Reply)

	// The responder is bypassed on escalation.
	assert.Equal(t, 0, responder.respondCalls)
	assert.Equal(t, 1, handoff.calls)

	// Agent accepted: session is transferred, archived and removed.
	assert.Equal(t, call.StatusTransferred, sess.Status)
	assert.Equal(t, "agent_001", sess.TransferAgentID)
	assert.Equal(t, []string{"call_1"}, registry.removed)
	require.Len(t, archive.calls, 1)
	assert.Equal(t, call.StatusTransferred, archive.calls[0].Status)
}

func TestOrchestrator_EscalationWithoutAgentKeepsCallActive(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	registry := newFakeRegistry(sess)
	handoff := &fakeHandoff{err: errors.New("no agent available")}

	orch := newTestOrchestrator(registry, &scriptedResponder{reply: &call.ResponderReply{Text: "unused"}}, &fakeTools{}, handoff, &recordingArchive{})

	turn, err := orch.HandleTurn(context.Background(), "call_1", "transfer me to a human agent")
	require.NoError(t, err)

	assert.True(t, turn.Escalate)
	assert.True(t, sess.Active())
	assert.Empty(t, registry.removed)
}

func TestOrchestrator_AngrySentimentEscalates(t *testing.T) {
	sess := call.NewSession("call_1", "+15550001111")
	sess.SetSentiment(intent.SentimentAngry)
	registry := newFakeRegistry(sess)
	responder := &scriptedResponder{reply: &call.ResponderReply{Text: "unused"}}

	orch := newTestOrchestrator(registry, responder, &fakeTools{}, &fakeHandoff{err: errors.New("none")}, &recordingArchive{})

	turn, err := orch.HandleTurn(context.Background(), "call_1", "where is my package")
	require.NoError(t, err)

	assert.True(t, turn.Escalate)
	assert.Equal(t, 0, responder.respondCalls)
}

func TestOrchestrator_UnknownCall(t *testing.T) {
	registry := newFakeRegistry()
	orch := newTestOrchestrator(registry, &scriptedResponder{}, &fakeTools{}, &fakeHandoff{}, &recordingArchive{})

	_, err := orch.HandleTurn(context.Background(), "missing", "hello")
	assert.Error(t, err)
}
