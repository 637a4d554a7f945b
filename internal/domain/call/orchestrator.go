package call

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/infrastructure/metrics"
)

// FallbackReply is returned when the responder collaborator fails or
// times out mid-turn.
const FallbackReply = "I apologize, but I'm having trouble processing that. Let me transfer you to a human agent."

// escalationReply is returned when the escalation policy routes the
// caller toward a human instead of the automated responder.
const escalationReply = "I understand. Let me connect you with one of our agents who can help you right away."

// TurnResult is the outcome of one orchestrated turn.
type TurnResult struct {
	CallID     string        `json:"call_id"`
	Reply      string        `json:"reply"`
	Intent     intent.Intent `json:"intent"`
	Confidence float64       `json:"confidence"`
	Escalate   bool          `json:"escalate"`
	ToolUsed   string        `json:"tool_used,omitempty"`
}

// OrchestratorTimeouts bound every external collaborator call made
// during a turn.
type OrchestratorTimeouts struct {
	Responder time.Duration
	Tool      time.Duration
}

// Orchestrator drives one caller utterance through classification,
// escalation and the responder, mutating the session as it goes. It is
// safe for concurrent use across call IDs; the registry serializes
// turns within a call.
type Orchestrator struct {
	registry   Registry
	classifier *intent.Classifier
	responder  Responder
	tools      ToolExecutor
	handoff    HandoffRequester
	archive    Archive
	timeouts   OrchestratorTimeouts
	log        zerolog.Logger
}

// NewOrchestrator creates a turn orchestrator.
func NewOrchestrator(
	registry Registry,
	classifier *intent.Classifier,
	responder Responder,
	tools ToolExecutor,
	handoff HandoffRequester,
	archive Archive,
	timeouts OrchestratorTimeouts,
	log zerolog.Logger,
) *Orchestrator {
	if timeouts.Responder <= 0 {
		timeouts.Responder = 30 * time.Second
	}
	if timeouts.Tool <= 0 {
		timeouts.Tool = 10 * time.Second
	}
	return &Orchestrator{
		registry:   registry,
		classifier: classifier,
		responder:  responder,
		tools:      tools,
		handoff:    handoff,
		archive:    archive,
		timeouts:   timeouts,
		log:        log.With().Str("component", "turn-orchestrator").Logger(),
	}
}

// HandleTurn processes one caller utterance and returns the assistant
// reply together with the escalation decision.
func (o *Orchestrator) HandleTurn(ctx context.Context, callID, callerText string) (*TurnResult, error) {
	start := time.Now()

	sess, endTurn, err := o.registry.BeginTurn(ctx, callID)
	if err != nil {
		return nil, err
	}
	defer endTurn()

	result := o.classifier.Classify(callerText)
	callerMsg := sess.AppendMessage(SpeakerCaller, callerText, result.Intent)
	o.archiveMessage(ctx, callID, callerMsg)

	log := o.log.With().Str("call_id", callID).Str("intent", string(result.Intent)).Logger()
	log.Debug().
		Float64("confidence", result.Confidence).
		Bool("requires_clarification", result.RequiresClarification).
		Msg("caller turn classified")
	metrics.RecordIntentDetected(string(result.Intent))

	turn := &TurnResult{
		CallID:     callID,
		Intent:     result.Intent,
		Confidence: result.Confidence,
	}

	if intent.ShouldEscalate(result.Intent, sess.Sentiment) {
		turn.Escalate = true
		turn.Reply = escalationReply
		o.escalate(ctx, sess, string(result.Intent), log)
	} else {
		reply, toolUsed, failed := o.respond(ctx, sess, callerText, log)
		turn.Reply = reply
		turn.ToolUsed = toolUsed
		if failed {
			// Responder failure is itself an escalation trigger; the
			// session stays active while the handoff is arranged.
			turn.Escalate = true
			metrics.RecordCollaboratorFailure("responder")
		}
		assistantMsg := sess.AppendMessage(SpeakerAssistant, turn.Reply, result.Intent)
		o.archiveMessage(ctx, callID, assistantMsg)
	}

	metrics.ObserveTurnDuration(time.Since(start))
	if turn.Escalate {
		metrics.RecordEscalation()
	}
	return turn, nil
}

// respond obtains the assistant reply from the responder, executing at
// most one requested tool round trip. failed reports a collaborator
// failure that was absorbed into the fallback reply.
func (o *Orchestrator) respond(ctx context.Context, sess *Session, callerText string, log zerolog.Logger) (reply, toolUsed string, failed bool) {
	history := sess.Messages[:len(sess.Messages)-1] // everything before the current utterance
	callCtx := map[string]any{
		"call_id":       sess.CallID,
		"caller_number": sess.CallerNumber,
	}

	var tools []ToolDefinition
	if o.tools != nil {
		tools = o.tools.Definitions()
	}

	respCtx, cancel := context.WithTimeout(ctx, o.timeouts.Responder)
	defer cancel()

	resp, err := o.responder.Respond(respCtx, callerText, history, callCtx, tools)
	if err != nil {
		log.Warn().Err(err).Msg("responder failed, using fallback reply")
		return FallbackReply, "", true
	}
	sess.SetSentiment(resp.Sentiment)

	if resp.ToolRequest == nil {
		return resp.Text, "", false
	}

	req := resp.ToolRequest
	toolCtx, cancelTool := context.WithTimeout(ctx, o.timeouts.Tool)
	defer cancelTool()

	toolResult, err := o.tools.Execute(toolCtx, req.Name, req.Arguments)
	if err != nil {
		log.Warn().Err(err).Str("tool", req.Name).Msg("tool execution failed, using fallback reply")
		metrics.RecordCollaboratorFailure("tool")
		return FallbackReply, req.Name, true
	}
	metrics.RecordToolExecuted(req.Name)

	finalCtx, cancelFinal := context.WithTimeout(ctx, o.timeouts.Responder)
	defer cancelFinal()

	final, err := o.responder.RespondWithToolResult(finalCtx, callerText, history, req, toolResult)
	if err != nil {
		log.Warn().Err(err).Str("tool", req.Name).Msg("responder failed after tool call, using fallback reply")
		return FallbackReply, req.Name, true
	}
	sess.SetSentiment(final.Sentiment)

	return final.Text, req.Name, false
}

// escalate arranges a human handoff for the session. When an agent
// accepts, the session transitions to transferred and leaves the
// registry; when no agent is available the session stays active and
// only the escalate flag reaches the caller.
func (o *Orchestrator) escalate(ctx context.Context, sess *Session, reason string, log zerolog.Logger) {
	assistantMsg := sess.AppendMessage(SpeakerAssistant, escalationReply, "")
	o.archiveMessage(ctx, sess.CallID, assistantMsg)

	if o.handoff == nil {
		return
	}

	handoff, err := o.handoff.RequestHandoff(ctx, sess.CallID, reason, "high")
	if err != nil {
		log.Warn().Err(err).Msg("handoff request failed, call stays active")
		metrics.RecordCollaboratorFailure("handoff")
		return
	}

	if err := sess.Transfer(reason, handoff.AgentID, time.Now()); err != nil {
		log.Error().Err(err).Msg("failed to mark session transferred")
		return
	}

	if o.archive != nil {
		if err := o.archive.SaveCall(ctx, sess.Clone()); err != nil {
			log.Error().Err(err).Msg("failed to archive transferred call")
		}
	}
	if err := o.registry.Remove(ctx, sess.CallID); err != nil {
		log.Error().Err(err).Msg("failed to remove transferred call")
	}

	metrics.RecordCallEnded(string(StatusTransferred))
	log.Info().
		Str("agent_id", handoff.AgentID).
		Str("transfer_id", handoff.TransferID).
		Msg("call handed off to human agent")
}

func (o *Orchestrator) archiveMessage(ctx context.Context, callID string, msg Message) {
	if o.archive == nil {
		return
	}
	if err := o.archive.SaveMessage(ctx, callID, msg); err != nil {
		o.log.Debug().Err(err).Str("call_id", callID).Msg("failed to archive message")
	}
}
