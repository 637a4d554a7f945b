// Package call contains the call-session aggregate, its lifecycle state
// machine, the session registry contract and the per-turn orchestrator.
package call

import (
	"errors"
	"time"

	"voxassist/call-api/internal/domain/intent"
)

// Status represents the lifecycle state of a call session.
type Status string

const (
	// StatusActive indicates the call is live and accepting turns.
	StatusActive Status = "active"
	// StatusEnded indicates the call finished normally. Terminal.
	StatusEnded Status = "ended"
	// StatusTransferred indicates the call was handed to a human agent.
	// Terminal.
	StatusTransferred Status = "transferred"
)

// Speaker identifies who produced a message.
type Speaker string

const (
	SpeakerCaller    Speaker = "caller"
	SpeakerAssistant Speaker = "assistant"
)

// ErrCallNotActive is returned when a turn, end or transfer operation
// targets a session that already reached a terminal state.
var ErrCallNotActive = errors.New("call is not active")

// Message is one entry in a call transcript. Messages are immutable
// once appended and ordered by append order.
type Message struct {
	Speaker   Speaker       `json:"speaker"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
	Intent    intent.Intent `json:"intent,omitempty"`
}

// Session is the live record of one call. It is owned by the Registry;
// all mutation happens under the registry's per-call turn lock.
type Session struct {
	CallID       string           `json:"call_id"`
	CallerNumber string           `json:"caller_number"`
	StartTime    time.Time        `json:"start_time"`
	EndTime      time.Time        `json:"end_time,omitzero"`
	Status       Status           `json:"status"`
	Sentiment    intent.Sentiment `json:"sentiment,omitempty"`
	Messages     []Message        `json:"messages"`
	IntentsSeen  []intent.Intent  `json:"intents"`

	// DurationSeconds is zero until the session reaches a terminal
	// state, then fixed forever.
	DurationSeconds float64 `json:"duration,omitempty"`

	// Set only when Status is StatusTransferred.
	TransferReason  string `json:"transfer_reason,omitempty"`
	TransferAgentID string `json:"transfer_agent_id,omitempty"`
}

// NewSession creates an active session for the given caller.
func NewSession(callID, callerNumber string) *Session {
	return &Session{
		CallID:       callID,
		CallerNumber: callerNumber,
		StartTime:    time.Now(),
		Status:       StatusActive,
		Messages:     []Message{},
		IntentsSeen:  []intent.Intent{},
	}
}

// Active reports whether the session still accepts turns.
func (s *Session) Active() bool {
	return s.Status == StatusActive
}

// AppendMessage records a transcript entry. A caller intent is also
// appended to the intents-seen history, once per turn; an intent on an
// assistant reply only annotates the message.
func (s *Session) AppendMessage(speaker Speaker, text string, in intent.Intent) Message {
	msg := Message{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
		Intent:    in,
	}
	s.Messages = append(s.Messages, msg)
	if speaker == SpeakerCaller && in != "" {
		s.IntentsSeen = append(s.IntentsSeen, in)
	}
	return msg
}

// SetSentiment updates the detected caller sentiment.
func (s *Session) SetSentiment(sentiment intent.Sentiment) {
	if sentiment != "" {
		s.Sentiment = sentiment
	}
}

// End transitions the session to StatusEnded. A supplied positive
// duration takes precedence; otherwise the duration is computed from
// the end time and clamped at zero. Ending a non-active session fails
// without changing it.
func (s *Session) End(at time.Time, durationSeconds float64) error {
	if !s.Active() {
		return ErrCallNotActive
	}
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(s.StartTime) {
		at = s.StartTime
	}

	s.Status = StatusEnded
	s.EndTime = at
	if durationSeconds > 0 {
		s.DurationSeconds = durationSeconds
	} else {
		s.DurationSeconds = at.Sub(s.StartTime).Seconds()
	}
	return nil
}

// Transfer transitions the session to StatusTransferred, recording the
// handoff reason and the receiving agent.
func (s *Session) Transfer(reason, agentID string, at time.Time) error {
	if !s.Active() {
		return ErrCallNotActive
	}
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(s.StartTime) {
		at = s.StartTime
	}

	s.Status = StatusTransferred
	s.EndTime = at
	s.DurationSeconds = at.Sub(s.StartTime).Seconds()
	s.TransferReason = reason
	s.TransferAgentID = agentID
	return nil
}

// Clone returns a deep copy safe to hand outside the registry lock.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Messages = make([]Message, len(s.Messages))
	copy(cp.Messages, s.Messages)
	cp.IntentsSeen = make([]intent.Intent, len(s.IntentsSeen))
	copy(cp.IntentsSeen, s.IntentsSeen)
	return &cp
}
