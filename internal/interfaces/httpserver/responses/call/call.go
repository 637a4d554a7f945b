// Package call contains HTTP response DTOs for call sessions.
package call

import (
	"time"

	domaincall "voxassist/call-api/internal/domain/call"
)

// MessageResponse is one transcript entry.
type MessageResponse struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CallResponse is the full state of a call session.
type CallResponse struct {
	CallID          string            `json:"call_id"`
	CallerNumber    string            `json:"caller_number"`
	Status          string            `json:"status"`
	Sentiment       string            `json:"sentiment,omitempty"`
	StartTime       time.Time         `json:"start_time"`
	EndTime         *time.Time        `json:"end_time,omitempty"`
	DurationSeconds float64           `json:"duration_seconds"`
	IntentsSeen     []string          `json:"intents_seen,omitempty"`
	TransferReason  string            `json:"transfer_reason,omitempty"`
	TransferAgentID string            `json:"transfer_agent_id,omitempty"`
	Messages        []MessageResponse `json:"messages"`
}

// NewCallResponse builds a CallResponse from a session snapshot.
func NewCallResponse(sess *domaincall.Session) *CallResponse {
	resp := &CallResponse{
		CallID:          sess.CallID,
		CallerNumber:    sess.CallerNumber,
		Status:          string(sess.Status),
		Sentiment:       string(sess.Sentiment),
		StartTime:       sess.StartTime,
		DurationSeconds: sess.DurationSeconds,
		TransferReason:  sess.TransferReason,
		TransferAgentID: sess.TransferAgentID,
		Messages:        make([]MessageResponse, 0, len(sess.Messages)),
	}
	if !sess.EndTime.IsZero() {
		end := sess.EndTime
		resp.EndTime = &end
	}
	for _, in := range sess.IntentsSeen {
		resp.IntentsSeen = append(resp.IntentsSeen, string(in))
	}
	for _, msg := range sess.Messages {
		resp.Messages = append(resp.Messages, MessageResponse{
			Speaker:   string(msg.Speaker),
			Text:      msg.Text,
			Intent:    string(msg.Intent),
			Timestamp: msg.Timestamp,
		})
	}
	return resp
}

// StartCallResponse confirms a newly created session.
type StartCallResponse struct {
	Status       string    `json:"status"`
	CallID       string    `json:"call_id"`
	CallerNumber string    `json:"caller_number"`
	StartTime    time.Time `json:"start_time"`
	Message      string    `json:"message"`
}

// NewStartCallResponse builds the creation confirmation.
func NewStartCallResponse(sess *domaincall.Session) *StartCallResponse {
	return &StartCallResponse{
		Status:       "success",
		CallID:       sess.CallID,
		CallerNumber: sess.CallerNumber,
		StartTime:    sess.StartTime,
		Message:      "Call session initialized",
	}
}

// EndCallResponse confirms a terminated session.
type EndCallResponse struct {
	Status          string    `json:"status"`
	CallID          string    `json:"call_id"`
	EndTime         time.Time `json:"end_time"`
	DurationSeconds float64   `json:"duration_seconds"`
	Sentiment       string    `json:"sentiment,omitempty"`
	Message         string    `json:"message"`
}

// NewEndCallResponse builds the termination confirmation.
func NewEndCallResponse(sess *domaincall.Session) *EndCallResponse {
	return &EndCallResponse{
		Status:          "success",
		CallID:          sess.CallID,
		EndTime:         sess.EndTime,
		DurationSeconds: sess.DurationSeconds,
		Sentiment:       string(sess.Sentiment),
		Message:         "Call session ended",
	}
}

// ListCallsResponse lists active sessions.
type ListCallsResponse struct {
	Calls []*CallResponse `json:"calls"`
	Count int             `json:"count"`
}

// NewListCallsResponse builds the active-call listing.
func NewListCallsResponse(sessions []*domaincall.Session) *ListCallsResponse {
	calls := make([]*CallResponse, 0, len(sessions))
	for _, sess := range sessions {
		calls = append(calls, NewCallResponse(sess))
	}
	return &ListCallsResponse{Calls: calls, Count: len(calls)}
}
