package archive

import (
	"time"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/domain/intent"
)

type callRecord struct {
	CallID          string `gorm:"primaryKey"`
	CallerNumber    string
	StartTime       time.Time
	EndTime         *time.Time
	Status          string `gorm:"index"`
	Sentiment       string
	IntentsSeen     []string `gorm:"serializer:json"`
	DurationSeconds float64
	TransferReason  string
	TransferAgentID string
	UpdatedAt       time.Time
}

func (callRecord) TableName() string { return "calls" }

type messageRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CallID    string `gorm:"index"`
	Speaker   string
	Text      string
	Intent    string
	Timestamp time.Time
}

func (messageRecord) TableName() string { return "messages" }

type faqRecord struct {
	ID        string `gorm:"primaryKey"`
	Question  string
	Answer    string
	Category  string `gorm:"index"`
	Frequency int
	CreatedAt time.Time
}

func (faqRecord) TableName() string { return "faqs" }

type agentRecord struct {
	AgentID            string `gorm:"primaryKey"`
	Name               string
	Status             string `gorm:"index"`
	Specialization     string
	CurrentCalls       int
	MaxConcurrentCalls int
}

func (agentRecord) TableName() string { return "agents" }

type transferRecord struct {
	TransferID           string `gorm:"primaryKey"`
	CallID               string `gorm:"index"`
	Reason               string
	Priority             string
	AgentID              string
	AgentName            string
	EstimatedWaitSeconds int
	CreatedAt            time.Time
}

func (transferRecord) TableName() string { return "transfers" }

func callRecordFrom(snapshot *call.Session) *callRecord {
	rec := &callRecord{
		CallID:          snapshot.CallID,
		CallerNumber:    snapshot.CallerNumber,
		StartTime:       snapshot.StartTime,
		Status:          string(snapshot.Status),
		Sentiment:       string(snapshot.Sentiment),
		DurationSeconds: snapshot.DurationSeconds,
		TransferReason:  snapshot.TransferReason,
		TransferAgentID: snapshot.TransferAgentID,
	}
	for _, in := range snapshot.IntentsSeen {
		rec.IntentsSeen = append(rec.IntentsSeen, string(in))
	}
	if !snapshot.EndTime.IsZero() {
		end := snapshot.EndTime
		rec.EndTime = &end
	}
	return rec
}

func (r *callRecord) toSession(messages []messageRecord) *call.Session {
	sess := &call.Session{
		CallID:          r.CallID,
		CallerNumber:    r.CallerNumber,
		StartTime:       r.StartTime,
		Status:          call.Status(r.Status),
		Sentiment:       intent.Sentiment(r.Sentiment),
		DurationSeconds: r.DurationSeconds,
		TransferReason:  r.TransferReason,
		TransferAgentID: r.TransferAgentID,
	}
	if r.EndTime != nil {
		sess.EndTime = *r.EndTime
	}
	for _, in := range r.IntentsSeen {
		sess.IntentsSeen = append(sess.IntentsSeen, intent.Intent(in))
	}
	for _, m := range messages {
		sess.Messages = append(sess.Messages, call.Message{
			Speaker:   call.Speaker(m.Speaker),
			Text:      m.Text,
			Intent:    intent.Intent(m.Intent),
			Timestamp: m.Timestamp,
		})
	}
	return sess
}

func faqFrom(r *faqRecord) faq.FAQ {
	return faq.FAQ{
		ID:        r.ID,
		Question:  r.Question,
		Answer:    r.Answer,
		Category:  r.Category,
		Frequency: r.Frequency,
		CreatedAt: r.CreatedAt,
	}
}

func agentFrom(r *agentRecord) agent.Agent {
	return agent.Agent{
		AgentID:            r.AgentID,
		Name:               r.Name,
		Status:             r.Status,
		Specialization:     r.Specialization,
		CurrentCalls:       r.CurrentCalls,
		MaxConcurrentCalls: r.MaxConcurrentCalls,
	}
}
