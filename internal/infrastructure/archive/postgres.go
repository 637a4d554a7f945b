package archive

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/infrastructure/store"
)

// PostgresStore persists archive data through gorm.
type PostgresStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPostgresStore opens the database, migrates the schema, and seeds
// default agents and FAQs when the tables are empty.
func NewPostgresStore(dsn string, log zerolog.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&callRecord{},
		&messageRecord{},
		&faqRecord{},
		&agentRecord{},
		&transferRecord{},
	); err != nil {
		return nil, err
	}

	s := &PostgresStore{db: db, log: log.With().Str("component", "archive").Logger()}
	if err := s.seed(); err != nil {
		return nil, err
	}
	log.Info().Msg("postgres archive ready")
	return s, nil
}

func (s *PostgresStore) seed() error {
	var agents int64
	if err := s.db.Model(&agentRecord{}).Count(&agents).Error; err != nil {
		return err
	}
	if agents == 0 {
		if err := s.db.Create(defaultAgents()).Error; err != nil {
			return err
		}
	}

	var faqs int64
	if err := s.db.Model(&faqRecord{}).Count(&faqs).Error; err != nil {
		return err
	}
	if faqs == 0 {
		if err := s.db.Create(defaultFAQs()).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) SaveCall(ctx context.Context, snapshot *call.Session) error {
	rec := callRecordFrom(snapshot)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "call_id"}},
		UpdateAll: true,
	}).Create(rec).Error
}

func (s *PostgresStore) SaveMessage(ctx context.Context, callID string, msg call.Message) error {
	rec := &messageRecord{
		CallID:    callID,
		Speaker:   string(msg.Speaker),
		Text:      msg.Text,
		Intent:    string(msg.Intent),
		Timestamp: msg.Timestamp,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *PostgresStore) GetCall(ctx context.Context, callID string) (*call.Session, error) {
	var rec callRecord
	err := s.db.WithContext(ctx).First(&rec, "call_id = ?", callID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrCallNotFound
	}
	if err != nil {
		return nil, err
	}

	var messages []messageRecord
	if err := s.db.WithContext(ctx).
		Where("call_id = ?", callID).
		Order("timestamp asc, id asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return rec.toSession(messages), nil
}

func (s *PostgresStore) SearchFAQs(ctx context.Context, query string, limit int) ([]faq.FAQ, error) {
	pattern := "%" + query + "%"
	var recs []faqRecord
	if err := s.db.WithContext(ctx).
		Where("question ILIKE ? OR answer ILIKE ?", pattern, pattern).
		Order("frequency desc").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}

	results := make([]faq.FAQ, 0, len(recs))
	for i := range recs {
		results = append(results, faqFrom(&recs[i]))
	}
	if len(recs) > 0 {
		ids := make([]string, 0, len(recs))
		for i := range recs {
			ids = append(ids, recs[i].ID)
		}
		if err := s.db.WithContext(ctx).Model(&faqRecord{}).
			Where("id IN ?", ids).
			UpdateColumn("frequency", gorm.Expr("frequency + 1")).Error; err != nil {
			s.log.Warn().Err(err).Msg("bump faq frequency")
		}
	}
	return results, nil
}

func (s *PostgresStore) ListFAQs(ctx context.Context, category string, limit int) ([]faq.FAQ, error) {
	q := s.db.WithContext(ctx).Order("frequency desc").Limit(limit)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var recs []faqRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	results := make([]faq.FAQ, 0, len(recs))
	for i := range recs {
		results = append(results, faqFrom(&recs[i]))
	}
	return results, nil
}

func (s *PostgresStore) SaveFAQ(ctx context.Context, entry *faq.FAQ) error {
	rec := &faqRecord{
		ID:        entry.ID,
		Question:  entry.Question,
		Answer:    entry.Answer,
		Category:  entry.Category,
		Frequency: entry.Frequency,
		CreatedAt: entry.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *PostgresStore) ListAgents(ctx context.Context, status string) ([]agent.Agent, error) {
	q := s.db.WithContext(ctx).Order("current_calls asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var recs []agentRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	agents := make([]agent.Agent, 0, len(recs))
	for i := range recs {
		agents = append(agents, agentFrom(&recs[i]))
	}
	return agents, nil
}

// ClaimAgent reserves the least loaded available agent inside a
// transaction so concurrent escalations cannot overbook one.
func (s *PostgresStore) ClaimAgent(ctx context.Context) (*agent.Agent, error) {
	var claimed *agent.Agent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec agentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND current_calls < max_concurrent_calls", agent.StatusAvailable).
			Order("current_calls asc").
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return agent.ErrNoAgentAvailable
		}
		if err != nil {
			return err
		}

		rec.CurrentCalls++
		if rec.CurrentCalls >= rec.MaxConcurrentCalls {
			rec.Status = agent.StatusBusy
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		a := agentFrom(&rec)
		claimed = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ReleaseAgent returns a claimed slot to the pool, reusing the same
// row lock as ClaimAgent.
func (s *PostgresStore) ReleaseAgent(ctx context.Context, agentID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec agentRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "agent_id = ?", agentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return agent.ErrAgentNotFound
		}
		if err != nil {
			return err
		}

		if rec.CurrentCalls > 0 {
			rec.CurrentCalls--
		}
		if rec.Status == agent.StatusBusy && rec.CurrentCalls < rec.MaxConcurrentCalls {
			rec.Status = agent.StatusAvailable
		}
		return tx.Save(&rec).Error
	})
}

func (s *PostgresStore) SaveTransfer(ctx context.Context, transfer *agent.Transfer) error {
	rec := &transferRecord{
		TransferID:           transfer.TransferID,
		CallID:               transfer.CallID,
		Reason:               transfer.Reason,
		Priority:             transfer.Priority,
		AgentID:              transfer.AgentID,
		AgentName:            transfer.AgentName,
		EstimatedWaitSeconds: transfer.EstimatedWaitSeconds,
		CreatedAt:            transfer.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(rec).Error
}

func defaultAgents() []agentRecord {
	return []agentRecord{
		{
			AgentID:            "agent_001",
			Name:               "Sarah Johnson",
			Status:             agent.StatusAvailable,
			Specialization:     "technical_support",
			MaxConcurrentCalls: 3,
		},
		{
			AgentID:            "agent_002",
			Name:               "Mike Chen",
			Status:             agent.StatusAvailable,
			Specialization:     "sales",
			MaxConcurrentCalls: 3,
		},
	}
}

func defaultFAQs() []faqRecord {
	now := time.Now()
	return []faqRecord{
		{
			ID:        "faq_business_hours",
			Question:  "What are your business hours?",
			Answer:    "We are open Monday to Friday, 9 AM to 5 PM EST.",
			Category:  "general",
			Frequency: 150,
			CreatedAt: now,
		},
		{
			ID:        "faq_book_appointment",
			Question:  "How can I book an appointment?",
			Answer:    "You can book an appointment by calling us or using our online portal.",
			Category:  "appointments",
			Frequency: 89,
			CreatedAt: now,
		},
	}
}
