// Package faq manages the knowledge base searched by callers and by
// the responder's search_faqs tool.
package faq

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/utils/idgen"
)

// ErrQuestionRequired is returned when an FAQ is added without both a
// question and an answer.
var ErrQuestionRequired = errors.New("question and answer are required")

// FAQ is one knowledge-base entry.
type FAQ struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Category  string    `json:"category,omitempty"`
	Frequency int       `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence contract for FAQ entries.
type Store interface {
	SearchFAQs(ctx context.Context, query string, limit int) ([]FAQ, error)
	ListFAQs(ctx context.Context, category string, limit int) ([]FAQ, error)
	SaveFAQ(ctx context.Context, entry *FAQ) error
}

// Service exposes FAQ operations to the HTTP surface and the tool
// registry.
type Service interface {
	Search(ctx context.Context, query string, limit int) ([]FAQ, error)
	List(ctx context.Context, category string, limit int) ([]FAQ, error)
	Add(ctx context.Context, entry *FAQ) (*FAQ, error)
}

type service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates an FAQ service.
func NewService(store Store, log zerolog.Logger) Service {
	return &service{
		store: store,
		log:   log.With().Str("component", "faq-service").Logger(),
	}
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]FAQ, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.SearchFAQs(ctx, query, limit)
}

func (s *service) List(ctx context.Context, category string, limit int) ([]FAQ, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.store.ListFAQs(ctx, category, limit)
}

func (s *service) Add(ctx context.Context, entry *FAQ) (*FAQ, error) {
	if entry.Question == "" || entry.Answer == "" {
		return nil, ErrQuestionRequired
	}

	if entry.ID == "" {
		id, err := idgen.GenerateSecureID("faq", 12)
		if err != nil {
			return nil, err
		}
		entry.ID = id
	}
	entry.CreatedAt = time.Now()

	if err := s.store.SaveFAQ(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info().Str("faq_id", entry.ID).Str("category", entry.Category).Msg("faq added")
	return entry, nil
}
