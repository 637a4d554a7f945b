package call

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/intent"
	"voxassist/call-api/internal/infrastructure/metrics"
	"voxassist/call-api/internal/utils/idgen"
)

// ErrCallerNumberRequired is returned when a call is started without a
// caller identifier.
var ErrCallerNumberRequired = errors.New("caller_number is required")

// Service defines the lifecycle operations for call sessions.
type Service interface {
	// StartCall creates an active session. When callID is empty a
	// unique one is generated.
	StartCall(ctx context.Context, callerNumber, callID string) (*Session, error)

	// GetCall returns a snapshot of a live session, falling back to
	// the archive for finished calls.
	GetCall(ctx context.Context, callID string) (*Session, error)

	// ListActiveCalls returns snapshots of all live sessions.
	ListActiveCalls(ctx context.Context) ([]*Session, error)

	// EndCall terminates a session, persists the final snapshot and
	// removes it from the registry.
	EndCall(ctx context.Context, callID string, durationSeconds float64, sentiment intent.Sentiment) (*Session, error)

	// TransferCall marks a session transferred to a human agent,
	// persists the snapshot and removes it from the registry.
	TransferCall(ctx context.Context, callID, reason, agentID string) (*Session, error)

	// UpdateSentiment records a newly detected caller sentiment.
	UpdateSentiment(ctx context.Context, callID string, sentiment intent.Sentiment) error
}

type service struct {
	registry Registry
	archive  Archive
	log      zerolog.Logger
}

// NewService creates a call lifecycle service.
func NewService(registry Registry, archive Archive, log zerolog.Logger) Service {
	return &service{
		registry: registry,
		archive:  archive,
		log:      log.With().Str("component", "call-service").Logger(),
	}
}

func (s *service) StartCall(ctx context.Context, callerNumber, callID string) (*Session, error) {
	if callerNumber == "" {
		return nil, ErrCallerNumberRequired
	}

	if callID == "" {
		generated, err := idgen.GenerateSecureID("call", 12)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to generate call ID")
			return nil, err
		}
		callID = generated
	}

	sess := NewSession(callID, callerNumber)
	if err := s.registry.Create(ctx, sess); err != nil {
		return nil, err
	}

	metrics.RecordCallStarted()
	s.log.Info().
		Str("call_id", callID).
		Str("caller_number", callerNumber).
		Msg("call started")

	return sess.Clone(), nil
}

func (s *service) GetCall(ctx context.Context, callID string) (*Session, error) {
	sess, err := s.registry.Get(ctx, callID)
	if err == nil {
		return sess, nil
	}
	if s.archive == nil {
		return nil, err
	}

	archived, archiveErr := s.archive.GetCall(ctx, callID)
	if archiveErr != nil {
		return nil, err
	}
	return archived, nil
}

func (s *service) ListActiveCalls(ctx context.Context) ([]*Session, error) {
	return s.registry.List(ctx)
}

func (s *service) EndCall(ctx context.Context, callID string, durationSeconds float64, sentiment intent.Sentiment) (*Session, error) {
	sess, endTurn, err := s.registry.BeginTurn(ctx, callID)
	if err != nil {
		return nil, err
	}
	defer endTurn()

	sess.SetSentiment(sentiment)
	if err := sess.End(time.Now(), durationSeconds); err != nil {
		return nil, err
	}

	snapshot := sess.Clone()
	s.persistSnapshot(ctx, snapshot)

	if err := s.registry.Remove(ctx, callID); err != nil {
		s.log.Error().Err(err).Str("call_id", callID).Msg("failed to remove ended call")
	}

	metrics.RecordCallEnded(string(StatusEnded))
	s.log.Info().
		Str("call_id", callID).
		Float64("duration_seconds", snapshot.DurationSeconds).
		Str("sentiment", string(snapshot.Sentiment)).
		Msg("call ended")

	return snapshot, nil
}

func (s *service) TransferCall(ctx context.Context, callID, reason, agentID string) (*Session, error) {
	sess, endTurn, err := s.registry.BeginTurn(ctx, callID)
	if err != nil {
		return nil, err
	}
	defer endTurn()

	if err := sess.Transfer(reason, agentID, time.Now()); err != nil {
		return nil, err
	}

	snapshot := sess.Clone()
	s.persistSnapshot(ctx, snapshot)

	if err := s.registry.Remove(ctx, callID); err != nil {
		s.log.Error().Err(err).Str("call_id", callID).Msg("failed to remove transferred call")
	}

	metrics.RecordCallEnded(string(StatusTransferred))
	s.log.Info().
		Str("call_id", callID).
		Str("reason", reason).
		Str("agent_id", agentID).
		Msg("call transferred to human agent")

	return snapshot, nil
}

func (s *service) UpdateSentiment(ctx context.Context, callID string, sentiment intent.Sentiment) error {
	sess, endTurn, err := s.registry.BeginTurn(ctx, callID)
	if err != nil {
		return err
	}
	defer endTurn()

	sess.SetSentiment(sentiment)
	return nil
}

// persistSnapshot hands a finished call to the archive. Archive
// failures are logged, never propagated; the call is already over.
func (s *service) persistSnapshot(ctx context.Context, snapshot *Session) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveCall(ctx, snapshot); err != nil {
		s.log.Error().Err(err).Str("call_id", snapshot.CallID).Msg("failed to archive call")
	}
}
