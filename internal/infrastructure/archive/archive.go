// Package archive persists finished calls, transcripts, FAQs, agents,
// and transfer records. Postgres is used when a DSN is configured;
// otherwise everything is held in process memory.
package archive

import (
	"github.com/rs/zerolog"

	"voxassist/call-api/internal/config"
	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
)

// Store is the full persistence surface backing the service.
type Store interface {
	call.Archive
	faq.Store
	agent.Store
}

// New selects a backend from the configuration.
func New(cfg *config.Config, log zerolog.Logger) (Store, error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("no database configured, using in-memory archive")
		return NewMemoryStore(), nil
	}
	return NewPostgresStore(cfg.DatabaseURL, log)
}
