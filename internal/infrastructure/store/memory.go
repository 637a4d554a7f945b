// Package store provides the in-memory implementation of the call
// session registry.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"voxassist/call-api/internal/domain/call"
)

var (
	// ErrCallNotFound is returned when a call session is not found.
	ErrCallNotFound = errors.New("call not found")
	// ErrCallAlreadyExists is returned when a call ID is reused.
	ErrCallAlreadyExists = errors.New("call already exists")
)

// entry wraps a live session with its turn lock. The lock serializes
// turns within one call; independent calls contend only on the map
// lock.
type entry struct {
	mu      sync.Mutex
	sess    *call.Session
	removed bool
}

// MemoryRegistry is a mutex-based in-memory session registry. The map
// lock guards membership; each entry carries its own lock for turn
// serialization.
type MemoryRegistry struct {
	mu    sync.RWMutex
	calls map[string]*entry
	log   zerolog.Logger
}

// NewMemoryRegistry creates an empty in-memory call registry.
func NewMemoryRegistry(log zerolog.Logger) *MemoryRegistry {
	return &MemoryRegistry{
		calls: make(map[string]*entry),
		log:   log.With().Str("component", "call-registry").Logger(),
	}
}

// Create stores a new active session.
func (r *MemoryRegistry) Create(ctx context.Context, sess *call.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calls[sess.CallID]; exists {
		return ErrCallAlreadyExists
	}
	r.calls[sess.CallID] = &entry{sess: sess}
	return nil
}

// Get returns a point-in-time copy of a live session.
func (r *MemoryRegistry) Get(ctx context.Context, callID string) (*call.Session, error) {
	r.mu.RLock()
	e, ok := r.calls[callID]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrCallNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrCallNotFound
	}
	return e.sess.Clone(), nil
}

// List returns copies of all live sessions.
func (r *MemoryRegistry) List(ctx context.Context) ([]*call.Session, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.calls))
	for _, e := range r.calls {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	result := make([]*call.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if !e.removed {
			result = append(result, e.sess.Clone())
		}
		e.mu.Unlock()
	}
	return result, nil
}

// BeginTurn acquires the call's turn lock and hands out the live
// session. A session removed while the caller waited on the lock, or
// one that already reached a terminal state, is rejected.
func (r *MemoryRegistry) BeginTurn(ctx context.Context, callID string) (*call.Session, call.EndTurn, error) {
	r.mu.RLock()
	e, ok := r.calls[callID]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, ErrCallNotFound
	}

	e.mu.Lock()
	if e.removed {
		e.mu.Unlock()
		return nil, nil, ErrCallNotFound
	}
	if !e.sess.Active() {
		e.mu.Unlock()
		return nil, nil, call.ErrCallNotActive
	}

	var once sync.Once
	release := func() {
		once.Do(e.mu.Unlock)
	}
	return e.sess, release, nil
}

// Remove deletes a session. The caller holds the entry's turn lock, so
// the removed flag is the commit point no later turn can miss.
func (r *MemoryRegistry) Remove(ctx context.Context, callID string) error {
	r.mu.Lock()
	e, ok := r.calls[callID]
	if !ok {
		r.mu.Unlock()
		return ErrCallNotFound
	}
	delete(r.calls, callID)
	r.mu.Unlock()

	e.removed = true
	return nil
}
