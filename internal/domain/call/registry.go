package call

import "context"

// EndTurn releases a session's turn lock. It must be called exactly
// once for every successful BeginTurn.
type EndTurn func()

// Registry is the keyed store of live call sessions. It exclusively
// owns every live Session; other components borrow a session for the
// duration of one turn via BeginTurn.
type Registry interface {
	// Create stores a new active session. Call IDs are unique for the
	// lifetime of the registry.
	Create(ctx context.Context, sess *Session) error

	// Get returns a point-in-time copy of a live session.
	Get(ctx context.Context, callID string) (*Session, error)

	// List returns copies of all live sessions.
	List(ctx context.Context) ([]*Session, error)

	// BeginTurn acquires the per-call turn lock and returns the live
	// session. Turns on the same call serialize; different calls
	// proceed concurrently. The session must not be touched after the
	// returned EndTurn runs.
	BeginTurn(ctx context.Context, callID string) (*Session, EndTurn, error)

	// Remove deletes a session from the registry. Callers must hold
	// the session's turn lock so no in-flight turn observes the
	// removal mid-mutation.
	Remove(ctx context.Context, callID string) error
}
