// Package agent handles human agents and the handoff of calls to them.
package agent

import (
	"context"
	"errors"
	"time"
)

// Agent statuses.
const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)

// ErrNoAgentAvailable is returned when no agent can accept a handoff.
var ErrNoAgentAvailable = errors.New("no agent available")

// ErrAgentNotFound is returned when a release names an unknown agent.
var ErrAgentNotFound = errors.New("agent not found")

// Agent is a human operator that calls can be transferred to.
type Agent struct {
	AgentID            string `json:"agent_id"`
	Name               string `json:"name"`
	Status             string `json:"status"`
	Specialization     string `json:"specialization,omitempty"`
	CurrentCalls       int    `json:"current_calls"`
	MaxConcurrentCalls int    `json:"max_concurrent_calls"`
}

// Transfer records one handoff of a call to a human agent.
type Transfer struct {
	TransferID           string    `json:"transfer_id"`
	CallID               string    `json:"call_id"`
	Reason               string    `json:"reason"`
	Priority             string    `json:"priority"`
	AgentID              string    `json:"agent_id,omitempty"`
	AgentName            string    `json:"agent_name,omitempty"`
	EstimatedWaitSeconds int       `json:"estimated_wait_seconds"`
	CreatedAt            time.Time `json:"created_at"`
}

// Store is the persistence contract for agents and transfer records.
type Store interface {
	ListAgents(ctx context.Context, status string) ([]Agent, error)
	ClaimAgent(ctx context.Context) (*Agent, error)

	// ReleaseAgent undoes a claim that could not be completed,
	// returning the agent's slot to the pool.
	ReleaseAgent(ctx context.Context, agentID string) error

	SaveTransfer(ctx context.Context, transfer *Transfer) error
}
