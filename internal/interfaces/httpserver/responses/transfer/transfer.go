// Package transfer contains HTTP response DTOs for human handoffs.
package transfer

import (
	"fmt"

	"voxassist/call-api/internal/domain/agent"
)

// TransferResponse confirms a call handoff to a human agent.
type TransferResponse struct {
	Status               string `json:"status"`
	CallID               string `json:"call_id"`
	TransferID           string `json:"transfer_id"`
	AgentID              string `json:"agent_id,omitempty"`
	AgentName            string `json:"agent_name,omitempty"`
	Priority             string `json:"priority"`
	EstimatedWaitSeconds int    `json:"estimated_wait_time"`
	Message              string `json:"message"`
}

// NewTransferResponse builds the handoff confirmation.
func NewTransferResponse(t *agent.Transfer) *TransferResponse {
	reason := t.Reason
	if reason == "" {
		reason = "User request"
	}
	return &TransferResponse{
		Status:               "success",
		CallID:               t.CallID,
		TransferID:           t.TransferID,
		AgentID:              t.AgentID,
		AgentName:            t.AgentName,
		Priority:             t.Priority,
		EstimatedWaitSeconds: t.EstimatedWaitSeconds,
		Message:              fmt.Sprintf("Call %s transferred to human agent. Reason: %s", t.CallID, reason),
	}
}

// AgentsResponse lists available human agents.
type AgentsResponse struct {
	Agents []agent.Agent `json:"agents"`
	Count  int           `json:"count"`
}

// NewAgentsResponse builds the agent listing.
func NewAgentsResponse(agents []agent.Agent) *AgentsResponse {
	if agents == nil {
		agents = []agent.Agent{}
	}
	return &AgentsResponse{Agents: agents, Count: len(agents)}
}
