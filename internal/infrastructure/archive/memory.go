package archive

import (
	"context"
	"sort"
	"strings"
	"sync"

	"voxassist/call-api/internal/domain/agent"
	"voxassist/call-api/internal/domain/call"
	"voxassist/call-api/internal/domain/faq"
	"voxassist/call-api/internal/infrastructure/store"
)

// MemoryStore is the archive backend used when no database is
// configured. Finished calls survive only for the process lifetime.
type MemoryStore struct {
	mu        sync.RWMutex
	calls     map[string]*call.Session
	messages  map[string][]call.Message
	faqs      map[string]*faq.FAQ
	agents    map[string]*agent.Agent
	transfers map[string]*agent.Transfer
}

// NewMemoryStore creates a memory archive seeded with the default
// agents and FAQs.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		calls:     make(map[string]*call.Session),
		messages:  make(map[string][]call.Message),
		faqs:      make(map[string]*faq.FAQ),
		agents:    make(map[string]*agent.Agent),
		transfers: make(map[string]*agent.Transfer),
	}
	for _, rec := range defaultAgents() {
		a := agentFrom(&rec)
		s.agents[a.AgentID] = &a
	}
	for _, rec := range defaultFAQs() {
		f := faqFrom(&rec)
		s.faqs[f.ID] = &f
	}
	return s
}

func (s *MemoryStore) SaveCall(_ context.Context, snapshot *call.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[snapshot.CallID] = snapshot.Clone()
	return nil
}

func (s *MemoryStore) SaveMessage(_ context.Context, callID string, msg call.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[callID] = append(s.messages[callID], msg)
	return nil
}

func (s *MemoryStore) GetCall(_ context.Context, callID string) (*call.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.calls[callID]
	if !ok {
		return nil, store.ErrCallNotFound
	}
	return sess.Clone(), nil
}

func (s *MemoryStore) SearchFAQs(_ context.Context, query string, limit int) ([]faq.FAQ, error) {
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	var results []faq.FAQ
	for _, f := range s.faqs {
		if strings.Contains(strings.ToLower(f.Question), q) ||
			strings.Contains(strings.ToLower(f.Answer), q) {
			f.Frequency++
			results = append(results, *f)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Frequency > results[j].Frequency })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) ListFAQs(_ context.Context, category string, limit int) ([]faq.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var results []faq.FAQ
	for _, f := range s.faqs {
		if category != "" && f.Category != category {
			continue
		}
		results = append(results, *f)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Frequency > results[j].Frequency })
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *MemoryStore) SaveFAQ(_ context.Context, entry *faq.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *entry
	s.faqs[entry.ID] = &clone
	return nil
}

func (s *MemoryStore) ListAgents(_ context.Context, status string) ([]agent.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var agents []agent.Agent
	for _, a := range s.agents {
		if status != "" && a.Status != status {
			continue
		}
		agents = append(agents, *a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].AgentID < agents[j].AgentID })
	return agents, nil
}

func (s *MemoryStore) ClaimAgent(_ context.Context) (*agent.Agent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *agent.Agent
	for _, a := range s.agents {
		if a.Status != agent.StatusAvailable || a.CurrentCalls >= a.MaxConcurrentCalls {
			continue
		}
		if best == nil || a.CurrentCalls < best.CurrentCalls ||
			(a.CurrentCalls == best.CurrentCalls && a.AgentID < best.AgentID) {
			best = a
		}
	}
	if best == nil {
		return nil, agent.ErrNoAgentAvailable
	}
	best.CurrentCalls++
	if best.CurrentCalls >= best.MaxConcurrentCalls {
		best.Status = agent.StatusBusy
	}
	claimed := *best
	return &claimed, nil
}

func (s *MemoryStore) ReleaseAgent(_ context.Context, agentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agents[agentID]
	if !ok {
		return agent.ErrAgentNotFound
	}
	if a.CurrentCalls > 0 {
		a.CurrentCalls--
	}
	if a.Status == agent.StatusBusy && a.CurrentCalls < a.MaxConcurrentCalls {
		a.Status = agent.StatusAvailable
	}
	return nil
}

func (s *MemoryStore) SaveTransfer(_ context.Context, transfer *agent.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *transfer
	s.transfers[transfer.TransferID] = &clone
	return nil
}
