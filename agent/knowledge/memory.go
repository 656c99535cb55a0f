// Package knowledge provides document stores behind the contract
// KnowledgeStore boundary. Ranking is deliberately simple token overlap;
// callers treat the store as a black box returning ordered snippets.
package knowledge

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

const DefaultSearchLimit = 3

type document struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// MemoryStore is an in-process store used for demos and tests. Safe for
// concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]document),
	}
}

// SeedDefaults loads the starter support playbook used by the demo
// deployment. It is a no-op when the store already holds documents.
func (s *MemoryStore) SeedDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.docs) > 0 {
		return
	}
	for id, doc := range seedDocuments() {
		s.docs[id] = doc
	}
}

func (s *MemoryStore) Add(ctx context.Context, id, content, source string) error {
	if strings.TrimSpace(id) == "" {
		return contract.ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = document{Content: content, Source: source}
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, query string, limit int) ([]contract.Note, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	type scored struct {
		id    string
		note  contract.Note
		score int
	}
	candidates := make([]scored, 0, len(s.docs))
	for id, doc := range s.docs {
		score := scoreContent(tokens, doc.Content)
		if score == 0 {
			continue
		}
		candidates = append(candidates, scored{
			id:    id,
			note:  contract.Note{Source: doc.Source, Content: doc.Content},
			score: score,
		})
	}
	s.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	notes := make([]contract.Note, 0, len(candidates))
	for _, c := range candidates {
		notes = append(notes, c.note)
	}
	return notes, nil
}

func seedDocuments() map[string]document {
	return map[string]document{
		"kb-1": {
			Content: "Password reset issues are usually solved by clearing SSO cache and retrying after 5 minutes.",
			Source:  "playbook",
		},
		"kb-2": {
			Content: "Billing disputes above 5000 USD must be routed to billing_specialist with invoice references.",
			Source:  "billing-policy",
		},
		"kb-3": {
			Content: "If a customer reports suspected account breach, escalate to security_specialist immediately.",
			Source:  "security-runbook",
		},
		"kb-4": {
			Content: "Enterprise support SLA: critical tickets target 15 minutes, high 60 minutes, medium 240, low 1440.",
			Source:  "sla-policy",
		},
	}
}
