// Package swarmnode holds the pipeline stage functions the swarm orchestrator
// graph composes. Each stage mutates one field of the shared GraphState and
// soft-degrades on every recoverable failure; once a ticket validates, no
// stage has a fatal path.
package swarmnode

import (
	"fmt"
	"time"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

type GraphInput struct {
	Ticket contractx.TicketRequest
}

type GraphOutput struct {
	Result contractx.SwarmRunResult
}

type GraphState struct {
	Ticket    contractx.TicketRequest
	TraceID   string
	StartedAt time.Time

	Triage     contractx.TriageResult
	Research   contractx.ResearchResult
	Response   contractx.ResponseDraft
	Escalation contractx.EscalationDecision
}

func ValidateTicket(in GraphInput, traceID string, nowFn func() time.Time) (*GraphState, error) {
	if err := in.Ticket.Validate(); err != nil {
		return nil, err
	}
	if traceID == "" {
		return nil, fmt.Errorf("%w: trace id is required", contractx.ErrValidation)
	}

	return &GraphState{
		Ticket:    in.Ticket,
		TraceID:   traceID,
		StartedAt: nowFn().UTC(),
	}, nil
}
