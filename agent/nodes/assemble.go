package swarmnode

import (
	"fmt"
	"time"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

// OrchestrationMode labels how stage results were produced.
const OrchestrationMode = "eino compose graph with deterministic fallback"

func Assemble(in *GraphState, nowFn func() time.Time) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	return GraphOutput{
		Result: contractx.SwarmRunResult{
			TicketID:      in.Ticket.TicketID,
			Triage:        in.Triage,
			Research:      in.Research,
			Response:      in.Response,
			Escalation:    in.Escalation,
			GeneratedAt:   nowFn().UTC(),
			Orchestration: OrchestrationMode,
			TraceID:       in.TraceID,
		},
	}, nil
}
