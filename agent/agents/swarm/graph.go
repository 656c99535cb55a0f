package swarm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	swarmnode "github.com/swarmdesk/support-swarm/agent/nodes"
)

func (o *Orchestrator) compileRunGraph(
	ctx context.Context,
) (compose.Runnable[swarmnode.GraphInput, swarmnode.GraphOutput], error) {
	graph := compose.NewGraph[swarmnode.GraphInput, swarmnode.GraphOutput]()

	if err := graph.AddLambdaNode("validate_ticket",
		compose.InvokableLambda(func(ctx context.Context, in swarmnode.GraphInput) (*swarmnode.GraphState, error) {
			traceID := o.newTraceID()
			state, err := swarmnode.ValidateTicket(in, traceID, o.now)
			if err != nil {
				return nil, err
			}
			log.Info().
				Str("ticket_id", state.Ticket.TicketID).
				Str("trace_id", state.TraceID).
				Msg("starting swarm run")
			return state, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_ticket: %w", err)
	}

	if err := graph.AddLambdaNode("triage",
		compose.InvokableLambda(func(ctx context.Context, in *swarmnode.GraphState) (*swarmnode.GraphState, error) {
			return swarmnode.Triage(ctx, in, o.augmenter, o.prompts.Triage)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node triage: %w", err)
	}

	if err := graph.AddLambdaNode("research",
		compose.InvokableLambda(func(ctx context.Context, in *swarmnode.GraphState) (*swarmnode.GraphState, error) {
			return swarmnode.Research(ctx, in, o.store, o.gateway, o.augmenter, o.prompts.Research, o.noteLimit)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node research: %w", err)
	}

	if err := graph.AddLambdaNode("respond",
		compose.InvokableLambda(func(ctx context.Context, in *swarmnode.GraphState) (*swarmnode.GraphState, error) {
			return swarmnode.Respond(ctx, in, o.augmenter, o.prompts.Response)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node respond: %w", err)
	}

	if err := graph.AddLambdaNode("escalate",
		compose.InvokableLambda(func(ctx context.Context, in *swarmnode.GraphState) (*swarmnode.GraphState, error) {
			return swarmnode.Escalate(ctx, in, o.gateway)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node escalate: %w", err)
	}

	if err := graph.AddLambdaNode("assemble",
		compose.InvokableLambda(func(ctx context.Context, in *swarmnode.GraphState) (swarmnode.GraphOutput, error) {
			return swarmnode.Assemble(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node assemble: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_ticket"},
		{"validate_ticket", "triage"},
		{"triage", "research"},
		{"research", "respond"},
		{"respond", "escalate"},
		{"escalate", "assemble"},
		{"assemble", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("swarm.run_ticket"))
	if err != nil {
		return nil, fmt.Errorf("compile swarm graph: %w", err)
	}
	return runner, nil
}
