// Package swarm runs the four-stage support pipeline over a validated ticket
// and assembles the run result. Stage soft-failures (missing knowledge,
// unreachable tool server, absent augmentation) never fail a run.
package swarm

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/google/uuid"

	"github.com/swarmdesk/support-swarm/agent/augment"
	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	"github.com/swarmdesk/support-swarm/agent/knowledge"
	swarmnode "github.com/swarmdesk/support-swarm/agent/nodes"
	promptx "github.com/swarmdesk/support-swarm/agent/prompt"
)

type Config struct {
	// NoteLimit caps how many knowledge notes research retrieves per run.
	NoteLimit int
}

type Orchestrator struct {
	store     contractx.KnowledgeStore
	gateway   contractx.ToolGateway
	augmenter contractx.Augmenter
	prompts   promptx.PromptSet
	noteLimit int

	graphRunner compose.Runnable[swarmnode.GraphInput, swarmnode.GraphOutput]

	now        func() time.Time
	newTraceID func() string
}

func New(
	store contractx.KnowledgeStore,
	gateway contractx.ToolGateway,
	augmenter contractx.Augmenter,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("knowledge store is required")
	}
	if gateway == nil {
		return nil, errors.New("tool gateway is required")
	}
	if augmenter == nil {
		augmenter = augment.Noop{}
	}

	noteLimit := cfg.NoteLimit
	if noteLimit <= 0 {
		noteLimit = knowledge.DefaultSearchLimit
	}

	o := &Orchestrator{
		store:      store,
		gateway:    gateway,
		augmenter:  augmenter,
		prompts:    promptx.LoadPromptSet(),
		noteLimit:  noteLimit,
		now:        time.Now,
		newTraceID: uuid.NewString,
	}

	graphRunner, err := o.compileRunGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Run executes the pipeline for one ticket. The only error paths are ticket
// validation and stage logic defects; degraded external collaborators still
// produce a complete result.
func (o *Orchestrator) Run(ctx context.Context, ticket contractx.TicketRequest) (contractx.SwarmRunResult, error) {
	out, err := o.graphRunner.Invoke(ctx, swarmnode.GraphInput{Ticket: ticket})
	if err != nil {
		return contractx.SwarmRunResult{}, err
	}
	return out.Result, nil
}
