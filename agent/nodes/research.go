package swarmnode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	toolx "github.com/swarmdesk/support-swarm/agent/tool"
)

const (
	toolNoteLimit  = 240
	synthesisLimit = 500

	defaultSynthesis = "Use internal runbooks and policies to resolve the issue."
)

// Research retrieves knowledge notes for the ticket and, when fewer than two
// notes came back, tries one remote web lookup through the gateway. Store and
// gateway failures degrade to fewer notes, never to a stage error.
func Research(
	ctx context.Context,
	in *GraphState,
	store contractx.KnowledgeStore,
	gateway contractx.ToolGateway,
	augmenter contractx.Augmenter,
	instructions string,
	limit int,
) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	notes := []string{}
	if store != nil {
		snippets, err := store.Search(ctx, in.Ticket.Message, limit)
		if err != nil {
			log.Warn().Err(err).Str("trace_id", in.TraceID).Msg("knowledge search failed")
		}
		for _, snippet := range snippets {
			notes = append(notes, fmt.Sprintf("[%s] %s", snippet.Source, snippet.Content))
		}
	}

	webLookupNeeded := len(notes) < 2
	toolActions := []string{}

	if gateway != nil && gateway.Enabled() && webLookupNeeded {
		if webTool := toolx.Resolve(ctx, gateway, "web", "search", "knowledge"); webTool != "" {
			result := toolx.SafeInvoke(ctx, gateway, webTool, map[string]any{
				"query":     in.Ticket.Message,
				"ticket_id": in.Ticket.TicketID,
			})
			if result != nil {
				toolActions = append(toolActions, "Invoked tool: "+webTool)
				notes = append(notes, fmt.Sprintf("[tool:%s] %s", webTool, truncateRunes(fmt.Sprintf("%v", result), toolNoteLimit)))
			}
		}
	}

	synthesis := defaultSynthesis
	refined := ""
	if augmenter != nil {
		prompt := fmt.Sprintf(
			"Summarize the top support guidance in 2 sentences. Ticket: %s\nKnowledge: %s",
			in.Ticket.Message,
			strings.Join(notes, " | "),
		)
		out, err := augmenter.Augment(ctx, "Research Agent", instructions, prompt)
		if err != nil {
			log.Debug().Err(err).Str("trace_id", in.TraceID).Msg("research augmentation skipped")
		} else {
			refined = out
		}
	}
	switch {
	case refined != "":
		synthesis = truncateRunes(refined, synthesisLimit)
	case len(notes) > 0:
		texts := make([]string, 0, 2)
		for _, note := range notes[:min(2, len(notes))] {
			texts = append(texts, noteText(note))
		}
		synthesis = strings.Join(texts, " ")
	}

	in.Research = contractx.ResearchResult{
		RetrievedNotes:  notes,
		WebLookupNeeded: webLookupNeeded,
		Synthesis:       synthesis,
		ToolActions:     toolActions,
	}
	return in, nil
}
