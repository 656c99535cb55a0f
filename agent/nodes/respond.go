package swarmnode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

const draftLimit = 1000

var toneStyles = map[contractx.Tone]string{
	contractx.ToneFriendly: "warm, empathetic, and human",
	contractx.ToneFormal:   "professional and concise",
	contractx.ToneDirect:   "clear and action-oriented",
}

// Suggested actions are static regardless of ticket content.
var suggestedActions = []string{
	"Acknowledge the issue and provide immediate next step.",
	"Share ETA based on the assigned SLA.",
	"Offer a fallback workaround if available.",
	"Generate internal runbook update notes for the on-call wiki.",
}

// Respond drafts the customer-facing reply. The tone style only shapes the
// augmentation prompt; the fallback template ignores it.
func Respond(ctx context.Context, in *GraphState, augmenter contractx.Augmenter, instructions string) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	toneHint := toneStyles[in.Ticket.ToneOrDefault()]

	drafted := ""
	if augmenter != nil {
		prompt := fmt.Sprintf(
			"Draft a short support reply for %s at %s. Urgency=%s. Tone=%s. Research=%s",
			in.Ticket.CustomerName,
			in.Ticket.Company,
			in.Triage.Urgency,
			toneHint,
			in.Research.Synthesis,
		)
		out, err := augmenter.Augment(ctx, "Response Agent", instructions, prompt)
		if err != nil {
			log.Debug().Err(err).Str("trace_id", in.TraceID).Msg("response augmentation skipped")
		} else {
			drafted = out
		}
	}

	message := ""
	if drafted != "" {
		message = truncateRunes(drafted, draftLimit)
	} else {
		message = fmt.Sprintf(
			"Hi %s,\n\n"+
				"Thanks for raising this with us. We have triaged your request and started investigation using our internal runbooks. "+
				"Current priority is **%s** with a target response window of %d minutes.\n\n"+
				"What we know so far: %s\n\n"+
				"We'll share another update shortly with resolution steps.\n\n"+
				"Best,\nSupport Teammate Swarm",
			in.Ticket.CustomerName,
			in.Triage.Urgency,
			in.Triage.SLATargetMinutes,
			in.Research.Synthesis,
		)
	}

	in.Response = contractx.ResponseDraft{
		Subject:          fmt.Sprintf("[%s] Update on ticket %s", strings.ToUpper(string(in.Triage.Urgency)), in.Ticket.TicketID),
		Message:          message,
		SuggestedActions: append([]string(nil), suggestedActions...),
	}
	return in, nil
}
