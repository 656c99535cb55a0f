package swarmnode

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

const llmNoteLimit = 160

type triageTier struct {
	keywords   []string
	urgency    contractx.Urgency
	reason     string
	confidence float64
}

// Tiers are evaluated in order; the first keyword hit wins.
var triageTiers = []triageTier{
	{
		keywords:   []string{"breach", "outage", "down", "incident", "security"},
		urgency:    contractx.UrgencyCritical,
		reason:     "Possible service or security incident detected.",
		confidence: 0.9,
	},
	{
		keywords:   []string{"urgent", "can't login", "cannot login", "blocked"},
		urgency:    contractx.UrgencyHigh,
		reason:     "Customer blocked from key workflow.",
		confidence: 0.82,
	},
	{
		keywords:   []string{"billing", "invoice", "refund"},
		urgency:    contractx.UrgencyMedium,
		reason:     "Billing-related request with potential business impact.",
		confidence: 0.78,
	},
}

// Triage classifies the ticket against the keyword tiers and optionally
// appends a generative refinement note to the reason. The urgency, SLA
// target, and confidence are always keyword-derived.
func Triage(ctx context.Context, in *GraphState, augmenter contractx.Augmenter, instructions string) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	lowered := strings.ToLower(in.Ticket.Message + " " + in.Ticket.UrgencyHint)

	urgency := contractx.UrgencyLow
	reason := "General support request with no outage indicators."
	confidence := 0.7
	for _, tier := range triageTiers {
		if containsAny(lowered, tier.keywords...) {
			urgency = tier.urgency
			reason = tier.reason
			confidence = tier.confidence
			break
		}
	}

	if augmenter != nil {
		prompt := fmt.Sprintf(
			"Classify urgency as low/medium/high/critical and return one-sentence reason. Ticket: %s",
			in.Ticket.Message,
		)
		refined, err := augmenter.Augment(ctx, "Triage Agent", instructions, prompt)
		if err != nil {
			log.Debug().Err(err).Str("trace_id", in.TraceID).Msg("triage augmentation skipped")
		} else if refined != "" {
			reason = fmt.Sprintf("%s LLM note: %s", reason, truncateRunes(refined, llmNoteLimit))
		}
	}

	in.Triage = contractx.TriageResult{
		Urgency:          urgency,
		Reason:           reason,
		Confidence:       confidence,
		SLATargetMinutes: urgency.SLATargetMinutes(),
	}
	return in, nil
}
