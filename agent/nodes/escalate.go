package swarmnode

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	toolx "github.com/swarmdesk/support-swarm/agent/tool"
)

const escalationInbox = "support-leads@company.com"

// Escalate walks an ordered decision tree over the ticket message and the
// triage urgency. Escalating branches best-effort operationalize the handoff
// through the gateway; tool failures leave the decision itself untouched.
func Escalate(ctx context.Context, in *GraphState, gateway contractx.ToolGateway) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	lowered := strings.ToLower(in.Ticket.Message)
	toolActions := []string{}

	operationalize := func(routeTo contractx.RouteTarget) {
		if gateway == nil || !gateway.Enabled() {
			return
		}
		if ticketTool := toolx.Resolve(ctx, gateway, "ticket", "database", "crm", "update"); ticketTool != "" {
			result := toolx.SafeInvoke(ctx, gateway, ticketTool, map[string]any{
				"ticket_id": in.Ticket.TicketID,
				"status":    "escalated",
				"route_to":  string(routeTo),
			})
			if result != nil {
				toolActions = append(toolActions, "Invoked tool: "+ticketTool)
			}
		}
		if emailTool := toolx.Resolve(ctx, gateway, "email", "notify", "slack", "teams"); emailTool != "" {
			result := toolx.SafeInvoke(ctx, gateway, emailTool, map[string]any{
				"to":      escalationInbox,
				"subject": fmt.Sprintf("Escalation required for %s", in.Ticket.TicketID),
				"body":    fmt.Sprintf("Ticket routed to %s. Message: %s", routeTo, in.Ticket.Message),
			})
			if result != nil {
				toolActions = append(toolActions, "Invoked tool: "+emailTool)
			}
		}
	}

	decide := func(routeTo contractx.RouteTarget, reason string) contractx.EscalationDecision {
		operationalize(routeTo)
		return contractx.EscalationDecision{
			Escalate:    true,
			RouteTo:     routeTo,
			Reason:      reason,
			ToolActions: toolActions,
		}
	}

	switch {
	case strings.Contains(lowered, "security") || strings.Contains(lowered, "breach"):
		in.Escalation = decide(contractx.RouteSecuritySpecialist, "Security indicators found in ticket.")
	case containsAny(lowered, "billing", "invoice", "refund") &&
		(in.Triage.Urgency == contractx.UrgencyHigh || in.Triage.Urgency == contractx.UrgencyCritical):
		in.Escalation = decide(contractx.RouteBillingSpecialist, "High-priority billing issue needs specialist ownership.")
	case in.Triage.Urgency == contractx.UrgencyCritical:
		in.Escalation = decide(contractx.RouteHumanSupportLead, "Critical severity requires immediate human oversight.")
	default:
		in.Escalation = contractx.EscalationDecision{
			Escalate:    false,
			RouteTo:     contractx.RouteNone,
			Reason:      "Autonomous resolution path is acceptable.",
			ToolActions: toolActions,
		}
	}
	return in, nil
}
