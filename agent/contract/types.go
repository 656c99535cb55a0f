package contract

import (
	"time"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// SLATargetMinutes maps each urgency to its fixed response window. The target
// is derived from the urgency and nowhere else, so the pair cannot drift
// apart.
func (u Urgency) SLATargetMinutes() int {
	switch u {
	case UrgencyCritical:
		return 15
	case UrgencyHigh:
		return 60
	case UrgencyMedium:
		return 240
	default:
		return 1440
	}
}

type Tone string

const (
	ToneFriendly Tone = "friendly"
	ToneFormal   Tone = "formal"
	ToneDirect   Tone = "direct"
)

type RouteTarget string

const (
	RouteNone               RouteTarget = "none"
	RouteHumanSupportLead   RouteTarget = "human_support_lead"
	RouteSecuritySpecialist RouteTarget = "security_specialist"
	RouteBillingSpecialist  RouteTarget = "billing_specialist"
)

// TicketRequest is the immutable input to a swarm run.
type TicketRequest struct {
	TicketID      string         `json:"ticket_id"`
	CustomerName  string         `json:"customer_name"`
	Company       string         `json:"company"`
	Message       string         `json:"message"`
	PreferredTone Tone           `json:"preferred_tone"`
	UrgencyHint   string         `json:"urgency_hint,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ToolDescriptor describes a remote callable on the tool server. Descriptors
// are produced only by the gateway client from server responses; pipeline
// stages never construct them.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
}

// Note is a ranked knowledge snippet with its provenance source.
type Note struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

type TriageResult struct {
	Urgency          Urgency `json:"urgency"`
	Reason           string  `json:"reason"`
	Confidence       float64 `json:"confidence"`
	SLATargetMinutes int     `json:"sla_target_minutes"`
}

type ResearchResult struct {
	RetrievedNotes  []string `json:"retrieved_notes"`
	WebLookupNeeded bool     `json:"web_lookup_needed"`
	Synthesis       string   `json:"synthesis"`
	ToolActions     []string `json:"tool_actions"`
}

type ResponseDraft struct {
	Subject          string   `json:"subject"`
	Message          string   `json:"message"`
	SuggestedActions []string `json:"suggested_actions"`
}

// EscalationDecision invariant: RouteTo is RouteNone exactly when Escalate is
// false.
type EscalationDecision struct {
	Escalate    bool        `json:"escalate"`
	RouteTo     RouteTarget `json:"route_to"`
	Reason      string      `json:"reason"`
	ToolActions []string    `json:"tool_actions"`
}

// SwarmRunResult is assembled once per run and never mutated afterwards. The
// core hands it to the caller and keeps no copy; run history persistence is
// an upstream concern.
type SwarmRunResult struct {
	TicketID      string             `json:"ticket_id"`
	Triage        TriageResult       `json:"triage"`
	Research      ResearchResult     `json:"research"`
	Response      ResponseDraft      `json:"response"`
	Escalation    EscalationDecision `json:"escalation"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Orchestration string             `json:"orchestration"`
	TraceID       string             `json:"trace_id"`
}
