package swarm

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	"github.com/swarmdesk/support-swarm/agent/knowledge"
)

type stubGateway struct {
	enabled     bool
	tools       []contractx.ToolDescriptor
	invocations []string
}

func (g *stubGateway) Enabled() bool {
	return g.enabled
}

func (g *stubGateway) ListTools(ctx context.Context) ([]contractx.ToolDescriptor, error) {
	return g.tools, nil
}

func (g *stubGateway) DescribeTool(ctx context.Context, name string) (map[string]any, error) {
	return map[string]any{"name": name}, nil
}

func (g *stubGateway) InvokeTool(ctx context.Context, name string, arguments map[string]any) (map[string]any, error) {
	g.invocations = append(g.invocations, name)
	return map[string]any{"result": "ok"}, nil
}

func seededStore() *knowledge.MemoryStore {
	store := knowledge.NewMemoryStore()
	store.SeedDefaults()
	return store
}

func newTestOrchestrator(t *testing.T, gateway contractx.ToolGateway) *Orchestrator {
	t.Helper()

	o, err := New(seededStore(), gateway, nil, Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestRunSecurityIncidentEndToEnd(t *testing.T) {
	t.Parallel()

	gw := &stubGateway{
		enabled: true,
		tools: []contractx.ToolDescriptor{
			{Name: "update_ticket_db", Description: "update ticket database records"},
			{Name: "send_email", Description: "notify support leads"},
		},
	}
	o := newTestOrchestrator(t, gw)

	result, err := o.Run(context.Background(), contractx.TicketRequest{
		TicketID:     "TCK-9001",
		CustomerName: "Mira",
		Company:      "Globex",
		Message:      "We suspect a security breach on our account",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.TicketID != "TCK-9001" {
		t.Fatalf("ticket id = %q", result.TicketID)
	}
	if result.Triage.Urgency != contractx.UrgencyCritical || result.Triage.SLATargetMinutes != 15 {
		t.Fatalf("triage = %+v", result.Triage)
	}
	if !result.Escalation.Escalate || result.Escalation.RouteTo != contractx.RouteSecuritySpecialist {
		t.Fatalf("escalation = %+v", result.Escalation)
	}
	if result.Response.Subject != "[CRITICAL] Update on ticket TCK-9001" {
		t.Fatalf("subject = %q", result.Response.Subject)
	}
	if len(result.Research.RetrievedNotes) == 0 {
		t.Fatal("expected seeded knowledge notes")
	}
	if result.TraceID == "" {
		t.Fatal("trace id is empty")
	}
	if result.GeneratedAt.IsZero() {
		t.Fatal("generated at is zero")
	}
	if len(gw.invocations) != 2 {
		t.Fatalf("gateway invocations = %v", gw.invocations)
	}
}

func TestRunBillingQuestionStaysAutonomous(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &stubGateway{})

	result, err := o.Run(context.Background(), contractx.TicketRequest{
		TicketID:     "TCK-9002",
		CustomerName: "Jon",
		Company:      "Initech",
		Message:      "How do I download my invoice history for last quarter?",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Triage.Urgency != contractx.UrgencyMedium || result.Triage.SLATargetMinutes != 240 {
		t.Fatalf("triage = %+v", result.Triage)
	}
	if result.Escalation.Escalate || result.Escalation.RouteTo != contractx.RouteNone {
		t.Fatalf("escalation = %+v", result.Escalation)
	}
	if !strings.Contains(result.Response.Message, "Hi Jon,") {
		t.Fatalf("message = %q", result.Response.Message)
	}
}

func TestRunRejectsInvalidTicket(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &stubGateway{})

	_, err := o.Run(context.Background(), contractx.TicketRequest{
		TicketID:     "TCK-9003",
		CustomerName: "Ada",
		Message:      "short",
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("Run() error = %v, want validation error", err)
	}
}

func TestRunTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, &stubGateway{})
	ticket := contractx.TicketRequest{
		TicketID:     "TCK-9004",
		CustomerName: "Kai",
		Company:      "Umbrella",
		Message:      "Requesting help with exports please",
	}

	first, err := o.Run(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := o.Run(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if first.TraceID == second.TraceID {
		t.Fatalf("trace ids collide: %q", first.TraceID)
	}
	if first.Orchestration != second.Orchestration || first.Orchestration == "" {
		t.Fatalf("orchestration label = %q vs %q", first.Orchestration, second.Orchestration)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &stubGateway{}, nil, Config{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(seededStore(), nil, nil, Config{}); err == nil {
		t.Fatal("expected error for nil gateway")
	}
}
