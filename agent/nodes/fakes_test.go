package swarmnode

import (
	"context"
	"errors"
	"time"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func stateForTicket(ticket contractx.TicketRequest) *GraphState {
	return &GraphState{
		Ticket:    ticket,
		TraceID:   "trace-1",
		StartedAt: fixedNow(),
	}
}

func baseTicket(message string) contractx.TicketRequest {
	return contractx.TicketRequest{
		TicketID:     "TCK-1001",
		CustomerName: "Dana",
		Company:      "Acme",
		Message:      message,
	}
}

type fakeAugmenter struct {
	output string
	err    error
	calls  []string
}

func (f *fakeAugmenter) Augment(ctx context.Context, role, instructions, prompt string) (string, error) {
	f.calls = append(f.calls, role)
	return f.output, f.err
}

type fakeStore struct {
	notes []contractx.Note
	err   error
}

func (f *fakeStore) Search(ctx context.Context, query string, limit int) ([]contractx.Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.notes) {
		return f.notes[:limit], nil
	}
	return f.notes, nil
}

func (f *fakeStore) Add(ctx context.Context, id, content, source string) error {
	return errors.New("not implemented")
}

type invocation struct {
	Name      string
	Arguments map[string]any
}

type fakeGateway struct {
	enabled     bool
	tools       []contractx.ToolDescriptor
	listErr     error
	describeErr error
	invokeErr   error
	invocations []invocation
}

func (f *fakeGateway) Enabled() bool {
	return f.enabled
}

func (f *fakeGateway) ListTools(ctx context.Context) ([]contractx.ToolDescriptor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tools, nil
}

func (f *fakeGateway) DescribeTool(ctx context.Context, name string) (map[string]any, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return map[string]any{"name": name}, nil
}

func (f *fakeGateway) InvokeTool(ctx context.Context, name string, arguments map[string]any) (map[string]any, error) {
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	f.invocations = append(f.invocations, invocation{Name: name, Arguments: arguments})
	return map[string]any{"result": "ok"}, nil
}
