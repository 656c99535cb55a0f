package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

type fakeGateway struct {
	tools       []contract.ToolDescriptor
	listErr     error
	describeErr error
	invokeErr   error
	invoked     []string
	result      map[string]any
}

func (f *fakeGateway) Enabled() bool {
	return true
}

func (f *fakeGateway) ListTools(ctx context.Context) ([]contract.ToolDescriptor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tools, nil
}

func (f *fakeGateway) DescribeTool(ctx context.Context, name string) (map[string]any, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return map[string]any{"tool": map[string]any{"name": name}}, nil
}

func (f *fakeGateway) InvokeTool(ctx context.Context, name string, arguments map[string]any) (map[string]any, error) {
	f.invoked = append(f.invoked, name)
	if f.invokeErr != nil {
		return nil, f.invokeErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return map[string]any{"tool_name": name}, nil
}

func TestFindByKeywordsMatchesNameCaseInsensitively(t *testing.T) {
	t.Parallel()

	tools := []contract.ToolDescriptor{
		{Name: "update_ticket_db", Description: "Update ticket status."},
		{Name: "Web_Search", Description: "Search web snippets."},
	}

	if got := FindByKeywords(tools, "web", "search"); got != "Web_Search" {
		t.Fatalf("FindByKeywords() = %q, want Web_Search", got)
	}
}

func TestFindByKeywordsMatchesDescription(t *testing.T) {
	t.Parallel()

	tools := []contract.ToolDescriptor{
		{Name: "mailer", Description: "Send escalation NOTIFY email."},
	}

	if got := FindByKeywords(tools, "notify"); got != "mailer" {
		t.Fatalf("FindByKeywords() = %q, want mailer", got)
	}
}

func TestFindByKeywordsNoMatch(t *testing.T) {
	t.Parallel()

	tools := []contract.ToolDescriptor{
		{Name: "calculator", Description: "Evaluate arithmetic."},
	}

	if got := FindByKeywords(tools, "web", "search"); got != "" {
		t.Fatalf("FindByKeywords() = %q, want empty", got)
	}
}

func TestResolveSwallowsListingFailure(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{listErr: errors.New("server down")}
	if got := Resolve(context.Background(), gw, "web"); got != "" {
		t.Fatalf("Resolve() = %q, want empty on listing failure", got)
	}
}

func TestSafeInvokeDescribeFailureSkipsInvocation(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{describeErr: errors.New("describe failed")}
	if out := SafeInvoke(context.Background(), gw, "web_search", nil); out != nil {
		t.Fatalf("SafeInvoke() = %v, want nil", out)
	}
	if len(gw.invoked) != 0 {
		t.Fatalf("invoke was called %d times, want 0", len(gw.invoked))
	}
}

func TestSafeInvokeInvocationFailureReturnsNil(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{invokeErr: errors.New("invoke failed")}
	if out := SafeInvoke(context.Background(), gw, "web_search", nil); out != nil {
		t.Fatalf("SafeInvoke() = %v, want nil", out)
	}
}

func TestSafeInvokeSuccess(t *testing.T) {
	t.Parallel()

	gw := &fakeGateway{result: map[string]any{"output": "ok"}}
	out := SafeInvoke(context.Background(), gw, "web_search", map[string]any{"query": "sso"})
	if out == nil || out["output"] != "ok" {
		t.Fatalf("SafeInvoke() = %v, want result", out)
	}
	if len(gw.invoked) != 1 || gw.invoked[0] != "web_search" {
		t.Fatalf("invoked = %v, want single web_search call", gw.invoked)
	}
}
