package gateway

import "net/http"

// attempt is one candidate calling convention: method, path, payload, and
// whether the response arrives as an event stream. Each operation keeps its
// candidates in priority order; the probe loop consumes them top-down.
type attempt struct {
	method string
	path   string
	body   map[string]any
	stream bool
}

func listToolsAttempts() []attempt {
	return []attempt{
		{method: http.MethodGet, path: "/tools"},
		{method: http.MethodPost, path: "/tools/list", body: map[string]any{}},
		{method: http.MethodPost, path: "/mcp/list_tools", body: map[string]any{}},
		{method: http.MethodPost, path: "/sse/list_tools", body: map[string]any{}, stream: true},
	}
}

func describeToolAttempts(name string) []attempt {
	body := map[string]any{"name": name}
	return []attempt{
		{method: http.MethodPost, path: "/tools/describe", body: body},
		{method: http.MethodPost, path: "/mcp/describe_tool", body: body},
		{method: http.MethodPost, path: "/sse/describe_tool", body: body, stream: true},
	}
}

func invokeToolAttempts(name string, arguments map[string]any) []attempt {
	if arguments == nil {
		arguments = map[string]any{}
	}
	body := map[string]any{"name": name, "arguments": arguments}
	return []attempt{
		{method: http.MethodPost, path: "/tools/invoke", body: body},
		{method: http.MethodPost, path: "/mcp/invoke_tool", body: body},
		{method: http.MethodPost, path: "/sse/invoke_tool", body: body, stream: true},
	}
}
