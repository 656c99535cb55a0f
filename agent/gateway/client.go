// Package gateway talks to a remote tool server whose exact wire convention
// is unknown at configuration time. Each operation probes an ordered list of
// known conventions and adopts the first one that answers with a well-formed
// JSON document.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swarmdesk/support-swarm/agent/contract"
)

const (
	defaultAttemptTimeout = 12 * time.Second
	maxResponseSizeBytes  = 2 << 20
)

// GatewayError is the single failure kind for every transport, HTTP-status,
// parse, and probe-exhaustion problem. Path is the last attempted server path.
type GatewayError struct {
	Path string
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("tool server request failed for %s: %v", e.Path, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

type Config struct {
	URL            string        `envconfig:"URL" split_words:"true"`
	AttemptTimeout time.Duration `envconfig:"ATTEMPT_TIMEOUT" split_words:"true" default:"12s"`
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Client implements contract.ToolGateway. A Client built without a base URL
// is disabled: every operation fails fast with contract.ErrGatewayDisabled
// instead of touching the network. The Client holds no per-call state and is
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config, opts ...Option) *Client {
	timeout := cfg.AttemptTimeout
	if timeout <= 0 {
		timeout = defaultAttemptTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// ListTools discovers the server's tools. Probe exhaustion is not an error
// here: an unreachable or incompatible server yields an empty list, which
// pipeline stages treat as "no tools available". Only a disabled client
// returns an error.
func (c *Client) ListTools(ctx context.Context) ([]contract.ToolDescriptor, error) {
	if !c.Enabled() {
		return nil, contract.ErrGatewayDisabled
	}

	for _, a := range listToolsAttempts() {
		doc, err := c.attempt(ctx, a)
		if err != nil {
			log.Debug().Str("path", a.path).Err(err).Msg("tool listing attempt failed")
			continue
		}
		tools := parseToolDescriptors(doc)
		if len(tools) > 0 {
			return tools, nil
		}
	}
	return []contract.ToolDescriptor{}, nil
}

// DescribeTool fetches the server's description document for a tool.
func (c *Client) DescribeTool(ctx context.Context, name string) (map[string]any, error) {
	doc, err := c.probe(ctx, describeToolAttempts(name))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// InvokeTool invokes a tool and returns the server's response verbatim.
func (c *Client) InvokeTool(ctx context.Context, name string, arguments map[string]any) (map[string]any, error) {
	doc, err := c.probe(ctx, invokeToolAttempts(name, arguments))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// probe tries each attempt in order and short-circuits on the first
// well-formed response. The sequence is strictly sequential so a remote tool
// is never invoked twice for one call, and the worst case is bounded by
// len(attempts) * attempt timeout. The winning convention is not cached
// across calls; calls are rare relative to their timeout budget, so each one
// re-probes from the top.
func (c *Client) probe(ctx context.Context, attempts []attempt) (map[string]any, error) {
	if !c.Enabled() {
		return nil, contract.ErrGatewayDisabled
	}

	var last *GatewayError
	for _, a := range attempts {
		doc, err := c.attempt(ctx, a)
		if err != nil {
			last = &GatewayError{Path: a.path, Err: err}
			log.Debug().Str("path", a.path).Err(err).Msg("tool server attempt failed")
			continue
		}
		return doc, nil
	}
	if last == nil {
		last = &GatewayError{Path: "", Err: errors.New("no conventions to probe")}
	}
	return nil, last
}

func (c *Client) attempt(ctx context.Context, a attempt) (map[string]any, error) {
	if a.stream {
		return c.requestStream(ctx, a)
	}
	return c.requestJSON(ctx, a)
}

func (c *Client) requestJSON(ctx context.Context, a attempt) (map[string]any, error) {
	resp, err := c.do(ctx, a, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http status=%d body=%s", resp.StatusCode, truncateBody(raw))
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if doc, ok := value.(map[string]any); ok {
		return doc, nil
	}
	// Non-object JSON is still a response; wrap it so callers always see a
	// document.
	return map[string]any{"data": value}, nil
}

func (c *Client) do(ctx context.Context, a attempt, accept string) (*http.Response, error) {
	url := c.baseURL + a.path

	var body io.Reader
	if a.body != nil {
		payload, err := json.Marshal(a.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, a.method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if a.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func truncateBody(raw []byte) string {
	const max = 256
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}

func parseToolDescriptors(doc map[string]any) []contract.ToolDescriptor {
	rawTools, ok := doc["tools"].([]any)
	if !ok {
		return nil
	}

	tools := make([]contract.ToolDescriptor, 0, len(rawTools))
	for _, item := range rawTools {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		if name == "" {
			continue
		}
		description, _ := entry["description"].(string)
		schema, ok := entry["input_schema"].(map[string]any)
		if !ok {
			schema, _ = entry["schema"].(map[string]any)
		}
		tools = append(tools, contract.ToolDescriptor{
			Name:        name,
			Description: description,
			InputSchema: schema,
		})
	}
	return tools
}
