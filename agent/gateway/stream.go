package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	streamDataPrefix = "data:"
	streamDoneMarker = "[DONE]"
)

// requestStream reads a server-sent event stream and returns the first data
// payload that parses as a JSON object, short-circuiting the rest of the
// stream. The [DONE] sentinel ends the stream with no result, which counts
// as a failed attempt.
func (c *Client) requestStream(ctx context.Context, a attempt) (map[string]any, error) {
	resp, err := c.do(ctx, a, "text/event-stream")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("http status=%d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseSizeBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, streamDataPrefix) {
			continue
		}
		raw := strings.TrimSpace(strings.TrimPrefix(line, streamDataPrefix))
		if raw == streamDoneMarker {
			break
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			// Non-JSON payload lines are skipped, not fatal.
			continue
		}
		return doc, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event stream: %w", err)
	}
	return nil, errors.New("no json event payload in stream")
}
