package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const mockToolsPrefix = "/mock-tools"

type mockToolRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

var mockTools = []map[string]any{
	{
		"name":        "web_search",
		"description": "Search web snippets for support context.",
		"input_schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":     map[string]any{"type": "string"},
				"ticket_id": map[string]any{"type": "string"},
			},
			"required": []string{"query"},
		},
	},
	{
		"name":        "update_ticket_db",
		"description": "Update ticket status and assignee in support database.",
		"input_schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"ticket_id": map[string]any{"type": "string"},
				"status":    map[string]any{"type": "string"},
				"route_to":  map[string]any{"type": "string"},
			},
			"required": []string{"ticket_id", "status"},
		},
	},
	{
		"name":        "send_email",
		"description": "Send escalation notification email.",
		"input_schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"to":      map[string]any{"type": "string"},
				"subject": map[string]any{"type": "string"},
				"body":    map[string]any{"type": "string"},
			},
			"required": []string{"to", "subject", "body"},
		},
	},
}

// MountMockTools registers a demo tool server under /mock-tools implementing
// every wire convention the gateway client probes, including the SSE one.
// Point TOOLSERVER_URL at http://<host>:<port>/mock-tools to exercise the full
// pipeline without a real tool server.
func MountMockTools(engine *gin.Engine) {
	group := engine.Group(mockToolsPrefix)

	listTools := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tools": mockTools})
	}
	group.GET("/tools", listTools)
	group.POST("/tools/list", listTools)
	group.POST("/mcp/list_tools", listTools)
	group.POST("/sse/list_tools", func(c *gin.Context) {
		writeSSE(c, gin.H{"tools": mockTools})
	})

	describeTool := func(c *gin.Context) (gin.H, bool) {
		req, ok := bindMockToolRequest(c)
		if !ok {
			return nil, false
		}
		tool, ok := findMockTool(req.Name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"detail": "unknown tool: " + req.Name})
			return nil, false
		}
		return gin.H{"tool": tool}, true
	}
	group.POST("/tools/describe", func(c *gin.Context) {
		if payload, ok := describeTool(c); ok {
			c.JSON(http.StatusOK, payload)
		}
	})
	group.POST("/mcp/describe_tool", func(c *gin.Context) {
		if payload, ok := describeTool(c); ok {
			c.JSON(http.StatusOK, payload)
		}
	})
	group.POST("/sse/describe_tool", func(c *gin.Context) {
		if payload, ok := describeTool(c); ok {
			writeSSE(c, payload)
		}
	})

	invokeTool := func(c *gin.Context) (gin.H, bool) {
		req, ok := bindMockToolRequest(c)
		if !ok {
			return nil, false
		}
		if _, found := findMockTool(req.Name); !found {
			c.JSON(http.StatusNotFound, gin.H{"detail": "unknown tool: " + req.Name})
			return nil, false
		}
		return gin.H{"tool_name": req.Name, "output": mockToolOutput(req.Name, req.Arguments)}, true
	}
	group.POST("/tools/invoke", func(c *gin.Context) {
		if payload, ok := invokeTool(c); ok {
			c.JSON(http.StatusOK, payload)
		}
	})
	group.POST("/mcp/invoke_tool", func(c *gin.Context) {
		if payload, ok := invokeTool(c); ok {
			c.JSON(http.StatusOK, payload)
		}
	})
	group.POST("/sse/invoke_tool", func(c *gin.Context) {
		if payload, ok := invokeTool(c); ok {
			writeSSE(c, payload)
		}
	})
}

func bindMockToolRequest(c *gin.Context) (mockToolRequest, bool) {
	var req mockToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return mockToolRequest{}, false
	}
	if req.Arguments == nil {
		req.Arguments = map[string]any{}
	}
	return req, true
}

func findMockTool(name string) (map[string]any, bool) {
	for _, tool := range mockTools {
		if tool["name"] == name {
			return tool, true
		}
	}
	return nil, false
}

func mockToolOutput(name string, arguments map[string]any) map[string]any {
	switch name {
	case "web_search":
		query, _ := arguments["query"].(string)
		return map[string]any{
			"results": []map[string]any{
				{"title": "Status page", "snippet": fmt.Sprintf("No major outage linked to '%s'.", query)},
				{"title": "Runbook note", "snippet": "Escalate security terms to security_specialist."},
			},
		}
	case "update_ticket_db":
		status, ok := arguments["status"].(string)
		if !ok || status == "" {
			status = "escalated"
		}
		routeTo, ok := arguments["route_to"].(string)
		if !ok || routeTo == "" {
			routeTo = "human_support_lead"
		}
		return map[string]any{
			"updated":   true,
			"ticket_id": arguments["ticket_id"],
			"status":    status,
			"route_to":  routeTo,
		}
	case "send_email":
		return map[string]any{
			"sent":       true,
			"to":         arguments["to"],
			"subject":    arguments["subject"],
			"message_id": "mock-msg-001",
		}
	}
	return map[string]any{}
}

func writeSSE(c *gin.Context, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "marshal sse payload: " + err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.String(http.StatusOK, "data: %s\n\ndata: [DONE]\n\n", data)
}
