package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	gatewayx "github.com/swarmdesk/support-swarm/agent/gateway"
)

const (
	minDocumentLength = 20
	previewLength     = 140
	maxSearchLimit    = 10
)

type knowledgeDocIn struct {
	DocID   string `json:"doc_id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

type knowledgeDocOut struct {
	DocID          string `json:"doc_id"`
	Source         string `json:"source"`
	ContentPreview string `json:"content_preview"`
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type gatewayRequest struct {
	Operation string         `json:"operation"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

type gatewayResponse struct {
	Operation string         `json:"operation"`
	Data      map[string]any `json:"data"`
}

type apiError struct {
	Detail  string `json:"detail"`
	TraceID string `json:"trace_id,omitempty"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"project":      "Support Teammate Swarm",
		"status":       "running",
		"run_swarm":    "/run_swarm",
		"tool_gateway": "/gateway",
		"mock_tools":   mockToolsPrefix + "/tools",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"gateway_enabled": s.gateway.Enabled(),
	})
}

func (s *Server) handleRunSwarm(c *gin.Context) {
	var ticket contractx.TicketRequest
	if err := c.ShouldBindJSON(&ticket); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Detail: "invalid request body: " + err.Error()})
		return
	}

	result, err := s.orchestrator.Run(c.Request.Context(), ticket)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			c.JSON(http.StatusUnprocessableEntity, apiError{Detail: err.Error()})
			return
		}
		s.replyInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAddDocument(c *gin.Context) {
	var doc knowledgeDocIn
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Detail: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(doc.DocID) == "" {
		c.JSON(http.StatusUnprocessableEntity, apiError{Detail: "doc_id is required"})
		return
	}
	if len(strings.TrimSpace(doc.Content)) < minDocumentLength {
		c.JSON(http.StatusUnprocessableEntity, apiError{Detail: fmt.Sprintf("content must be at least %d characters", minDocumentLength)})
		return
	}
	if doc.Source == "" {
		doc.Source = "internal"
	}

	if err := s.store.Add(c.Request.Context(), doc.DocID, doc.Content, doc.Source); err != nil {
		c.JSON(http.StatusInternalServerError, apiError{Detail: "failed to add document: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, knowledgeDocOut{
		DocID:          doc.DocID,
		Source:         doc.Source,
		ContentPreview: preview(doc.Content),
	})
}

func (s *Server) handleSearchDocuments(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Detail: "invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusUnprocessableEntity, apiError{Detail: "query is required"})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 3
	}
	if req.Limit > maxSearchLimit {
		req.Limit = maxSearchLimit
	}

	notes, err := s.store.Search(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apiError{Detail: "search failed: " + err.Error()})
		return
	}

	out := make([]knowledgeDocOut, 0, len(notes))
	for i, note := range notes {
		out = append(out, knowledgeDocOut{
			DocID:          fmt.Sprintf("result-%d", i+1),
			Source:         note.Source,
			ContentPreview: preview(note.Content),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGateway(c *gin.Context) {
	var req gatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Detail: "invalid request body: " + err.Error()})
		return
	}

	if !s.gateway.Enabled() {
		c.JSON(http.StatusBadRequest, apiError{Detail: "tool server url is not configured"})
		return
	}

	ctx := c.Request.Context()
	switch req.Operation {
	case "list_tools":
		tools, err := s.gateway.ListTools(ctx)
		if err != nil {
			s.replyGatewayError(c, err)
			return
		}
		c.JSON(http.StatusOK, gatewayResponse{Operation: req.Operation, Data: map[string]any{"tools": tools}})
	case "describe_tool":
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusUnprocessableEntity, apiError{Detail: "tool name is required for describe_tool"})
			return
		}
		details, err := s.gateway.DescribeTool(ctx, req.Name)
		if err != nil {
			s.replyGatewayError(c, err)
			return
		}
		c.JSON(http.StatusOK, gatewayResponse{Operation: req.Operation, Data: details})
	case "invoke_tool":
		if strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusUnprocessableEntity, apiError{Detail: "tool name is required for invoke_tool"})
			return
		}
		output, err := s.gateway.InvokeTool(ctx, req.Name, req.Arguments)
		if err != nil {
			s.replyGatewayError(c, err)
			return
		}
		c.JSON(http.StatusOK, gatewayResponse{Operation: req.Operation, Data: output})
	default:
		c.JSON(http.StatusBadRequest, apiError{Detail: "unsupported operation: " + req.Operation})
	}
}

func (s *Server) replyGatewayError(c *gin.Context, err error) {
	traceID := uuid.NewString()

	var gwErr *gatewayx.GatewayError
	if errors.As(err, &gwErr) {
		log.Error().Err(err).Str("trace_id", traceID).Str("path", gwErr.Path).Msg("tool gateway request failed")
		c.JSON(http.StatusBadGateway, apiError{Detail: err.Error(), TraceID: traceID})
		return
	}
	if errors.Is(err, contractx.ErrGatewayDisabled) {
		c.JSON(http.StatusBadRequest, apiError{Detail: err.Error()})
		return
	}
	s.replyInternalError(c, err)
}

func (s *Server) replyInternalError(c *gin.Context, err error) {
	traceID := uuid.NewString()
	log.Error().Err(err).Str("trace_id", traceID).Msg("unhandled server error")
	c.JSON(http.StatusInternalServerError, apiError{Detail: "internal server error", TraceID: traceID})
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength])
}
