// Package server is the HTTP boundary: it exposes the swarm pipeline, the
// knowledge base, and a tool-gateway passthrough over gin, plus an optional
// mock tool server for demos.
package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swarmdesk/support-swarm/agent/agents/swarm"
	contractx "github.com/swarmdesk/support-swarm/agent/contract"
)

type Config struct {
	Port           string `envconfig:"PORT" split_words:"true" default:"8080"`
	GinMode        string `envconfig:"GIN_MODE" split_words:"true" default:"release"`
	MountMockTools bool   `envconfig:"MOUNT_MOCK_TOOLS" split_words:"true" default:"false"`
}

type Server struct {
	engine       *gin.Engine
	orchestrator *swarm.Orchestrator
	store        contractx.KnowledgeStore
	gateway      contractx.ToolGateway
}

func New(cfg Config, orchestrator *swarm.Orchestrator, store contractx.KnowledgeStore, gateway contractx.ToolGateway) (*Server, error) {
	if orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if store == nil {
		return nil, fmt.Errorf("knowledge store is required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("tool gateway is required")
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	s := &Server{
		engine:       gin.New(),
		orchestrator: orchestrator,
		store:        store,
		gateway:      gateway,
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()

	if cfg.MountMockTools {
		MountMockTools(s.engine)
	}

	return s, nil
}

// Engine exposes the underlying gin engine, mainly for tests and for mounting
// extra routes before the server starts.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/health", s.handleHealth)
	s.engine.POST("/swarm/run", s.handleRunSwarm)
	s.engine.POST("/run_swarm", s.handleRunSwarm)
	s.engine.POST("/kb/add", s.handleAddDocument)
	s.engine.POST("/kb/search", s.handleSearchDocuments)
	s.engine.POST("/gateway", s.handleGateway)
}

// HTTPServer wraps the engine in an http.Server bound to the configured port.
func (s *Server) HTTPServer(cfg Config) *http.Server {
	return &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.engine,
	}
}
