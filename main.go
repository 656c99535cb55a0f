package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	swarmx "github.com/swarmdesk/support-swarm/agent/agents/swarm"
	"github.com/swarmdesk/support-swarm/agent/augment"
	contractx "github.com/swarmdesk/support-swarm/agent/contract"
	gatewayx "github.com/swarmdesk/support-swarm/agent/gateway"
	knowledgex "github.com/swarmdesk/support-swarm/agent/knowledge"
	configx "github.com/swarmdesk/support-swarm/pkg/config"
	_ "github.com/swarmdesk/support-swarm/pkg/logger/autoload"
	openrouterx "github.com/swarmdesk/support-swarm/pkg/openrouter"
	serverx "github.com/swarmdesk/support-swarm/server"
)

type AppConfig struct {
	KnowledgeBackend string `envconfig:"KNOWLEDGE_BACKEND" split_words:"true" default:"memory"`
	NoteLimit        int    `envconfig:"NOTE_LIMIT" split_words:"true" default:"3"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("APP")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup := buildKnowledgeStore(ctx, appCfg.KnowledgeBackend)
	defer cleanup()

	gatewayCfg := configx.MustNew[gatewayx.Config]("TOOLSERVER")
	gatewayClient := gatewayx.NewClient(*gatewayCfg)
	log.Info().Bool("gateway_enabled", gatewayClient.Enabled()).Msg("tool gateway configured")

	orchestrator, err := swarmx.New(store, gatewayClient, buildAugmenter(ctx), swarmx.Config{NoteLimit: appCfg.NoteLimit})
	if err != nil {
		log.Fatal().Err(err).Msg("initialize swarm orchestrator")
	}

	serverCfg := configx.MustNew[serverx.Config]("SERVER")
	srv, err := serverx.New(*serverCfg, orchestrator, store, gatewayClient)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize http server")
	}

	runWithGracefulShutdown(ctx, srv.HTTPServer(*serverCfg))
}

func buildKnowledgeStore(ctx context.Context, backend string) (contractx.KnowledgeStore, func()) {
	switch backend {
	case "postgres":
		cfg := configx.MustNew[knowledgex.PostgresConfig]("KNOWLEDGE_POSTGRES")
		store, err := knowledgex.NewPostgresStore(*cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("initialize postgres knowledge store")
		}
		if err := store.Init(ctx); err != nil {
			log.Fatal().Err(err).Msg("migrate postgres knowledge store")
		}
		log.Info().Msg("knowledge store: postgres")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("close postgres knowledge store")
			}
		}
	case "redis":
		cfg := configx.MustNew[knowledgex.RedisConfig]("KNOWLEDGE_REDIS")
		store, err := knowledgex.NewRedisStore(ctx, *cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("initialize redis knowledge store")
		}
		log.Info().Msg("knowledge store: redis")
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warn().Err(err).Msg("close redis knowledge store")
			}
		}
	default:
		store := knowledgex.NewMemoryStore()
		store.SeedDefaults()
		log.Info().Msg("knowledge store: in-memory with seed documents")
		return store, func() {}
	}
}

// buildAugmenter returns nil when no model is configured; the orchestrator
// substitutes its noop augmenter and the pipeline runs fully deterministic.
func buildAugmenter(ctx context.Context) contractx.Augmenter {
	if os.Getenv("OPENROUTER_API_KEY") == "" {
		log.Info().Msg("augmentation disabled, no api key configured")
		return nil
	}

	cfg := configx.MustNew[openrouterx.Config]("OPENROUTER")

	if client := openrouterx.NewClient(*cfg); client != nil {
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if _, err := client.Models.List(probeCtx); err != nil {
			log.Warn().Err(err).Msg("augmentation backend unreachable, continuing anyway")
		}
	}

	augmenter, err := augment.NewModelAugmenter(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("augmentation unavailable, falling back to deterministic pipeline")
		return nil
	}

	log.Info().Str("model", cfg.Model).Msg("augmentation enabled")
	return augmenter
}

func runWithGracefulShutdown(ctx context.Context, srv *http.Server) {
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
