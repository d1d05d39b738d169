package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/crednest/server/internal/assistant"
	"github.com/crednest/server/internal/assistant/backend"
	"github.com/crednest/server/internal/assistant/model"
	"github.com/crednest/server/internal/assistant/tools"
	"github.com/crednest/server/internal/core"
	"github.com/crednest/server/internal/repo"
	"github.com/crednest/server/internal/transport"
	logx "github.com/crednest/server/pkg/logger"
	pkgpostgres "github.com/crednest/server/pkg/postgres"
	pkgredis "github.com/crednest/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// History store selection: "postgres" (default) or "redis".
	HistoryBackend string `envconfig:"HISTORY_BACKEND" default:"postgres"`
	// TTL applied to Redis conversation keys; zero means no expiry.
	HistoryTTL string `envconfig:"HISTORY_TTL" default:"0"`

	// Infrastructure
	Redis    pkgredis.Config
	Postgres pkgpostgres.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Assistant configs
	Chat         model.ChatModelConfig
	Conversation model.ConversationConfig
	Typing       model.TypingConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	store, cleanup, err := buildHistoryStore(ctx, &cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise history store")
	}
	defer cleanup()

	registry := tools.NewRegistry()
	infos, err := registry.Infos(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to collect tool definitions")
	}

	chatModel, err := backend.New(ctx, backend.Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Chat:    cfg.Chat,
	}, infos)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise chat model")
	}

	manager, err := assistant.NewManager(chatModel, store, registry, cfg.Conversation)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise conversation manager")
	}

	handler := transport.NewChatHandler(manager, store, cfg.Conversation, cfg.Typing)
	srv := transport.NewServer(cfg.HTTPAddr, handler)

	go func() {
		logx.Info().Str("addr", cfg.HTTPAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logx.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("shutdown error")
	}
}

func buildHistoryStore(ctx context.Context, cfg *AppConfig) (model.ConversationRepository, func(), error) {
	switch cfg.HistoryBackend {
	case "redis":
		ttl, err := time.ParseDuration(cfg.HistoryTTL)
		if err != nil {
			return nil, nil, err
		}
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, nil, err
		}
		logx.Info().Msg("using redis history store")
		return repo.NewRedisConversationRepository(rdb, ttl), func() { rdb.Close() }, nil

	default:
		pool, err := cfg.Postgres.New(ctx)
		if err != nil {
			return nil, nil, err
		}
		store := repo.NewPostgresConversationRepository(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logx.Info().Msg("using postgres history store")
		return store, pool.Close, nil
	}
}
