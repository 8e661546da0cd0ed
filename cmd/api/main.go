// Package main - entry point for the language learning backend API.
//
// The service keeps the daily-activity ledger and streak bookkeeping for
// every user: vocabulary practice, story reading and explicit activity
// reports all flow through one ledger so the counters and the daily goal
// stay consistent no matter which feature produced them.
//
// The architecture follows Clean Architecture and DDD:
// - Domain: pure business logic without external dependencies
// - Application: use case orchestration (Commands/Queries)
// - Infrastructure: repository implementations, session storage
// - Interface: HTTP REST endpoints
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	// Application layer
	"github.com/lingua-hub/lingua-backend/internal/application/command"
	"github.com/lingua-hub/lingua-backend/internal/application/query"

	// Infrastructure layer
	"github.com/lingua-hub/lingua-backend/internal/infrastructure/persistence/postgres"
	"github.com/lingua-hub/lingua-backend/internal/infrastructure/persistence/redis"

	// Interface layer
	httpserver "github.com/lingua-hub/lingua-backend/internal/interface/http"

	// Packages
	"github.com/lingua-hub/lingua-backend/config"
	"github.com/lingua-hub/lingua-backend/pkg/clock"
	"github.com/lingua-hub/lingua-backend/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting lingua backend",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("timezone", cfg.App.Timezone),
	)

	// All streak day boundaries are computed in the configured timezone.
	clk := clock.NewSystem(cfg.App.Location)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. DATABASE (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			log.Warn("failed to get migration status", logger.Err(err))
		} else {
			appliedCount := 0
			for _, m := range status {
				if m.IsApplied {
					appliedCount++
				}
			}
			log.Info("migrations completed",
				logger.Int("applied", appliedCount),
				logger.Int("total", len(status)),
			)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. SESSION STORE (Redis)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to Redis...")
	tokenStore, err := redis.NewTokenStore(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer func() {
		log.Info("closing Redis connection...")
		_ = tokenStore.Close()
	}()
	log.Info("Redis connection established")

	ids := redis.UUIDGenerator{}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	userRepo := postgres.NewUserRepository(dbConn)
	activityRepo := postgres.NewActivityRepository(dbConn)
	wordRepo := postgres.NewWordRepository(dbConn)
	storyRepo := postgres.NewStoryRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	ledger := command.NewLedger(activityRepo, clk, log)

	deps := httpserver.Dependencies{
		// Commands
		RegisterUserHandler:    command.NewRegisterUserHandler(userRepo, tokenStore, ids, clk, log),
		LoginHandler:           command.NewLoginHandler(userRepo, tokenStore, clk, log),
		LogoutHandler:          command.NewLogoutHandler(tokenStore),
		UpdateStreakHandler:    command.NewUpdateStreakHandler(userRepo, clk, log),
		UpdateDailyGoalHandler: command.NewUpdateDailyGoalHandler(userRepo, clk),
		RecordActivityHandler:  command.NewRecordActivityHandler(userRepo, ledger),
		AddWordHandler:         command.NewAddWordHandler(userRepo, wordRepo, ids, ledger),
		PracticeWordHandler:    command.NewPracticeWordHandler(userRepo, wordRepo, ledger),
		MarkWordLearnedHandler: command.NewMarkWordLearnedHandler(userRepo, wordRepo, ledger),
		CreateStoryHandler:     command.NewCreateStoryHandler(userRepo, storyRepo, ids, ledger),
		SaveStoryHandler:       command.NewSaveStoryHandler(storyRepo, ledger),
		ReadStoryHandler:       command.NewReadStoryHandler(userRepo, storyRepo, ledger),

		// Queries
		GetUserHandler:            query.NewGetUserHandler(userRepo, clk),
		GetUserStatsHandler:       query.NewGetUserStatsHandler(userRepo, wordRepo, activityRepo, clk),
		GetDailyActivityHandler:   query.NewGetDailyActivityHandler(userRepo, activityRepo, clk),
		GetActivityHistoryHandler: query.NewGetActivityHistoryHandler(userRepo, activityRepo, clk),
		ListWordsHandler:          query.NewListWordsHandler(userRepo, wordRepo),
		GetWordHandler:            query.NewGetWordHandler(wordRepo),
		GetStoryHandler:           query.NewGetStoryHandler(storyRepo),
		ListStoriesHandler:        query.NewListStoriesHandler(storyRepo),
		ListLibraryHandler:        query.NewListLibraryHandler(userRepo, storyRepo),

		TokenStore:    tokenStore,
		Words:         wordRepo,
		Logger:        log,
		HealthChecker: &healthChecker{db: dbConn, sessions: tokenStore},
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.HTTP.Host
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	serverCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	serverCfg.EnableCORS = cfg.HTTP.EnableCORS
	serverCfg.AllowedOrigins = cfg.HTTP.AllowedOrigins
	serverCfg.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	serverCfg.TokenTTL = cfg.Auth.TokenTTL

	server := httpserver.NewServer(serverCfg, deps)

	log.Info("starting HTTP server", logger.String("addr", serverCfg.Address()))
	serverErr := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("shutdown complete", logger.Duration("uptime", server.Uptime()))
	return nil
}

// setupLogger builds the process logger from the loaded config.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts).With(
		logger.String("app", cfg.App.Name),
	)
}

// healthChecker reports the health of the backing stores for /health.
type healthChecker struct {
	db       *postgres.Connection
	sessions *redis.TokenStore
}

func (h *healthChecker) Check(ctx context.Context) httpserver.HealthResult {
	if err := h.db.Ping(ctx); err != nil {
		return httpserver.HealthResult{Healthy: false, Message: "database unreachable"}
	}
	if err := h.sessions.Ping(ctx); err != nil {
		return httpserver.HealthResult{Healthy: false, Message: "session store unreachable"}
	}
	return httpserver.HealthResult{Healthy: true}
}
