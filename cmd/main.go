package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"

	"gitlab.com/skillsnap.net/internal/adapter"
	"gitlab.com/skillsnap.net/internal/adapter/crypto"
	"gitlab.com/skillsnap.net/internal/adapter/database"
	"gitlab.com/skillsnap.net/internal/adapter/database/certificaterepository"
	"gitlab.com/skillsnap.net/internal/adapter/gemini"
	"gitlab.com/skillsnap.net/internal/adapter/piston"
	"gitlab.com/skillsnap.net/internal/adapter/redis/certificatecache"
	"gitlab.com/skillsnap.net/internal/adapter/redis/passledger"
	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/core/services/audit"
	"gitlab.com/skillsnap.net/internal/core/services/certificate"
	"gitlab.com/skillsnap.net/internal/core/services/execution"
	"gitlab.com/skillsnap.net/internal/core/services/pipeline"
	"gitlab.com/skillsnap.net/internal/core/services/validation"
	"gitlab.com/skillsnap.net/internal/domain"
	logger2 "gitlab.com/skillsnap.net/internal/global/logger"
	http2 "gitlab.com/skillsnap.net/internal/http"
)

const shutdownTimeout = 30 * time.Second

func main() {
	InitReader()
	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sysCfg := config.NewSystemConfig()
	logger2.Configure(sysCfg.LogConfig)
	logger := logger2.Logger
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting SkillSnap service", "debug", sysCfg.DebugMode)
	logger2.Debug("Configuration loaded",
		"port", sysCfg.HTTPConfig.Port,
		"db_driver", sysCfg.DatabaseConfig.Driver,
		"redis_enabled", sysCfg.RedisConfig.Enabled,
		"executor_language", sysCfg.ExecutorConfig.Language,
	)
	ctxBg := context.Background()

	db, err := setupDatabase(ctxBg, sysCfg.DatabaseConfig, logger)
	if err != nil {
		log.Fatalf("invalid database configuration: %v", err)
	}
	defer db.Close()

	redisClient := setupRedis(ctxBg, sysCfg.RedisConfig, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// SECONDARY PORTS
	httpClient := adapter.NewHTTPClient()
	executor := piston.NewClient(httpClient, sysCfg.ExecutorConfig)
	reviewer := setupReviewer(ctxBg, httpClient, sysCfg.AuditorConfig, logger)
	certRepo := certificaterepository.New(db, logger, sysCfg.DatabaseConfig.Schema, sysCfg.DatabaseConfig.PingTimeout)

	var (
		certCache secondary.CertificateCache
		ledger    secondary.PassLedger = passledger.NewMemoryLedger()
	)
	if redisClient != nil {
		certCache = certificatecache.NewCertificateCache(redisClient, sysCfg.RedisConfig.CacheTTL, logger)
		ledger = passledger.NewRedisLedger(redisClient)
	}

	// primary ports
	passTokens, err := crypto.NewPassTokenService(sysCfg.PassTokenConfig)
	if err != nil {
		log.Fatalf("failed to set up pass tokens: %v", err)
	}
	if sysCfg.PassTokenConfig.Secret == "" {
		logger.Warn("PASS_TOKEN_SECRET not set; pass tokens are valid for this process only")
	}

	// services
	task := domain.SumTask.WithRuntime(sysCfg.ExecutorConfig.Language, sysCfg.ExecutorConfig.Version)
	executionSvc := execution.NewExecutionService(executor, task, sysCfg.ExecutorConfig.Timeout, logger)
	auditSvc := audit.NewAuditService(reviewer, sysCfg.AuditorConfig.Timeout, logger)
	registry := certificate.NewRegistry(certRepo, certCache, nil, sysCfg.RegistryConfig, logger)
	pipelineSvc := pipeline.NewPipelineService(
		executionSvc,
		validation.NewValidator(task),
		auditSvc,
		registry,
		sysCfg.RegistryConfig,
		logger,
	)
	pipelineSvc.SetPassTokens(passTokens, ledger, sysCfg.PassTokenConfig)

	// server
	serviceProvider := http2.NewServiceProvider(pipelineSvc)
	httpServer := http2.NewServer(sysCfg.HTTPConfig.Port, sysCfg.HTTPConfig.ServiceName, *serviceProvider, logger)
	if err := httpServer.Init(); err != nil {
		log.Fatalf("failed to init http server: %v", err)
	}
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(ctxBg, shutdownTimeout)
	defer cancel()
	if err := httpServer.Stop(ctx); err != nil {
		logger2.Error("Server forced to shutdown", "error", err)
	}

	logger2.Info("successfully shutdown server")
}

// setupDatabase opens the pool and tries to reach the server once. An unreachable
// server is not fatal: the service starts offline and the schema is created on first use.
func setupDatabase(ctx context.Context, cfg *config.DatabaseConfig, logger primary.Logger) (*sqlx.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Connect(ctx, db, cfg.PingTimeout); err != nil {
		logger.Warn("Database unreachable, starting in offline mode", "driver", cfg.Driver, "error", err)
		return db, nil
	}

	if err := database.EnsureSchema(ctx, db, tableName(cfg.Schema)); err != nil {
		logger.Warn("Failed to ensure schema at startup", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Driver)
	return db, nil
}

func tableName(schema string) string {
	name := domain.GetCertificateTable().TableName()
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// setupRedis returns nil when Redis is disabled or unreachable at startup
func setupRedis(ctx context.Context, cfg *config.RedisConfig, logger primary.Logger) *redis.Client {
	if !cfg.Enabled {
		logger.Info("Redis disabled, verify cache off and pass ledger in memory")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable, running without cache", "addr", cfg.Url, "error", err)
		_ = client.Close()
		return nil
	}

	logger.Info("Redis connected", "addr", cfg.Url)
	return client
}

// setupReviewer returns a nil reviewer when no credentials are available, which disables audits
func setupReviewer(ctx context.Context, base *http.Client, cfg *config.AuditorConfig, logger primary.Logger) secondary.CodeReviewer {
	client, err := gemini.NewDefaultClient(ctx, base, cfg)
	if err != nil {
		logger.Warn("AI audit disabled", "error", err)
		return nil
	}
	return client
}

func InitReader() {
	if len(os.Args) < 2 {
		logger2.Info("Env not supplied in argument, using process environment")
		return
	}

	environment := os.Args[1]
	err := godotenv.Load(environment + ".env")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger2.Warn("Env file not found, using process environment", "file", environment+".env")
			return
		}
		log.Fatalf("Error loading %s.env file: %v", environment, err)
	}
}
