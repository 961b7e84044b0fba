package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	_ "github.com/redmonkez12/jobs-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/jobs-api/internal/auth"
	"github.com/redmonkez12/jobs-api/internal/config"
	"github.com/redmonkez12/jobs-api/internal/database"
	httpServer "github.com/redmonkez12/jobs-api/internal/http"
	"github.com/redmonkez12/jobs-api/internal/job"
	"github.com/redmonkez12/jobs-api/internal/logging"
	"github.com/redmonkez12/jobs-api/internal/ratelimit"
	"github.com/redmonkez12/jobs-api/internal/user"
)

// @title           Jobs API
// @version         1.0
// @description     Track job applications. Register or log in to receive a bearer token.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_format", cfg.Auth.TokenFormat,
	)

	ctx := context.Background()

	// Initialize database connection
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.CreateSchema(ctx, db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	jobRepo := job.NewRepository(db)

	// Initialize rate limiter
	var limiter *ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		store, closeStore, err := initRateLimitStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize rate limiter: %w", err)
		}
		defer closeStore()
		limiter = ratelimit.NewLimiter(store, cfg.RateLimit.Max, cfg.Server.TrustedProxies, logger)
	}

	// Initialize token and password services
	tokenService, err := initTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.PasswordHash, cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	// Initialize services and handlers
	authService, err := auth.NewService(userRepo, hasher, tokenService)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authHandler := auth.NewHandler(authService)
	authMiddleware := auth.NewMiddleware(tokenService)
	jobHandler := job.NewHandler(job.NewService(jobRepo))

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, jobHandler, limiter, logger)

	// Initialize HTTP server
	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

func initTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatPaseto:
		return auth.NewPasetoService(cfg.PasetoKey, cfg.TokenLifetime)
	default:
		return auth.NewJWTService(cfg.JWTSecret, cfg.TokenLifetime)
	}
}

// initRateLimitStore returns a Redis-backed store when Redis is enabled and an
// in-process one otherwise
func initRateLimitStore(ctx context.Context, cfg *config.Config) (ratelimit.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return ratelimit.NewMemoryStore(cfg.RateLimit.Window), func() {}, nil
	}

	client, err := initRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return ratelimit.NewRedisStore(client, cfg.RateLimit.Window), func() { _ = client.Close() }, nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
