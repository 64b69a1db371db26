package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rosca-payflow-bridge/config"
	httpHandler "rosca-payflow-bridge/internal/adapter/http/handler"
	"rosca-payflow-bridge/internal/adapter/payflow"
	pgStorage "rosca-payflow-bridge/internal/adapter/storage/postgres"
	redisStorage "rosca-payflow-bridge/internal/adapter/storage/redis"
	"rosca-payflow-bridge/internal/core/ports"
	"rosca-payflow-bridge/internal/service"
	"rosca-payflow-bridge/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting ROSCA PayFlow Bridge")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	groupRepo := pgStorage.NewGroupRepo(pool)
	memberRepo := pgStorage.NewMemberRepo(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize the PayFlow wallet service client
	httpClient := &http.Client{Timeout: cfg.PayFlow.Timeout}
	pfClient := payflow.NewClient(cfg.PayFlow.BaseURL, cfg.PayFlow.APIKey, httpClient, log)
	if cfg.PayFlow.TokenURL != "" {
		tokens := payflow.NewTokenCache(tokenFetcher(cfg.PayFlow, httpClient))
		pfClient = pfClient.WithTokenSource(tokens)
		log.Info().Str("token_url", cfg.PayFlow.TokenURL).Msg("PayFlow token source enabled")
	}

	// Initialize business services
	roscaSvc := service.NewRoscaService(pfClient, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)
	payflowHealth := payflow.NewHealthCheck(pfClient)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RoscaSvc:         roscaSvc,
		GroupRepo:        groupRepo,
		MemberRepo:       memberRepo,
		IdempotencyCache: idempotencyCache,
		RateLimitStore:   rateLimitStore,
		HealthCheckers:   []ports.HealthChecker{pgHealth, redisHealth, payflowHealth},
		Logger:           log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// tokenFetcher exchanges the static API key for a short-lived bearer token
// at the configured token endpoint.
func tokenFetcher(cfg config.PayFlowConfig, httpClient *http.Client) payflow.TokenFetcher {
	return func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL, nil)
		if err != nil {
			return "", fmt.Errorf("building token request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

		resp, err := httpClient.Do(req)
		if err != nil {
			return "", fmt.Errorf("fetching token: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
		}

		var body struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("decoding token response: %w", err)
		}
		return body.Token, nil
	}
}
