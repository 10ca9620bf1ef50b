package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"collabcast/auth"
	"collabcast/authz"
	"collabcast/contract"
	"collabcast/httpapi"
	"collabcast/internal"
	"collabcast/observability"
	"collabcast/repositories"
	"collabcast/runtime"
	"collabcast/runtime/workers"
	"collabcast/services"
	"collabcast/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB): membership + profile lookups for the gate
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	//  Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Transports: local hub always, redis when configured
	registry := runtime.NewRegistry()
	transports := []contract.Transport{
		transport.NewHub(log, registry, config.SinkTimeout),
	}
	if config.RedisURL != nil {
		redisTransport, err := transport.NewRedisTransport(ctx, *config.RedisURL, log)
		if err != nil {
			return fmt.Errorf("redis transport setup failed: %w", err)
		}
		defer func() { _ = redisTransport.Close() }()
		transports = append(transports, redisTransport)
	}

	// 5. Supervision & Orchestration
	monitoring := observability.NewMonitoringManager(log)
	sup := workers.NewSupervisor(log)
	orchestrator := runtime.NewOrchestrator(
		log, sup, registry, transports, monitoring,
		config.NumberOfWorkers, config.BufferSize,
		config.StatsInterval, config.LatencyThreshold,
	)
	go func() {
		if err := orchestrator.Start(ctx); err != nil {
			log.Error("Orchestrator stopped with error", "error", err)
		}
	}()

	if config.DebugPort != nil {
		stats := internal.ComposeStats(monitoring.StatsProvider, orchestrator.DebugStats)
		internal.StartDebugServer(db, *config.DebugPort, "/inspect", nil, stats)
		log.Info("Debug inspector started", "port", *config.DebugPort)
	}

	// 6. Services & HTTP surface
	memberships := repositories.NewMembershipRepository(db, log)
	profiles := repositories.NewProfileRepository(db, log)
	gate := authz.NewGate(log, memberships, profiles)
	subscriptions := services.NewSubscriptionService(log, gate, monitoring)
	notifier := services.NewNotifierService(orchestrator)
	tokens := auth.NewTokenManager([]byte(config.JWTKey), config.AuthTokenDuration)

	handler := httpapi.NewHandler(log, subscriptions, notifier, registry, config.SinkBufferSize)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           httpapi.NewRouter(log, tokens, handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
