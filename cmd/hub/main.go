package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"alumnihub/internal"
	"alumnihub/runtime/workers"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Hub terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the lifecycle, and centralizes
// error reporting, so every defer executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := internal.NewLogger(config.LogLevel)

	// 2. Service graph (store, index, moderation, sessions, features)
	app, err := NewApp(config, charReplacement, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("initialization failed: %w", err)
	}
	defer app.Close(logger)

	// The search index is derived state; rebuild it from the store so a
	// wiped index directory never loses postings.
	if err := app.Jobs.ReindexAll(); err != nil {
		return exitRuntime, fmt.Errorf("index rebuild failed: %w", err)
	}

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Debug server
	if config.EnableDebugServer {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint)
		logger.Info("Debug store inspector available", "url", url)
		internal.StartDebugServer(app.Store.DB(), config.DebugPort, endpoint, nil, func() map[string]any {
			stats := app.Monitor.GetLatest()
			return map[string]any{
				"writes":  stats.StoreWrites,
				"appends": stats.StoreAppends,
				"deletes": stats.StoreDeletes,
				"ops/s":   fmt.Sprintf("%.1f", stats.OpsPerSecond),
				"mem_mb":  stats.AllocMemMb,
			}
		})
	}

	// 5. Supervised background workers
	go app.Monitor.Listen(ctx)

	sup := workers.NewSupervisor(logger)
	sup.Add(
		workers.NewTelemetryWorker(logger, app.Store.Events(), app.Monitor),
		workers.NewReporterWorker(app.Monitor, config.MetricInterval),
	)

	logger.Info("Hub started")
	sup.Run(ctx)

	logger.Info("Shutting down gracefully...")
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}
