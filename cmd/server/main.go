package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"influence/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to a server.yaml config file")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	// Load server configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if *printConfig {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			log.Fatal("Failed to print configuration: ", err)
		}
		return
	}

	if cfg.Server.LogLevel == "debug" {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	}
	log.Printf("Loaded configuration: max tables = %d, response windows = %s/%s",
		cfg.Server.MaxTables, cfg.Rules.BlockWindow, cfg.Rules.ChallengeWindow)

	handler, tableStore := SetupServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Idle tables are closed in the background until shutdown
	go tableStore.RunJanitor(ctx, cfg.Server.SweepInterval, cfg.Server.TableIdleTimeout)

	server := newHTTPServer(cfg, handler)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: ", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Open streams end when their tables close
	for _, code := range tableStore.List() {
		tableStore.DeleteTable(code)
	}

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server gracefully stopped")
}
