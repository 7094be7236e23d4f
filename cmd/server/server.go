package main

import (
	"net/http"

	"influence/internal/config"
	"influence/internal/handlers"
	"influence/internal/store"
)

// SetupServer creates the table store and the router serving it
func SetupServer(cfg *config.ServerConfig) (http.Handler, *store.MemoryStore) {
	// Initialize in-memory store
	tableStore := store.NewMemoryStore(cfg)

	// Initialize handlers
	h := handlers.New(tableStore, cfg)

	// Request logs are dropped when only warnings and errors are wanted
	quiet := cfg.Server.LogLevel == "warn" || cfg.Server.LogLevel == "error"
	r := handlers.SetupRouter(h, cfg, &handlers.RouterOptions{
		DisableRequestLogger: quiet,
	})

	return r, tableStore
}

// newHTTPServer applies the configured address and timeouts
func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // 0 keeps SSE streams open
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
}
