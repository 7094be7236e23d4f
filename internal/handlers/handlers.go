package handlers

import (
	"influence/internal/config"
	"influence/internal/store"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store  *store.MemoryStore
	config *config.ServerConfig
}

// New creates a new handler
func New(store *store.MemoryStore, cfg *config.ServerConfig) *Handler {
	return &Handler{
		store:  store,
		config: cfg,
	}
}

// Store returns the handler's store (for testing)
func (h *Handler) Store() *store.MemoryStore {
	return h.store
}
