package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	datastar "github.com/starfederation/datastar-go/datastar"

	"influence/internal/game"
)

// countdownInterval paces remainingMs patches while a response window is open
const countdownInterval = 250 * time.Millisecond

// tableSignals is the signal set patched into the client on every change
type tableSignals struct {
	Version uint64    `json:"version"`
	View    game.View `json:"view"`
}

type countdownSignals struct {
	RemainingMs int64 `json:"remainingMs"`
}

// StreamTable pushes the table view to the ?viewer= seat whenever it changes
func (h *Handler) StreamTable(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	viewer := r.URL.Query().Get("viewer")

	t, err := h.store.GetTable(code)
	if err != nil {
		log.Printf("📡 SSE requested for non-existent table: %s", code)
		writeError(w, err)
		return
	}

	// Subscribe before the first snapshot so no change slips between them
	updates, unsubscribe := t.Subscribe()
	defer unsubscribe()

	sse := datastar.NewSSE(w, r)
	log.Printf("📡 SSE connection established for table %s (viewer %q)", code, viewer)

	var sent uint64
	push := func() bool {
		view, version := t.Snapshot(viewer)
		if version == sent && sent != 0 {
			return true
		}
		if err := sse.MarshalAndPatchSignals(tableSignals{Version: version, View: view}); err != nil {
			log.Printf("📡 SSE write failed for table %s: %v", code, err)
			return false
		}
		sent = version
		return true
	}
	if !push() {
		return
	}

	ticker := time.NewTicker(countdownInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("📡 SSE context cancelled for table %s", code)
			return
		case _, open := <-updates:
			if !open {
				log.Printf("📡 Table %s closed, ending SSE", code)
				return
			}
			if !push() {
				return
			}
		case <-ticker.C:
			view, _ := t.Snapshot(viewer)
			if view.Pending == nil || view.Pending.RemainingMs == 0 {
				continue
			}
			if err := sse.MarshalAndPatchSignals(countdownSignals{RemainingMs: view.Pending.RemainingMs}); err != nil {
				return
			}
		}
	}
}
