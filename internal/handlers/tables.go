package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"influence/internal/game"
	"influence/internal/table"
)

// lookup resolves the {code} URL parameter, writing the error response itself
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*table.Table, bool) {
	t, err := h.store.GetTable(chi.URLParam(r, "code"))
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return t, true
}

// run applies cmd to the table and answers with the view of the seat cmd
// names, so a player choosing cards sees their own hand
func (h *Handler) run(w http.ResponseWriter, t *table.Table, status int, cmd func(*game.Session) (string, error)) {
	var viewerID string
	_, err := t.Do(func(s *game.Session) error {
		var err error
		viewerID, err = cmd(s)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	view, version := t.Snapshot(viewerID)
	writeJSON(w, status, TableResponse{Code: t.Code(), Version: version, View: view})
}

// CreateTable opens a new table
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	t, err := h.store.CreateTable()
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("🏠 Table %s created", t.Code())

	view, version := t.Snapshot("")
	writeJSON(w, http.StatusCreated, TableResponse{Code: t.Code(), Version: version, View: view})
}

// ListTables returns the open table codes
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tables": h.store.List()})
}

// GetTable returns the table as seen by the ?viewer= player
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	view, version := t.Snapshot(r.URL.Query().Get("viewer"))
	writeJSON(w, http.StatusOK, TableResponse{Code: t.Code(), Version: version, View: view})
}

// DeleteTable closes a table and disconnects its streams
func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.store.DeleteTable(code); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("🗑️ Table %s deleted", code)
	w.WriteHeader(http.StatusNoContent)
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

type addPlayerResponse struct {
	Player game.Player   `json:"player"`
	Table  TableResponse `json:"table"`
}

// AddPlayer seats a player at a table in the lobby
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req addPlayerRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var player game.Player
	_, err := t.Do(func(s *game.Session) error {
		p, err := s.AddPlayer(req.Name)
		player = p
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	log.Printf("👤 %s joined table %s", player.Name, t.Code())

	// Only the new seat's own view is returned; nobody has cards yet.
	view, version := t.Snapshot(player.ID)
	writeJSON(w, http.StatusCreated, addPlayerResponse{
		Player: game.Player{ID: player.ID, Name: player.Name, Coins: player.Coins, JoinedAt: player.JoinedAt},
		Table:  TableResponse{Code: t.Code(), Version: version, View: view},
	})
}

// StartGame deals the cards
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		if err := s.StartGame(); err != nil {
			return "", err
		}
		log.Printf("🎮 Game started at table %s with %d players", t.Code(), len(s.Players()))
		return "", nil
	})
}

// ResetGame empties the table back to a fresh lobby
func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		s.Reset()
		return "", nil
	})
}

// Events returns the game log from ?since= onward
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	since := 0
	if raw := r.URL.Query().Get("since"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, fmt.Errorf("%w: since must be a non-negative integer", ErrBadRequest))
			return
		}
		since = n
	}

	events := t.Events(since)
	if events == nil {
		events = []game.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
