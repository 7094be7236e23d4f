package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"influence/internal/game"
)

var errNoChange = errors.New("no change")

type actionRequest struct {
	Action string `json:"action"`
	Role   string `json:"role,omitempty"`
}

// InitiateAction starts the current player's action
func (h *Handler) InitiateAction(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	var claim game.Role
	if req.Role != "" {
		if claim, err = game.ParseRole(req.Role); err != nil {
			writeError(w, err)
			return
		}
	}

	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		cur, ok := s.CurrentPlayer()
		if !ok {
			return "", game.ErrNotStarted
		}
		if h.config.Rules.EnforceMustCoup && action != game.ActionCoup && s.MustCoup(cur.ID) {
			return "", fmt.Errorf("%w: %s has %d coins", ErrMustCoup, cur.Name, cur.Coins)
		}
		if err := s.InitiateAction(action, claim); err != nil {
			return "", err
		}
		log.Printf("🎯 Table %s: %s declared %s", t.Code(), cur.Name, action)
		return cur.ID, nil
	})
}

type targetRequest struct {
	TargetID string `json:"targetId"`
}

// SelectTarget names the target of the pending action
func (h *Handler) SelectTarget(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req targetRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		var source string
		if p, ok := s.Pending(); ok {
			source = p.SourcePlayerID
		}
		return source, s.SelectTarget(req.TargetID)
	})
}

type blockRequest struct {
	PlayerID string `json:"playerId"`
	Role     string `json:"role"`
}

// BlockAction declares a block on the pending action
func (h *Handler) BlockAction(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req blockRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	role, err := game.ParseRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		return req.PlayerID, s.BlockAction(req.PlayerID, role)
	})
}

type challengeRequest struct {
	PlayerID string `json:"playerId"`
}

// ChallengeAction challenges the open claim
func (h *Handler) ChallengeAction(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req challengeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		return req.PlayerID, s.ChallengeAction(req.PlayerID)
	})
}

type revealRequest struct {
	PlayerID  string `json:"playerId"`
	CardIndex *int   `json:"cardIndex"`
}

// LoseInfluence reveals the card the owing player picked
func (h *Handler) LoseInfluence(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req revealRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.CardIndex == nil {
		writeError(w, fmt.Errorf("%w: cardIndex is required", ErrBadRequest))
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		return req.PlayerID, s.LoseInfluence(req.PlayerID, *req.CardIndex)
	})
}

type exchangeRequest struct {
	Indices []int `json:"indices"`
}

// CompleteExchange keeps the selected cards from the exchange pool
func (h *Handler) CompleteExchange(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req exchangeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.run(w, t, http.StatusOK, func(s *game.Session) (string, error) {
		var source string
		if p, ok := s.Pending(); ok {
			source = p.SourcePlayerID
		}
		return source, s.CompleteExchange(req.Indices)
	})
}

type completeResponse struct {
	Closed bool `json:"closed"`
	TableResponse
}

// CompleteAction closes the open response window early. Calling it when no
// window is open is not an error.
func (h *Handler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	_, err := t.Do(func(s *game.Session) error {
		if !s.CompleteAction() {
			return errNoChange
		}
		return nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		writeError(w, err)
		return
	}
	view, version := t.Snapshot("")
	writeJSON(w, http.StatusOK, completeResponse{
		Closed:        err == nil,
		TableResponse: TableResponse{Code: t.Code(), Version: version, View: view},
	})
}
