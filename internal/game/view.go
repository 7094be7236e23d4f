package game

import "time"

// InfluenceView is a card as seen by one viewer. Role is empty for
// another player's face-down card.
type InfluenceView struct {
	Role     Role `json:"role,omitempty"`
	Revealed bool `json:"revealed"`
}

// PlayerView is a seat as seen by one viewer
type PlayerView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Coins      int             `json:"coins"`
	Influences []InfluenceView `json:"influences"`
	Active     bool            `json:"active"`
	Current    bool            `json:"current"`
	MustCoup   bool            `json:"mustCoup,omitempty"`
}

// PendingView describes the action being resolved
type PendingView struct {
	Type                Action      `json:"type"`
	SourcePlayerID      string      `json:"sourcePlayerId"`
	TargetPlayerID      string      `json:"targetPlayerId,omitempty"`
	ClaimedRole         Role        `json:"claimedRole,omitempty"`
	BlockingPlayerID    string      `json:"blockingPlayerId,omitempty"`
	BlockingRole        Role        `json:"blockingRole,omitempty"`
	ChallengingPlayerID string      `json:"challengingPlayerId,omitempty"`
	State               ActionState `json:"state"`
	BlockWindowMs       int64       `json:"blockWindowMs"`
	ChallengeWindowMs   int64       `json:"challengeWindowMs"`
	RemainingMs         int64       `json:"remainingMs,omitempty"`
}

// View is the read-only state handed to the presentation layer
type View struct {
	Started               bool         `json:"started"`
	Players               []PlayerView `json:"players"`
	CurrentPlayerID       string       `json:"currentPlayerId,omitempty"`
	Pending               *PendingView `json:"pending,omitempty"`
	PlayerToLoseInfluence string       `json:"playerToLoseInfluence,omitempty"`
	Winner                string       `json:"winner,omitempty"`
	Discard               []Role       `json:"discard"`
	DeckSize              int          `json:"deckSize"`
	// ExchangeOptions is only filled for the exchanging player.
	ExchangeOptions []Role `json:"exchangeOptions,omitempty"`
	EventCount      int    `json:"eventCount"`
}

// View renders the state for viewerID. Unrevealed roles are only shown for
// the viewer's own hand; an empty viewerID sees no hidden roles.
func (s *Session) View(viewerID string) View {
	v := View{
		Started:               s.started,
		PlayerToLoseInfluence: s.loser,
		Winner:                s.winner,
		Discard:               s.deck.DiscardPile(),
		DeckSize:              s.deck.Len(),
		EventCount:            len(s.events),
	}

	for i, p := range s.players {
		pv := PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Coins:    p.Coins,
			Active:   p.IsActive(),
			Current:  s.started && i == s.current,
			MustCoup: s.started && s.MustCoup(p.ID),
		}
		for _, c := range p.Influences {
			iv := InfluenceView{Revealed: c.Revealed}
			if c.Revealed || p.ID == viewerID {
				iv.Role = c.Role
			}
			pv.Influences = append(pv.Influences, iv)
		}
		v.Players = append(v.Players, pv)
	}
	if s.started && len(s.players) > 0 {
		v.CurrentPlayerID = s.players[s.current].ID
	}

	if p := s.pending; p != nil {
		pv := &PendingView{
			Type:                p.Type,
			SourcePlayerID:      p.SourcePlayerID,
			TargetPlayerID:      p.TargetPlayerID,
			ClaimedRole:         p.ClaimedRole,
			BlockingPlayerID:    p.BlockingPlayerID,
			BlockingRole:        p.BlockingRole,
			ChallengingPlayerID: p.ChallengingPlayerID,
			State:               p.State,
			BlockWindowMs:       p.BlockWindow.Milliseconds(),
			ChallengeWindowMs:   p.ChallengeWindow.Milliseconds(),
		}
		if deadline, ok := s.Deadline(); ok {
			pv.RemainingMs = max(0, deadline.Sub(s.now()).Milliseconds())
		}
		v.Pending = pv
		if p.SourcePlayerID == viewerID {
			v.ExchangeOptions = s.ExchangeOptions()
		}
	}
	return v
}

// Remaining returns the time left in the open response window
func (s *Session) Remaining() time.Duration {
	deadline, ok := s.Deadline()
	if !ok {
		return 0
	}
	return max(0, deadline.Sub(s.now()))
}
