package game

import (
	"time"
)

// Player represents a seat at the table
type Player struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Coins      int       `json:"coins"`
	Influences []Card    `json:"influences,omitempty"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// NewPlayer creates a new player
func NewPlayer(id, name string, coins int) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Coins:    coins,
		JoinedAt: time.Now(),
	}
}

// ActiveInfluence counts the unrevealed cards in hand
func (p *Player) ActiveInfluence() int {
	n := 0
	for _, c := range p.Influences {
		if !c.Revealed {
			n++
		}
	}
	return n
}

// IsActive reports whether the player still has influence
func (p *Player) IsActive() bool {
	return p.ActiveInfluence() > 0
}

// Holds returns the index of an unrevealed card with role r, or -1
func (p *Player) Holds(r Role) int {
	for i, c := range p.Influences {
		if !c.Revealed && c.Role == r {
			return i
		}
	}
	return -1
}

// hidden returns the hand positions of unrevealed cards
func (p *Player) hidden() []int {
	var idx []int
	for i, c := range p.Influences {
		if !c.Revealed {
			idx = append(idx, i)
		}
	}
	return idx
}

func (p *Player) clone() Player {
	cp := *p
	cp.Influences = make([]Card, len(p.Influences))
	copy(cp.Influences, p.Influences)
	return cp
}
