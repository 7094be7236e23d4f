package game

import (
	"fmt"
	"time"
)

// ChallengePolicy decides who may challenge claims on targeted actions
type ChallengePolicy string

const (
	// ChallengeAnyone lets every active player except the claimant challenge.
	ChallengeAnyone ChallengePolicy = "anyone"
	// ChallengeTargetOnly restricts steal/assassinate claims to the target,
	// and blocks on them to the acting player.
	ChallengeTargetOnly ChallengePolicy = "target"
)

// Rules holds the tunable parts of a game
type Rules struct {
	MinPlayers         int
	MaxPlayers         int
	StartingCoins      int
	LargeGameThreshold int // player count from which the deck holds 5 copies per role
	BlockWindow        time.Duration
	ChallengeWindow    time.Duration
	ChallengePolicy    ChallengePolicy
	// ExchangeChallengeWindow opens a challenge window before the exchange draw.
	ExchangeChallengeWindow bool
	MustCoupAt              int
}

// DefaultRules returns the base game rules
func DefaultRules() Rules {
	return Rules{
		MinPlayers:              2,
		MaxPlayers:              6,
		StartingCoins:           2,
		LargeGameThreshold:      6,
		BlockWindow:             5 * time.Second,
		ChallengeWindow:         5 * time.Second,
		ChallengePolicy:         ChallengeAnyone,
		ExchangeChallengeWindow: true,
		MustCoupAt:              10,
	}
}

// CopiesPerRole returns the deck composition for a player count
func (r Rules) CopiesPerRole(playerCount int) int {
	if r.LargeGameThreshold > 0 && playerCount >= r.LargeGameThreshold {
		return 5
	}
	return 3
}

// Validate checks that the rules describe a playable game
func (r Rules) Validate() error {
	if r.MinPlayers < 2 {
		return fmt.Errorf("minPlayers must be at least 2")
	}
	if r.MaxPlayers > 6 {
		return fmt.Errorf("maxPlayers cannot exceed 6")
	}
	if r.MinPlayers > r.MaxPlayers {
		return fmt.Errorf("minPlayers cannot be greater than maxPlayers")
	}
	if r.StartingCoins < 0 {
		return fmt.Errorf("startingCoins cannot be negative")
	}
	if r.BlockWindow <= 0 || r.ChallengeWindow <= 0 {
		return fmt.Errorf("response windows must be positive")
	}
	switch r.ChallengePolicy {
	case ChallengeAnyone, ChallengeTargetOnly:
	default:
		return fmt.Errorf("unknown challenge policy %q", r.ChallengePolicy)
	}
	return nil
}
