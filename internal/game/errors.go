package game

import "errors"

// Lobby errors
var (
	ErrRoomFull           = errors.New("table is full")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrNotEnoughPlayers   = errors.New("not enough players to start")
	ErrDuplicateName      = errors.New("a player with that name already exists at the table")
	ErrEmptyName          = errors.New("player name is empty")
)

// Invalid commands: issued from the wrong state or with bad arguments.
// State is never changed when one of these is returned.
var (
	ErrNotStarted           = errors.New("game has not started")
	ErrGameOver             = errors.New("game is over")
	ErrWrongState           = errors.New("command not valid in the current state")
	ErrActionPending        = errors.New("another action is still being resolved")
	ErrInfluenceLossPending = errors.New("an influence loss must be resolved first")
	ErrUnknownAction        = errors.New("unknown action")
	ErrUnknownRole          = errors.New("unknown role")
	ErrClaimRequired        = errors.New("action requires a claimed role")
	ErrClaimMismatch        = errors.New("claimed role does not grant this action")
	ErrNotEnoughCoins       = errors.New("not enough coins")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrInvalidBlockRole     = errors.New("role cannot block this action")
	ErrInvalidCardIndex     = errors.New("invalid card index")
	ErrInvalidSelection     = errors.New("invalid exchange selection")
	ErrPlayerNotFound       = errors.New("player not found")
)

// Unauthorized actors.
var (
	ErrNotAllowedToBlock     = errors.New("player may not block this action")
	ErrNotAllowedToChallenge = errors.New("player may not challenge this claim")
	ErrNotYourInfluence      = errors.New("player does not owe an influence")
	ErrPlayerEliminated      = errors.New("player has been eliminated")
)

// ErrSupplyExhausted means both the deck and the discard pile are empty.
// The card supply always exceeds the cards in play, so this is a broken invariant.
var ErrSupplyExhausted = errors.New("deck and discard pile are both empty")

// IsUnauthorized reports whether err rejects the acting player rather than the command.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAllowedToBlock) ||
		errors.Is(err, ErrNotAllowedToChallenge) ||
		errors.Is(err, ErrNotYourInfluence) ||
		errors.Is(err, ErrPlayerEliminated)
}
