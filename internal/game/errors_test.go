package game

import (
	"errors"
	"fmt"
	"testing"
)

func TestGameErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ErrRoomFull has correct message",
			err:      ErrRoomFull,
			expected: "table is full",
		},
		{
			name:     "ErrGameAlreadyStarted has correct message",
			err:      ErrGameAlreadyStarted,
			expected: "game has already started",
		},
		{
			name:     "ErrNotEnoughPlayers has correct message",
			err:      ErrNotEnoughPlayers,
			expected: "not enough players to start",
		},
		{
			name:     "ErrSupplyExhausted has correct message",
			err:      ErrSupplyExhausted,
			expected: "deck and discard pile are both empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Error message = %v, want %v", tt.err.Error(), tt.expected)
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	errorList := []error{
		ErrRoomFull,
		ErrGameAlreadyStarted,
		ErrNotEnoughPlayers,
		ErrWrongState,
		ErrActionPending,
		ErrInfluenceLossPending,
		ErrClaimRequired,
		ErrClaimMismatch,
		ErrNotAllowedToBlock,
		ErrNotAllowedToChallenge,
		ErrNotYourInfluence,
		ErrPlayerEliminated,
	}

	for i := 0; i < len(errorList); i++ {
		for j := i + 1; j < len(errorList); j++ {
			if errors.Is(errorList[i], errorList[j]) {
				t.Errorf("Error %v should not be equal to %v", errorList[i], errorList[j])
			}
		}
	}
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{ErrNotAllowedToBlock, true},
		{ErrNotAllowedToChallenge, true},
		{fmt.Errorf("wrapped: %w", ErrNotYourInfluence), true},
		{ErrPlayerEliminated, true},
		{ErrWrongState, false},
		{ErrInvalidTarget, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := IsUnauthorized(tt.err); got != tt.want {
			t.Errorf("IsUnauthorized(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
