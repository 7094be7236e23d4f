package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	clock := newFakeClock()

	t.Run("seats players with starting coins and unique IDs", func(t *testing.T) {
		s := newLobby(t, DefaultRules(), clock)
		a, err := s.AddPlayer("Alice")
		require.NoError(t, err)
		b, err := s.AddPlayer("  Bob  ")
		require.NoError(t, err)

		assert.Equal(t, "p1", a.ID)
		assert.Equal(t, "p2", b.ID)
		assert.Equal(t, "Bob", b.Name)
		assert.Equal(t, 2, a.Coins)
		assert.Len(t, s.Players(), 2)
	})

	t.Run("rejects empty and duplicate names", func(t *testing.T) {
		s := newLobby(t, DefaultRules(), clock)
		_, err := s.AddPlayer("Alice")
		require.NoError(t, err)

		_, err = s.AddPlayer("   ")
		assert.ErrorIs(t, err, ErrEmptyName)
		_, err = s.AddPlayer("alice")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("rejects a seventh player", func(t *testing.T) {
		s := newLobby(t, DefaultRules(), clock)
		for _, name := range []string{"A", "B", "C", "D", "E", "F"} {
			_, err := s.AddPlayer(name)
			require.NoError(t, err)
		}
		_, err := s.AddPlayer("G")
		assert.ErrorIs(t, err, ErrRoomFull)
	})

	t.Run("rejects players once started", func(t *testing.T) {
		s, _ := newTestGame(t, "Alice", "Bob")
		_, err := s.AddPlayer("Carol")
		assert.ErrorIs(t, err, ErrGameAlreadyStarted)
	})
}

func TestStartGame(t *testing.T) {
	tests := []struct {
		name     string
		players  []string
		deckSize int
	}{
		{"two players", []string{"A", "B"}, 15 - 4},
		{"five players", []string{"A", "B", "C", "D", "E"}, 15 - 10},
		{"six players use the large deck", []string{"A", "B", "C", "D", "E", "F"}, 25 - 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestGame(t, tt.players...)

			assert.True(t, s.Started())
			assert.Equal(t, tt.deckSize, s.DeckSize())
			for _, p := range s.Players() {
				assert.Len(t, p.Influences, 2)
				assert.Equal(t, 2, p.Coins)
			}
			cur, ok := s.CurrentPlayer()
			require.True(t, ok)
			assert.Equal(t, "p1", cur.ID)
			assertConserved(t, s)
		})
	}
}

func TestStartGame_Errors(t *testing.T) {
	s := newLobby(t, DefaultRules(), newFakeClock())
	_, err := s.AddPlayer("Alone")
	require.NoError(t, err)

	err = s.StartGame()
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.False(t, s.Started())

	_, err = s.AddPlayer("Company")
	require.NoError(t, err)
	require.NoError(t, s.StartGame())
	assert.ErrorIs(t, s.StartGame(), ErrGameAlreadyStarted)
}

func TestCommandsBeforeStart(t *testing.T) {
	s := newLobby(t, DefaultRules(), newFakeClock())
	_, _ = s.AddPlayer("Alice")
	_, _ = s.AddPlayer("Bob")

	assert.ErrorIs(t, s.InitiateAction(ActionIncome, ""), ErrNotStarted)
	assert.ErrorIs(t, s.SelectTarget("p2"), ErrNotStarted)
	assert.ErrorIs(t, s.BlockAction("p2", RoleDuke), ErrNotStarted)
	assert.ErrorIs(t, s.ChallengeAction("p2"), ErrNotStarted)
	assert.ErrorIs(t, s.LoseInfluence("p2", 0), ErrNotStarted)
	assert.ErrorIs(t, s.CompleteExchange([]int{0, 1}), ErrNotStarted)
	assert.False(t, s.CompleteAction())

	_, ok := s.CurrentPlayer()
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	require.NoError(t, s.InitiateAction(ActionTax, RoleDuke))

	s.Reset()

	assert.False(t, s.Started())
	assert.Empty(t, s.Players())
	assert.Empty(t, s.Events(0))
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.Equal(t, 0, s.DeckSize())

	_, err := s.AddPlayer("Alice")
	assert.NoError(t, err, "a reset table accepts players again")
}

func TestMustCoup(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	s.players[0].Coins = 10
	s.players[1].Coins = 9

	assert.True(t, s.MustCoup("p1"))
	assert.False(t, s.MustCoup("p2"))
	assert.False(t, s.MustCoup("nobody"))

	// The engine reports the rule but does not enforce it.
	require.NoError(t, s.InitiateAction(ActionIncome, ""))
	assert.Equal(t, 11, s.players[0].Coins)
}

func TestEvents(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	require.NoError(t, s.InitiateAction(ActionIncome, ""))

	all := s.Events(0)
	require.NotEmpty(t, all)
	for i, e := range all {
		assert.Equal(t, i, e.Seq)
		assert.False(t, e.At.IsZero())
	}

	types := make([]EventType, 0, len(all))
	for _, e := range all {
		types = append(types, e.Type)
	}
	assert.Equal(t, []EventType{
		EventPlayerJoined, EventPlayerJoined, EventGameStarted,
		EventAction, EventEffect, EventTurn,
	}, types)

	tail := s.Events(4)
	require.Len(t, tail, 2)
	assert.Equal(t, EventEffect, tail[0].Type)
	assert.Nil(t, s.Events(100))
	assert.Len(t, s.Events(-3), len(all))
}
