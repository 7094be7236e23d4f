package game

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Lobby(t *testing.T) {
	s := newLobby(t, DefaultRules(), newFakeClock())
	_, err := s.AddPlayer("Alice")
	require.NoError(t, err)

	v := s.View("")
	assert.False(t, v.Started)
	assert.Empty(t, v.CurrentPlayerID)
	assert.Nil(t, v.Pending)
	require.Len(t, v.Players, 1)
	assert.False(t, v.Players[0].Current)
	assert.Equal(t, 1, v.EventCount)
}

func TestView_HidesOtherHands(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	deal(t, s, []Role{RoleDuke, RoleCaptain}, []Role{RoleContessa, RoleAssassin})
	s.players[1].Influences[1].Revealed = true
	s.deck.Discard(RoleAssassin)

	v := s.View("p1")

	assert.Equal(t, []InfluenceView{{Role: RoleDuke}, {Role: RoleCaptain}}, v.Players[0].Influences)
	assert.Equal(t, []InfluenceView{{}, {Role: RoleAssassin, Revealed: true}}, v.Players[1].Influences)
	assert.Equal(t, "p1", v.CurrentPlayerID)
	assert.True(t, v.Players[0].Current)
	assert.Equal(t, []Role{RoleAssassin}, v.Discard)

	spectator := s.View("")
	assert.Empty(t, spectator.Players[0].Influences[0].Role)
	assert.Empty(t, spectator.Players[1].Influences[0].Role)

	raw, err := json.Marshal(s.View("p2"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), string(RoleCaptain))
}

func TestView_Pending(t *testing.T) {
	s, clock := newTestGame(t, "Alice", "Bob")

	require.NoError(t, s.InitiateAction(ActionTax, RoleDuke))
	clock.Advance(2 * time.Second)

	v := s.View("p2")
	require.NotNil(t, v.Pending)
	assert.Equal(t, ActionTax, v.Pending.Type)
	assert.Equal(t, RoleDuke, v.Pending.ClaimedRole)
	assert.Equal(t, StateWaitingForChallenges, v.Pending.State)
	assert.Equal(t, int64(5000), v.Pending.ChallengeWindowMs)
	assert.Equal(t, int64(3000), v.Pending.RemainingMs)
}

func TestView_ExchangeOptionsOnlyForExchanger(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	require.NoError(t, s.InitiateAction(ActionExchange, RoleAmbassador))
	require.True(t, s.CompleteAction())

	assert.Len(t, s.View("p1").ExchangeOptions, 4)
	assert.Empty(t, s.View("p2").ExchangeOptions)
	assert.Empty(t, s.View("").ExchangeOptions)
}

func TestView_MustCoup(t *testing.T) {
	s, _ := newTestGame(t, "Alice", "Bob")
	s.players[1].Coins = 10

	v := s.View("")
	assert.False(t, v.Players[0].MustCoup)
	assert.True(t, v.Players[1].MustCoup)
}
