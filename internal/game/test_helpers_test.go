package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}
}

func newLobby(t *testing.T, rules Rules, clock *fakeClock) *Session {
	t.Helper()
	return NewSession(rules,
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(clock.Now),
		WithIDGenerator(sequentialIDs()),
	)
}

// newTestGame seats the named players (IDs p1, p2, ...) and deals
func newTestGame(t *testing.T, names ...string) (*Session, *fakeClock) {
	t.Helper()
	return newTestGameWithRules(t, DefaultRules(), names...)
}

func newTestGameWithRules(t *testing.T, rules Rules, names ...string) (*Session, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s := newLobby(t, rules, clock)
	for _, name := range names {
		_, err := s.AddPlayer(name)
		require.NoError(t, err)
	}
	require.NoError(t, s.StartGame())
	return s, clock
}

// deal replaces every hand with the given roles and rebuilds the deck
// from what is left of the supply
func deal(t *testing.T, s *Session, hands ...[]Role) {
	t.Helper()
	require.Len(t, hands, len(s.players))
	supply := buildDeck(s.rules.CopiesPerRole(len(s.players)))
	for i, hand := range hands {
		cards := make([]Card, len(hand))
		for j, r := range hand {
			k := slices.Index(supply, r)
			require.GreaterOrEqual(t, k, 0, "supply has no %s left", r)
			supply = slices.Delete(supply, k, k+1)
			cards[j] = Card{Role: r}
		}
		s.players[i].Influences = cards
	}
	s.deck = NewDeck(supply, s.rng)
}

// assertConserved checks that every role of the starting supply is in the
// deck, the discard pile, the exchange buffer, or a face-down card
func assertConserved(t *testing.T, s *Session) {
	t.Helper()
	counts := make(map[Role]int)
	for _, r := range s.deck.Cards() {
		counts[r]++
	}
	for _, r := range s.deck.DiscardPile() {
		counts[r]++
	}
	for _, r := range s.exchange {
		counts[r]++
	}
	for _, p := range s.players {
		for _, c := range p.Influences {
			if !c.Revealed {
				counts[c.Role]++
			}
		}
	}
	copies := s.rules.CopiesPerRole(len(s.players))
	for _, r := range AllRoles {
		assert.Equal(t, copies, counts[r], "supply of %s", r)
	}
}

func countRole(roles []Role, r Role) int {
	n := 0
	for _, x := range roles {
		if x == r {
			n++
		}
	}
	return n
}
