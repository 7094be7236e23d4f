package game

import "math/rand/v2"

// Deck is the court deck plus the discard pile.
// Cards are drawn from the end of the slice.
type Deck struct {
	cards   []Role
	discard []Role
	rng     *rand.Rand
}

// NewDeck creates a shuffled deck from the given roles
func NewDeck(roles []Role, rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Role, len(roles)), rng: rng}
	copy(d.cards, roles)
	d.Shuffle()
	return d
}

func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw pops the top card. An empty deck is refilled from the discard pile first.
func (d *Deck) Draw() (Role, error) {
	if len(d.cards) == 0 {
		if len(d.discard) == 0 {
			return "", ErrSupplyExhausted
		}
		d.cards, d.discard = d.discard, nil
		d.Shuffle()
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// Return puts unseen cards back into the deck and reshuffles it
func (d *Deck) Return(roles ...Role) {
	d.cards = append(d.cards, roles...)
	d.Shuffle()
}

// Discard adds revealed or replaced cards to the discard pile
func (d *Deck) Discard(roles ...Role) {
	d.discard = append(d.discard, roles...)
}

// Len returns the number of cards remaining in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck, bottom first
func (d *Deck) Cards() []Role {
	out := make([]Role, len(d.cards))
	copy(out, d.cards)
	return out
}

// DiscardPile returns a copy of the discard pile in discard order
func (d *Deck) DiscardPile() []Role {
	out := make([]Role, len(d.discard))
	copy(out, d.discard)
	return out
}
