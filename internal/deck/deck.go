package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck.
const Size = 52

// ErrDeckExhausted is returned when a deal asks for more cards than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a deck of playing cards. Cards move from the undealt
// sequence to the dealt set; together they always hold all 52 cards.
type Deck struct {
	cards []Card
	dealt []Card
}

// New creates a new standard 52-card deck in canonical (suit-major) order.
func New() *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		dealt: make([]Card, 0, Size),
	}
	d.fill()
	return d
}

func (d *Deck) fill() {
	d.cards = d.cards[:0]
	d.dealt = d.dealt[:0]
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, Card{Rank: rank, Suit: suit})
		}
	}
}

// Shuffle permutes the undealt cards in place with a Fisher-Yates pass from
// the last index down, drawing exactly len-1 values from rng.
func (d *Deck) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || n > len(d.cards) {
		return nil, fmt.Errorf("%w: cannot deal %d cards, %d remain", ErrDeckExhausted, n, len(d.cards))
	}

	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	d.dealt = append(d.dealt, out...)
	return out, nil
}

// DealOne removes and returns the top card.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Reset restores the full, unshuffled, undealt deck.
func (d *Deck) Reset() {
	// Deal reslices the front of cards away, so rebuild from a fresh backing array.
	d.cards = make([]Card, 0, Size)
	d.fill()
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undealt cards in deal order.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Dealt returns a copy of the cards dealt so far, in deal order.
func (d *Deck) Dealt() []Card {
	return append([]Card(nil), d.dealt...)
}
