package hand

import (
	"fmt"
	"slices"

	"github.com/lox/cribbage/internal/deck"
)

// Crib collects the two discards from each player and is scored for the dealer.
type Crib struct {
	cards []deck.Card
}

// NewCrib creates an empty crib.
func NewCrib() *Crib {
	return &Crib{}
}

// Add appends discarded cards to the crib.
func (c *Crib) Add(cards ...deck.Card) {
	c.cards = append(c.cards, cards...)
}

// Remove takes a card back out of the crib.
func (c *Crib) Remove(card deck.Card) error {
	i := slices.Index(c.cards, card)
	if i < 0 {
		return fmt.Errorf("%w: %s not in crib", ErrCardNotFound, card)
	}
	c.cards = slices.Delete(c.cards, i, i+1)
	return nil
}

// Clear empties the crib at the start of a hand.
func (c *Crib) Clear() {
	c.cards = nil
}

// Len returns the number of cards in the crib.
func (c *Crib) Len() int {
	return len(c.cards)
}

// Cards returns a copy of the crib cards in discard order.
func (c *Crib) Cards() []deck.Card {
	return slices.Clone(c.cards)
}

func (c *Crib) String() string {
	if len(c.cards) == 0 {
		return "Crib(empty)"
	}
	return "Crib(" + joinCards(c.cards) + ")"
}
