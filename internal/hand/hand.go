// Package hand holds the ordered card collections owned by players (Hand) and
// by the game (Crib).
package hand

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lox/cribbage/internal/deck"
)

// ErrCardNotFound is returned when removing a card that is not held.
var ErrCardNotFound = errors.New("card not found")

// Hand is an ordered multiset of cards belonging to one player.
type Hand struct {
	cards []deck.Card
}

// New creates a hand holding a copy of cards.
func New(cards ...deck.Card) *Hand {
	return &Hand{cards: append([]deck.Card(nil), cards...)}
}

// Add appends cards to the hand in order.
func (h *Hand) Add(cards ...deck.Card) {
	h.cards = append(h.cards, cards...)
}

// Remove takes a single card out of the hand.
func (h *Hand) Remove(card deck.Card) error {
	i := slices.Index(h.cards, card)
	if i < 0 {
		return fmt.Errorf("%w: %s not in hand %s", ErrCardNotFound, card, h)
	}
	h.cards = slices.Delete(h.cards, i, i+1)
	return nil
}

// RemoveAll removes every card in cards. Either all are removed or, if any is
// missing, none are.
func (h *Hand) RemoveAll(cards []deck.Card) error {
	remaining := slices.Clone(h.cards)
	for _, card := range cards {
		i := slices.Index(remaining, card)
		if i < 0 {
			return fmt.Errorf("%w: %s not in hand %s", ErrCardNotFound, card, h)
		}
		remaining = slices.Delete(remaining, i, i+1)
	}
	h.cards = remaining
	return nil
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = nil
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsEmpty reports whether the hand holds no cards.
func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// Cards returns a copy of the cards in hand order.
func (h *Hand) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "Hand(empty)"
	}
	return "Hand(" + joinCards(h.cards) + ")"
}

func joinCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
