// Package player models a cribbage player: the live hand, the four cards kept
// for counting, running score counters, and the decision policy.
package player

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/hand"
	"github.com/lox/cribbage/internal/rules"
)

// ErrInvalidDiscard is returned when a discard is attempted from a hand that
// does not hold six cards, or with a discard that is not two cards.
var ErrInvalidDiscard = errors.New("invalid discard")

// Phase identifies which part of a hand earned points.
type Phase int

const (
	// PlayPhase covers pegging, go/31 and his heels.
	PlayPhase Phase = iota
	// CountPhase covers counting the hand and crib.
	CountPhase
)

// Player represents a player in a cribbage game.
type Player struct {
	Name string

	policy Policy
	hand   *hand.Hand
	kept   []deck.Card

	score       int
	playPoints  int
	countPoints int
}

// New creates a player. A nil policy selects RandomPolicy.
func New(name string, policy Policy) *Player {
	if policy == nil {
		policy = RandomPolicy{}
	}
	return &Player{
		Name:   name,
		policy: policy,
		hand:   hand.New(),
	}
}

// Policy returns the player's decision policy.
func (p *Player) Policy() Policy {
	return p.policy
}

// AddCards adds dealt cards to the hand.
func (p *Player) AddCards(cards ...deck.Card) {
	p.hand.Add(cards...)
}

// ChooseDiscards asks the policy for the two cards to send to the crib.
func (p *Player) ChooseDiscards(isDealer bool, rng *rand.Rand) ([]deck.Card, error) {
	if p.hand.Len() != rules.InitialHandSize {
		return nil, fmt.Errorf("%w: %s holds %d cards", ErrInvalidDiscard, p.Name, p.hand.Len())
	}
	discards, err := p.policy.ChooseDiscards(p.hand.Cards(), isDealer, rng)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	if len(discards) != rules.CardsToDiscard || discards[0] == discards[1] {
		return nil, fmt.Errorf("%w: %s chose %v", ErrInvalidDiscard, p.Name, discards)
	}
	return discards, nil
}

// DiscardToCrib removes the discards from the hand and keeps a snapshot of the
// remaining four cards for counting.
func (p *Player) DiscardToCrib(cards []deck.Card) error {
	if !rules.ValidDiscard(p.hand.Len(), len(cards)) {
		return fmt.Errorf("%w: %s discarding %d of %d cards", ErrInvalidDiscard, p.Name, len(cards), p.hand.Len())
	}
	if err := p.hand.RemoveAll(cards); err != nil {
		return fmt.Errorf("%s discard: %w", p.Name, err)
	}
	p.kept = p.hand.Cards()
	return nil
}

// ChoosePlayCard asks the policy for a card to play at the running count.
// It returns false when the player has no legal play.
func (p *Player) ChoosePlayCard(count int, rng *rand.Rand) (deck.Card, bool) {
	card, ok := p.policy.ChoosePlayCard(p.hand.Cards(), count, rng)
	if !ok {
		return deck.Card{}, false
	}
	return card, true
}

// PlayCard removes a card from the hand.
func (p *Player) PlayCard(card deck.Card) error {
	if err := p.hand.Remove(card); err != nil {
		return fmt.Errorf("%s play: %w", p.Name, err)
	}
	return nil
}

// AddScore credits points to the player's total and phase counter.
func (p *Player) AddScore(points int, phase Phase) {
	if points <= 0 {
		return
	}
	p.score += points
	if phase == PlayPhase {
		p.playPoints += points
	} else {
		p.countPoints += points
	}
}

// Score returns the player's current total.
func (p *Player) Score() int { return p.score }

// PlayPoints returns points earned during play.
func (p *Player) PlayPoints() int { return p.playPoints }

// CountPoints returns points earned while counting.
func (p *Player) CountPoints() int { return p.countPoints }

// HasCards reports whether the live hand still holds cards.
func (p *Player) HasCards() bool {
	return !p.hand.IsEmpty()
}

// Cards returns a copy of the live hand.
func (p *Player) Cards() []deck.Card {
	return p.hand.Cards()
}

// Kept returns the four cards kept after discarding.
func (p *Player) Kept() []deck.Card {
	return append([]deck.Card(nil), p.kept...)
}

// ClearHand empties the live hand and the kept snapshot.
func (p *Player) ClearHand() {
	p.hand.Clear()
	p.kept = nil
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (Score: %d)", p.Name, p.score)
}
