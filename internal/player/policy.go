package player

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/rules"
)

// Policy decides which cards a player discards and plays. Policies receive
// the game's generator and must only draw from it, never copy or reseed it:
// the number and order of draws is part of a game's reproducible outcome.
type Policy interface {
	// ChooseDiscards picks exactly two cards from a six-card hand.
	ChooseDiscards(cards []deck.Card, isDealer bool, rng *rand.Rand) ([]deck.Card, error)

	// ChoosePlayCard picks a legal card for the running count, or returns
	// false when the player must say go.
	ChoosePlayCard(cards []deck.Card, count int, rng *rand.Rand) (deck.Card, bool)
}

// RandomPolicy discards two uniformly random cards and plays the first legal
// card in hand order. Discarding draws twice from the generator; playing draws
// nothing.
type RandomPolicy struct{}

// ChooseDiscards implements Policy.
func (RandomPolicy) ChooseDiscards(cards []deck.Card, _ bool, rng *rand.Rand) ([]deck.Card, error) {
	if len(cards) != rules.InitialHandSize {
		return nil, fmt.Errorf("%w: hand holds %d cards", ErrInvalidDiscard, len(cards))
	}
	idx := randutil.SampleIndices(rng, len(cards), rules.CardsToDiscard)
	out := make([]deck.Card, len(idx))
	for i, j := range idx {
		out[i] = cards[j]
	}
	return out, nil
}

// ChoosePlayCard implements Policy.
func (RandomPolicy) ChoosePlayCard(cards []deck.Card, count int, _ *rand.Rand) (deck.Card, bool) {
	return firstPlayable(cards, count)
}

// OrderedPolicy keeps the first four cards dealt and plays the first legal
// card. It never draws from the generator.
type OrderedPolicy struct{}

// ChooseDiscards implements Policy.
func (OrderedPolicy) ChooseDiscards(cards []deck.Card, _ bool, _ *rand.Rand) ([]deck.Card, error) {
	if len(cards) != rules.InitialHandSize {
		return nil, fmt.Errorf("%w: hand holds %d cards", ErrInvalidDiscard, len(cards))
	}
	keep := rules.InitialHandSize - rules.CardsToDiscard
	return append([]deck.Card(nil), cards[keep:]...), nil
}

// ChoosePlayCard implements Policy.
func (OrderedPolicy) ChoosePlayCard(cards []deck.Card, count int, _ *rand.Rand) (deck.Card, bool) {
	return firstPlayable(cards, count)
}

func firstPlayable(cards []deck.Card, count int) (deck.Card, bool) {
	for _, c := range cards {
		if rules.CanPlayCard(c, count) {
			return c, true
		}
	}
	return deck.Card{}, false
}

// DefaultPolicy is the policy used when none is configured.
const DefaultPolicy = "random"

var policies = map[string]func() Policy{
	"random":  func() Policy { return RandomPolicy{} },
	"ordered": func() Policy { return OrderedPolicy{} },
}

// NewPolicy creates a policy by name. An empty name selects DefaultPolicy.
func NewPolicy(name string) (Policy, error) {
	if name == "" {
		name = DefaultPolicy
	}
	ctor, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (valid: %v)", name, PolicyNames())
	}
	return ctor(), nil
}

// PolicyNames lists the registered policy names in sorted order.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
