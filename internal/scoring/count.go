// Package scoring implements cribbage scoring for the play (pegging) and for
// counting hands and cribs against the starter.
package scoring

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/rules"
)

var (
	// ErrInvalidHandSize is returned when a counted hand does not hold four cards.
	ErrInvalidHandSize = errors.New("invalid hand size")
	// ErrDuplicateCard is returned when a card appears twice among the hand
	// and starter.
	ErrDuplicateCard = errors.New("duplicate card")
)

// Breakdown is the per-category result of counting a hand or crib.
type Breakdown struct {
	Fifteens int `toml:"fifteens"`
	Pairs    int `toml:"pairs"`
	Runs     int `toml:"runs"`
	Flush    int `toml:"flush"`
	Nobs     int `toml:"nobs"`
}

// Total returns the sum of all categories.
func (b Breakdown) Total() int {
	return b.Fifteens + b.Pairs + b.Runs + b.Flush + b.Nobs
}

func (b Breakdown) String() string {
	return fmt.Sprintf("fifteens=%d pairs=%d runs=%d flush=%d nobs=%d total=%d",
		b.Fifteens, b.Pairs, b.Runs, b.Flush, b.Nobs, b.Total())
}

// ScoreHand counts a four-card hand with the starter.
func ScoreHand(cards []deck.Card, starter deck.Card) (Breakdown, error) {
	return score(cards, starter, false)
}

// ScoreCrib counts the crib with the starter. A crib only scores a flush when
// all five cards share a suit.
func ScoreCrib(cards []deck.Card, starter deck.Card) (Breakdown, error) {
	return score(cards, starter, true)
}

func score(cards []deck.Card, starter deck.Card, isCrib bool) (Breakdown, error) {
	if len(cards) != rules.PlayHandSize {
		return Breakdown{}, fmt.Errorf("%w: need %d cards, got %d", ErrInvalidHandSize, rules.PlayHandSize, len(cards))
	}

	all := make([]deck.Card, 0, len(cards)+1)
	all = append(all, cards...)
	all = append(all, starter)
	for i, c := range all {
		if slices.Contains(all[i+1:], c) {
			return Breakdown{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
	}

	return Breakdown{
		Fifteens: fifteens(all),
		Pairs:    pairs(all),
		Runs:     runs(all),
		Flush:    flush(cards, starter, isCrib),
		Nobs:     nobs(cards, starter),
	}, nil
}

// fifteens scores 2 for every non-empty subset (by index) summing to 15.
func fifteens(cards []deck.Card) int {
	n := 0
	for mask := 1; mask < 1<<len(cards); mask++ {
		sum := 0
		for i, c := range cards {
			if mask&(1<<i) != 0 {
				sum += c.Value()
			}
		}
		if sum == 15 {
			n++
		}
	}
	return 2 * n
}

func pairs(cards []deck.Card) int {
	n := 0
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			if cards[i].Rank == cards[j].Rank {
				n++
			}
		}
	}
	return 2 * n
}

// runs finds the longest run length with at least one matching subset and
// scores length x number of such subsets. Shorter lengths are not scored.
func runs(cards []deck.Card) int {
	for length := len(cards); length >= 3; length-- {
		count := 0
		for mask := 1; mask < 1<<len(cards); mask++ {
			if bits.OnesCount(uint(mask)) != length {
				continue
			}
			ordinals := make([]int, 0, length)
			for i, c := range cards {
				if mask&(1<<i) != 0 {
					ordinals = append(ordinals, c.Ordinal())
				}
			}
			if isRun(ordinals) {
				count++
			}
		}
		if count > 0 {
			return length * count
		}
	}
	return 0
}

// isRun sorts ordinals in place and reports whether they step by exactly one.
func isRun(ordinals []int) bool {
	slices.Sort(ordinals)
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i]-ordinals[i-1] != 1 {
			return false
		}
	}
	return true
}

func flush(cards []deck.Card, starter deck.Card, isCrib bool) int {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return 0
		}
	}
	if starter.Suit == suit {
		return len(cards) + 1
	}
	if isCrib {
		return 0
	}
	return len(cards)
}

func nobs(cards []deck.Card, starter deck.Card) int {
	for _, c := range cards {
		if c.IsJack() && c.Suit == starter.Suit {
			return 1
		}
	}
	return 0
}
