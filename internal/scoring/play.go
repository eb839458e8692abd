package scoring

import (
	"fmt"
	"strings"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/rules"
)

// PlayScore is the result of laying the newest card of a round of play.
type PlayScore struct {
	Count     int // running count including the newest card
	Fifteen   int
	ThirtyOne int
	Pairs     int
	Run       int
}

// Total returns the points earned by the play.
func (p PlayScore) Total() int {
	return p.Fifteen + p.ThirtyOne + p.Pairs + p.Run
}

// Reasons describes each scoring category in call order ("15 for 2", ...).
func (p PlayScore) Reasons() []string {
	var reasons []string
	if p.Fifteen > 0 {
		reasons = append(reasons, "15 for 2")
	}
	if p.ThirtyOne > 0 {
		reasons = append(reasons, "31 for 2")
	}
	switch p.Pairs {
	case 2:
		reasons = append(reasons, "pair for 2")
	case 6:
		reasons = append(reasons, "triple for 6")
	case 12:
		reasons = append(reasons, "quadruple for 12")
	}
	if p.Run > 0 {
		reasons = append(reasons, fmt.Sprintf("run of %d for %d", p.Run, p.Run))
	}
	return reasons
}

func (p PlayScore) String() string {
	return strings.Join(p.Reasons(), ", ")
}

// ScorePlay scores the most recent card of the current round. played holds the
// round's cards in play order, newest last.
func ScorePlay(played []deck.Card) PlayScore {
	var ps PlayScore
	if len(played) == 0 {
		return ps
	}

	for _, c := range played {
		ps.Count += c.Value()
	}
	switch ps.Count {
	case 15:
		ps.Fifteen = 2
	case rules.MaxPlayCount:
		ps.ThirtyOne = 2
	}

	ps.Pairs = playPairs(played)
	ps.Run = playRun(played)
	return ps
}

// playPairs counts consecutive cards matching the newest card's rank.
func playPairs(played []deck.Card) int {
	last := played[len(played)-1].Rank
	n := 1
	for i := len(played) - 2; i >= 0; i-- {
		if played[i].Rank != last {
			break
		}
		n++
	}
	switch n {
	case 2:
		return 2
	case 3:
		return 6
	case 4:
		return 12
	}
	return 0
}

// playRun checks the longest suffix first and returns the first run found.
func playRun(played []deck.Card) int {
	for length := len(played); length >= 3; length-- {
		suffix := played[len(played)-length:]
		ordinals := make([]int, length)
		for i, c := range suffix {
			ordinals[i] = c.Ordinal()
		}
		if isRun(ordinals) {
			return length
		}
	}
	return 0
}
