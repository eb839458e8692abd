// Package rules holds the constants and pure predicates of two-player cribbage.
package rules

import "github.com/lox/cribbage/internal/deck"

const (
	WinningScore    = 121
	InitialHandSize = 6
	CardsToDiscard  = 2
	PlayHandSize    = 4
	CribSize        = 4
	MaxPlayCount    = 31
	HisHeelsPoints  = 2
)

// IsGameWon reports whether score has reached the winning threshold.
func IsGameWon(score int) bool {
	return score >= WinningScore
}

// CanPlayCard reports whether card can be laid without taking the count past 31.
func CanPlayCard(card deck.Card, count int) bool {
	return count+card.Value() <= MaxPlayCount
}

// HasPlayableCard reports whether any of cards can be legally played.
func HasPlayableCard(cards []deck.Card, count int) bool {
	for _, c := range cards {
		if CanPlayCard(c, count) {
			return true
		}
	}
	return false
}

// ValidDiscard reports whether discarding discardSize cards from a hand of
// handSize is legal.
func ValidDiscard(handSize, discardSize int) bool {
	return handSize == InitialHandSize && discardSize == CardsToDiscard
}

// GoPoints returns the points owed when a round of play ends: 2 for reaching
// exactly 31 regardless of who asks, otherwise 1 to the last player to lay a card.
func GoPoints(isLastToPlay bool, count int) int {
	if count == MaxPlayCount {
		return 2
	}
	if isLastToPlay {
		return 1
	}
	return 0
}

// IsHisHeels reports whether the starter earns the dealer "his heels".
func IsHisHeels(starter deck.Card) bool {
	return starter.IsJack()
}
