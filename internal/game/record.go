package game

import (
	"time"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// PlayerHandRecord is one player's side of a counted hand.
type PlayerHandRecord struct {
	Name        string
	Dealt       []deck.Card
	Kept        []deck.Card
	Discarded   []deck.Card
	Score       int
	Breakdown   scoring.Breakdown
	ScoreBefore int
	ScoreAfter  int
}

// CribRecord is the dealer's crib as counted.
type CribRecord struct {
	Cards     []deck.Card
	Score     int
	Breakdown scoring.Breakdown
}

// HandRecord captures a hand whose counting phase completed. Players are in
// seat order, not dealing order.
type HandRecord struct {
	GameNumber int
	HandNumber int
	Dealer     string
	Players    [2]PlayerHandRecord
	Crib       CribRecord
	Starter    deck.Card
	HisHeels   bool
}

// PlayerTotals summarises a player's finished game.
type PlayerTotals struct {
	Name        string
	FinalScore  int
	PlayPoints  int
	CountPoints int
}

// GameRecord summarises a finished game. Seed is nil when seed tracking is off.
type GameRecord struct {
	GameNumber  int
	Timestamp   time.Time
	Winner      string
	Players     [2]PlayerTotals
	HandsPlayed int
	Seed        *int64
}

// WinnerIndex returns the seat of the winner, or -1 if there is none.
func (r GameRecord) WinnerIndex() int {
	for i, p := range r.Players {
		if r.Winner != "" && p.Name == r.Winner {
			return i
		}
	}
	return -1
}
