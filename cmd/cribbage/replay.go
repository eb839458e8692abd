package main

import (
	"fmt"
	"os"

	"github.com/lox/cribbage/internal/config"
	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/export"
	"github.com/lox/cribbage/internal/simulator"
)

// ReplayCmd replays one game from its per-game seed, as recorded in the
// random_seed column of games.csv.
type ReplayCmd struct {
	Seed       int64  `kong:"required,help='Per-game seed to replay'"`
	GameNumber int    `kong:"default='1',help='Game number to label the replay with'"`
	Policy1    string `kong:"name='policy1',default='random',help='Policy for player 1'"`
	Policy2    string `kong:"name='policy2',default='random',help='Policy for player 2'"`
	Quiet      bool   `kong:"short='q',help='Suppress play-by-play logging'"`
	History    bool   `kong:"help='Print the TOML hand history to stdout'"`
}

func (c *ReplayCmd) Run() error {
	verbosity := config.MaxVerbosity
	if c.Quiet {
		verbosity = 0
	}
	logger := newLogger(os.Stderr, verbosity, false)

	sim, err := simulator.New(simulator.Config{
		Games:       1,
		Seed:        &c.Seed,
		TrackSeeds:  true,
		Workers:     1,
		Names:       config.DefaultPlayerNames,
		Policies:    [2]string{c.Policy1, c.Policy2},
		Logger:      logger,
		GameLogging: true,
	})
	if err != nil {
		return err
	}

	rec, hands, err := sim.PlayGame(c.GameNumber, c.Seed)
	if err != nil {
		return err
	}

	if c.History {
		return export.NewHistoryWriter(os.Stdout).Write(hands...)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Game %d (seed %d)", rec.GameNumber, c.Seed)))
	for _, h := range hands {
		fmt.Printf("%s dealer %s, starter %s\n",
			labelStyle.Render(fmt.Sprintf("Hand %2d", h.HandNumber)), h.Dealer, h.Starter)
		for _, p := range h.Players {
			fmt.Printf("  %-10s %-16s %2d  (%d -> %d)\n",
				p.Name, deck.Join(p.Kept), p.Score, p.ScoreBefore, p.ScoreAfter)
		}
		fmt.Printf("  %-10s %-16s %2d\n", "crib", deck.Join(h.Crib.Cards), h.Crib.Score)
	}
	fmt.Printf("%s %s wins %d-%d after %d hands\n",
		winStyle.Render("Result:"), nameStyle.Render(rec.Winner),
		rec.Players[0].FinalScore, rec.Players[1].FinalScore, rec.HandsPlayed)
	return nil
}
