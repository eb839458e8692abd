package game

import (
	"github.com/lox/cribbage/internal/player"
	"github.com/lox/cribbage/internal/scoring"
)

// count scores the non-dealer's hand, the dealer's hand and then the crib,
// stopping at the first score that wins. A hand record is emitted only when
// all three have been counted.
func (g *Game) count() error {
	starter := *g.starter
	nonDealer := 1 - g.dealer
	rec := HandRecord{
		GameNumber: g.gameNumber,
		HandNumber: g.handNumber,
		Dealer:     g.players[g.dealer].Name,
		Starter:    starter,
		HisHeels:   g.hisHeels,
	}

	for _, seat := range [2]int{nonDealer, g.dealer} {
		p := g.players[seat]
		before := p.Score()
		kept := p.Kept()

		b, err := scoring.ScoreHand(kept, starter)
		if err != nil {
			return err
		}
		g.logger.Debug("Hand count", "player", p.Name, "hand", kept, "breakdown", b)
		won := g.award(seat, b.Total(), player.CountPhase, "hand")

		rec.Players[seat] = PlayerHandRecord{
			Name:        p.Name,
			Dealt:       g.dealt[seat],
			Kept:        kept,
			Discarded:   g.discards[seat],
			Score:       b.Total(),
			Breakdown:   b,
			ScoreBefore: before,
			ScoreAfter:  p.Score(),
		}
		if won {
			return nil
		}
	}

	cribCards := g.crib.Cards()
	b, err := scoring.ScoreCrib(cribCards, starter)
	if err != nil {
		return err
	}
	g.logger.Debug("Crib count", "player", g.players[g.dealer].Name, "crib", cribCards, "breakdown", b)
	won := g.award(g.dealer, b.Total(), player.CountPhase, "crib")

	// The dealer's score after counting includes the crib.
	rec.Players[g.dealer].ScoreAfter = g.players[g.dealer].Score()
	rec.Crib = CribRecord{Cards: cribCards, Score: b.Total(), Breakdown: b}
	g.monitor.OnHandComplete(rec)

	if !won {
		g.logger.Debug("Hand complete", "hand", g.handNumber,
			"nondealer", rec.Players[nonDealer].Score, "dealer", rec.Players[g.dealer].Score, "crib", b.Total())
	}
	return nil
}
