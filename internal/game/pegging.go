package game

import (
	"fmt"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/player"
	"github.com/lox/cribbage/internal/rules"
	"github.com/lox/cribbage/internal/scoring"
)

// peg runs the play phase. The non-dealer leads; play alternates until both
// hands are empty, with the count reset after two consecutive goes or a 31.
func (g *Game) peg() error {
	current := 1 - g.dealer
	var round []deck.Card
	count := 0
	goes := 0
	last := -1 // seat of the last player to lay a card this round

	resetRound := func() {
		round = round[:0]
		count = 0
		goes = 0
		last = -1
		current = g.nextLeader()
	}

	for g.players[0].HasCards() || g.players[1].HasCards() {
		p := g.players[current]

		card, ok := p.ChoosePlayCard(count, g.rng)
		if !ok {
			if rules.HasPlayableCard(p.Cards(), count) {
				return fmt.Errorf("%w: %s said go at count %d holding %s",
					ErrIllegalPlay, p.Name, count, deck.Join(p.Cards()))
			}
			goes++
			g.emitPlay(p, deck.Card{}, true, count, scoring.PlayScore{})
			if goes < 2 {
				current = 1 - current
				continue
			}

			if last >= 0 {
				points := rules.GoPoints(true, count)
				g.emitGo(last, count, points)
				if g.award(last, points, player.PlayPhase, "go") {
					return nil
				}
			}
			resetRound()
			continue
		}

		if !rules.CanPlayCard(card, count) {
			return fmt.Errorf("%w: %s played %s at count %d", ErrIllegalPlay, p.Name, card, count)
		}
		if err := p.PlayCard(card); err != nil {
			return fmt.Errorf("%w: %w", ErrIllegalPlay, err)
		}

		round = append(round, card)
		count += card.Value()
		last = current
		goes = 0

		ps := scoring.ScorePlay(round)
		g.emitPlay(p, card, false, count, ps)
		if ps.Total() > 0 && g.award(current, ps.Total(), player.PlayPhase, ps.String()) {
			return nil
		}

		if count == rules.MaxPlayCount {
			resetRound()
			continue
		}
		current = 1 - current
	}
	return nil
}

// nextLeader is the non-dealer while they hold cards, otherwise the dealer.
func (g *Game) nextLeader() int {
	nonDealer := 1 - g.dealer
	if g.players[nonDealer].HasCards() {
		return nonDealer
	}
	return g.dealer
}

func (g *Game) emitPlay(p *player.Player, card deck.Card, isGo bool, count int, ps scoring.PlayScore) {
	if isGo {
		g.logger.Debug("Go", "player", p.Name, "count", count)
	} else {
		g.logger.Debug("Play", "player", p.Name, "card", card, "count", count)
	}
	g.monitor.OnPlay(PlayEvent{
		GameNumber: g.gameNumber,
		HandNumber: g.handNumber,
		Player:     p.Name,
		Card:       card,
		Go:         isGo,
		Count:      count,
		Points:     ps.Total(),
		Reasons:    ps.Reasons(),
	})
}

func (g *Game) emitGo(seat, count, points int) {
	g.monitor.OnPlay(PlayEvent{
		GameNumber: g.gameNumber,
		HandNumber: g.handNumber,
		Player:     g.players[seat].Name,
		Go:         true,
		Count:      count,
		Points:     points,
		Reasons:    []string{fmt.Sprintf("go for %d", points)},
	})
}
