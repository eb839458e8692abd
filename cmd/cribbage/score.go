package main

import (
	"fmt"
	"os"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/scoring"
)

// ScoreCmd counts a four-card hand or crib with a starter.
type ScoreCmd struct {
	Hand    string `required:"" help:"Four cards, e.g. '5h,5d,5c,Js'"`
	Starter string `required:"" help:"Starter card, e.g. '5s'"`
	Crib    bool   `help:"Count as the crib (flush needs all five cards)"`
}

func (c *ScoreCmd) Run() error {
	cards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return err
	}
	starter, err := deck.ParseCard(c.Starter)
	if err != nil {
		return err
	}

	count, title := scoring.ScoreHand, "Hand"
	if c.Crib {
		count, title = scoring.ScoreCrib, "Crib"
	}
	b, err := count(cards, starter)
	if err != nil {
		return err
	}

	printBreakdown(os.Stdout, fmt.Sprintf("%s %s + %s", title, deck.Join(cards), starter), b)
	return nil
}
