// Package game runs two-player cribbage: dealing, discarding, the cut,
// pegging and counting, hand after hand until a player reaches 121.
//
// A Game owns a single generator and lends it to the deck and to player
// policies in a fixed order, so a seed fully determines the game.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/hand"
	"github.com/lox/cribbage/internal/player"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/rules"
)

var (
	// ErrGameOver is returned when a hand is requested from a finished game.
	ErrGameOver = errors.New("game is over")
	// ErrIllegalPlay is returned when a policy offers a card that would take
	// the count past 31 or that the player does not hold, or says go while
	// holding a playable card.
	ErrIllegalPlay = errors.New("illegal play")
)

// Phase is the current step of a hand.
type Phase int

const (
	PhaseDealing Phase = iota
	PhaseDiscarding
	PhaseCut
	PhasePegging
	PhaseCounting
	PhaseRotate
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseDiscarding:
		return "discarding"
	case PhaseCut:
		return "cut"
	case PhasePegging:
		return "pegging"
	case PhaseCounting:
		return "counting"
	case PhaseRotate:
		return "rotate"
	case PhaseWon:
		return "won"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Option configures a Game.
type Option func(*Game)

// WithSeed makes the game reproducible and records the seed on its GameRecord.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.seed = seed
		g.seedTracked = true
	}
}

// WithPolicies sets the policies for seats 0 and 1. Nil keeps the default.
func WithPolicies(p0, p1 player.Policy) Option {
	return func(g *Game) {
		g.policies = [2]player.Policy{p0, p1}
	}
}

// WithLogger sets the logger. Plays and scoring are logged at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMonitor attaches a monitor for hand and play events.
func WithMonitor(monitor Monitor) Option {
	return func(g *Game) {
		if monitor != nil {
			g.monitor = monitor
		}
	}
}

// WithGameNumber sets the game number carried on records.
func WithGameNumber(n int) Option {
	return func(g *Game) {
		g.gameNumber = n
	}
}

// Game is a single cribbage game between two players.
type Game struct {
	players  [2]*player.Player
	policies [2]player.Policy
	deck     *deck.Deck
	crib     *hand.Crib
	starter  *deck.Card
	rng      *rand.Rand

	seed        int64
	seedTracked bool
	gameNumber  int
	dealer      int
	handNumber  int
	phase       Phase
	winner      *player.Player

	// per-hand tracking for records
	dealt    [2][]deck.Card
	discards [2][]deck.Card
	hisHeels bool

	logger  *log.Logger
	monitor Monitor
}

// New creates a game between two distinctly named players. Without WithSeed
// the game draws a seed from the operating system and does not record it.
// The first dealer is chosen by one draw from the game's generator.
func New(names [2]string, opts ...Option) (*Game, error) {
	if names[0] == "" || names[1] == "" {
		return nil, fmt.Errorf("player names must not be empty")
	}
	if names[0] == names[1] {
		return nil, fmt.Errorf("player names must be distinct, got %q twice", names[0])
	}

	g := &Game{
		deck:       deck.New(),
		crib:       hand.NewCrib(),
		gameNumber: 1,
		phase:      PhaseDealing,
		logger:     log.New(io.Discard),
		monitor:    NullMonitor{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.seedTracked {
		g.seed = randutil.RandomSeed()
	}
	g.rng = randutil.New(g.seed)
	for i, name := range names {
		g.players[i] = player.New(name, g.policies[i])
	}
	g.logger = g.logger.WithPrefix("game").With("game", g.gameNumber)

	g.dealer = g.rng.IntN(2)
	return g, nil
}

// PlayGame plays hands until a player wins and returns the winner.
func (g *Game) PlayGame() (*player.Player, error) {
	for g.winner == nil {
		if err := g.PlayHand(); err != nil {
			return nil, err
		}
	}
	return g.winner, nil
}

// PlayHand plays one hand through counting, stopping as soon as a player
// reaches the winning score.
func (g *Game) PlayHand() error {
	if g.winner != nil {
		return ErrGameOver
	}

	g.handNumber++
	g.resetHand()

	dealer := g.players[g.dealer]
	g.logger.Info("Hand start", "hand", g.handNumber, "dealer", dealer.Name,
		"scores", fmt.Sprintf("%d-%d", g.players[0].Score(), g.players[1].Score()))
	g.monitor.OnHandStart(HandStart{
		GameNumber: g.gameNumber,
		HandNumber: g.handNumber,
		Dealer:     dealer.Name,
		Scores:     [2]int{g.players[0].Score(), g.players[1].Score()},
	})

	g.phase = PhaseDealing
	if err := g.deal(); err != nil {
		return fmt.Errorf("hand %d: failed to deal: %w", g.handNumber, err)
	}

	g.phase = PhaseDiscarding
	if err := g.discard(); err != nil {
		return fmt.Errorf("hand %d: failed to discard: %w", g.handNumber, err)
	}

	g.phase = PhaseCut
	if err := g.cut(); err != nil {
		return fmt.Errorf("hand %d: failed to cut: %w", g.handNumber, err)
	}
	if g.winner != nil {
		return nil
	}

	g.phase = PhasePegging
	if err := g.peg(); err != nil {
		return fmt.Errorf("hand %d: %w", g.handNumber, err)
	}
	if g.winner != nil {
		return nil
	}

	g.phase = PhaseCounting
	if err := g.count(); err != nil {
		return fmt.Errorf("hand %d: failed to count: %w", g.handNumber, err)
	}
	if g.winner != nil {
		return nil
	}

	g.phase = PhaseRotate
	g.dealer = 1 - g.dealer
	return nil
}

func (g *Game) resetHand() {
	g.deck.Reset()
	g.crib.Clear()
	g.starter = nil
	g.hisHeels = false
	for i, p := range g.players {
		p.ClearHand()
		g.dealt[i] = nil
		g.discards[i] = nil
	}
}

func (g *Game) deal() error {
	g.deck.Shuffle(g.rng)
	for range rules.InitialHandSize {
		for i, p := range g.players {
			card, err := g.deck.DealOne()
			if err != nil {
				return err
			}
			p.AddCards(card)
			g.dealt[i] = append(g.dealt[i], card)
		}
	}
	return nil
}

func (g *Game) discard() error {
	for i, p := range g.players {
		cards, err := p.ChooseDiscards(i == g.dealer, g.rng)
		if err != nil {
			return err
		}
		if err := p.DiscardToCrib(cards); err != nil {
			return err
		}
		g.discards[i] = cards
		g.crib.Add(cards...)
		g.logger.Debug("Discard", "player", p.Name, "crib", deck.Join(cards), "kept", deck.Join(p.Kept()))
	}
	return nil
}

func (g *Game) cut() error {
	starter, err := g.deck.DealOne()
	if err != nil {
		return err
	}
	g.starter = &starter
	g.logger.Debug("Cut", "starter", starter)

	if rules.IsHisHeels(starter) {
		g.hisHeels = true
		g.award(g.dealer, rules.HisHeelsPoints, player.PlayPhase, "his heels")
	}
	return nil
}

// award credits points and reports whether the player has now won.
func (g *Game) award(seat, points int, phase player.Phase, reason string) bool {
	p := g.players[seat]
	p.AddScore(points, phase)
	if points > 0 {
		g.logger.Debug("Score", "player", p.Name, "points", points, "reason", reason, "total", p.Score())
	}
	if rules.IsGameWon(p.Score()) {
		g.winner = p
		g.phase = PhaseWon
		g.logger.Info("Game won", "winner", p.Name, "hand", g.handNumber,
			"scores", fmt.Sprintf("%d-%d", g.players[0].Score(), g.players[1].Score()))
		return true
	}
	return false
}

// Scores returns each player's current score keyed by name.
func (g *Game) Scores() map[string]int {
	return map[string]int{
		g.players[0].Name: g.players[0].Score(),
		g.players[1].Name: g.players[1].Score(),
	}
}

// Winner returns the winning player, or nil while the game is in progress.
func (g *Game) Winner() *player.Player { return g.winner }

// Phase returns the phase the game is in.
func (g *Game) Phase() Phase { return g.phase }

// HandNumber returns the number of hands started so far.
func (g *Game) HandNumber() int { return g.handNumber }

// Seed returns the seed driving the game's generator.
func (g *Game) Seed() int64 { return g.seed }

// GameNumber returns the game number carried on records.
func (g *Game) GameNumber() int { return g.gameNumber }

// Dealer returns the current dealer.
func (g *Game) Dealer() *player.Player { return g.players[g.dealer] }

// Starter returns the starter card, or nil before the cut.
func (g *Game) Starter() *deck.Card { return g.starter }

// Players returns both players in seat order.
func (g *Game) Players() [2]*player.Player { return g.players }

// Record summarises the game as it stands.
func (g *Game) Record(ts time.Time) GameRecord {
	rec := GameRecord{
		GameNumber:  g.gameNumber,
		Timestamp:   ts,
		HandsPlayed: g.handNumber,
	}
	if g.winner != nil {
		rec.Winner = g.winner.Name
	}
	for i, p := range g.players {
		rec.Players[i] = PlayerTotals{
			Name:        p.Name,
			FinalScore:  p.Score(),
			PlayPoints:  p.PlayPoints(),
			CountPoints: p.CountPoints(),
		}
	}
	if g.seedTracked {
		seed := g.seed
		rec.Seed = &seed
	}
	return rec
}
