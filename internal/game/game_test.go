package game

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/player"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var names = [2]string{"Player 1", "Player 2"}

func newTestGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := New(names, opts...)
	require.NoError(t, err)
	return g
}

// eventMonitor records everything a game reports.
type eventMonitor struct {
	starts []HandStart
	plays  []PlayEvent
	hands  []HandRecord
}

func (m *eventMonitor) OnHandStart(s HandStart)     { m.starts = append(m.starts, s) }
func (m *eventMonitor) OnPlay(e PlayEvent)          { m.plays = append(m.plays, e) }
func (m *eventMonitor) OnHandComplete(r HandRecord) { m.hands = append(m.hands, r) }

func TestNewValidatesNames(t *testing.T) {
	_, err := New([2]string{"A", "A"})
	assert.Error(t, err)

	_, err = New([2]string{"A", ""})
	assert.Error(t, err)
}

func TestFirstDealerDrawnFromSeed(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g := newTestGame(t, WithSeed(seed))
		want := randutil.New(seed).IntN(2)
		assert.Equal(t, names[want], g.Dealer().Name, "seed %d", seed)
	}
}

func TestPlayGameReproducible(t *testing.T) {
	run := func() (GameRecord, *eventMonitor) {
		mon := &eventMonitor{}
		g := newTestGame(t, WithSeed(42), WithMonitor(mon))
		_, err := g.PlayGame()
		require.NoError(t, err)
		return g.Record(time.Unix(0, 0)), mon
	}

	recA, monA := run()
	recB, monB := run()
	assert.Equal(t, recA, recB)
	assert.Equal(t, monA.hands, monB.hands)
	assert.Equal(t, monA.plays, monB.plays)
	require.NotNil(t, recA.Seed)
	assert.Equal(t, int64(42), *recA.Seed)
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := &RecordingMonitor{}
	b := &RecordingMonitor{}
	ga := newTestGame(t, WithSeed(1), WithMonitor(a))
	gb := newTestGame(t, WithSeed(2), WithMonitor(b))
	_, err := ga.PlayGame()
	require.NoError(t, err)
	_, err = gb.PlayGame()
	require.NoError(t, err)
	assert.NotEqual(t, a.Hands, b.Hands)
}

func TestUntrackedSeedIsNotRecorded(t *testing.T) {
	g := newTestGame(t)
	_, err := g.PlayGame()
	require.NoError(t, err)
	assert.Nil(t, g.Record(time.Now()).Seed)
}

func TestGamesTerminate(t *testing.T) {
	const sanityBound = 10000
	for seed := int64(0); seed < 50; seed++ {
		g := newTestGame(t, WithSeed(seed))
		winner, err := g.PlayGame()
		require.NoError(t, err)
		require.NotNil(t, winner)

		assert.Less(t, g.HandNumber(), sanityBound)
		assert.Equal(t, PhaseWon, g.Phase())
		assert.GreaterOrEqual(t, winner.Score(), rules.WinningScore)

		scores := g.Scores()
		loser := names[0]
		if winner.Name == names[0] {
			loser = names[1]
		}
		assert.Less(t, scores[loser], rules.WinningScore)
		for _, p := range g.Players() {
			assert.Equal(t, p.Score(), p.PlayPoints()+p.CountPoints())
		}
	}
}

func TestPlayHandAfterGameOver(t *testing.T) {
	g := newTestGame(t, WithSeed(7))
	_, err := g.PlayGame()
	require.NoError(t, err)

	err = g.PlayHand()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestHandRecordsAreConsistent(t *testing.T) {
	for seed := int64(100); seed < 110; seed++ {
		mon := &eventMonitor{}
		g := newTestGame(t, WithSeed(seed), WithMonitor(mon), WithGameNumber(int(seed)))
		_, err := g.PlayGame()
		require.NoError(t, err)

		require.NotEmpty(t, mon.hands)
		assert.Len(t, mon.starts, g.HandNumber())

		prevDealer := ""
		for _, h := range mon.hands {
			assert.Equal(t, int(seed), h.GameNumber)

			seen := map[deck.Card]bool{h.Starter: true}
			var crib []deck.Card
			for i, p := range h.Players {
				assert.Equal(t, names[i], p.Name)
				require.Len(t, p.Dealt, rules.InitialHandSize)
				require.Len(t, p.Kept, rules.PlayHandSize)
				require.Len(t, p.Discarded, rules.CardsToDiscard)
				assert.ElementsMatch(t, p.Dealt, append(append([]deck.Card{}, p.Kept...), p.Discarded...))
				assert.Equal(t, p.Breakdown.Total(), p.Score)
				assert.GreaterOrEqual(t, p.ScoreAfter, p.ScoreBefore+p.Score)

				for _, c := range p.Dealt {
					assert.False(t, seen[c], "card %s dealt twice", c)
					seen[c] = true
				}
				crib = append(crib, p.Discarded...)
			}
			assert.ElementsMatch(t, crib, h.Crib.Cards)
			assert.Equal(t, h.Crib.Breakdown.Total(), h.Crib.Score)
			assert.Equal(t, rules.IsHisHeels(h.Starter), h.HisHeels)

			// Dealer alternates on consecutive completed hands.
			if prevDealer != "" && h.HandNumber > 1 {
				assert.NotEqual(t, prevDealer, h.Dealer)
			}
			prevDealer = h.Dealer
		}
	}
}

func TestPeggingGoAndReset(t *testing.T) {
	mon := &eventMonitor{}
	g := newTestGame(t, WithSeed(1), WithMonitor(mon),
		WithPolicies(player.OrderedPolicy{}, player.OrderedPolicy{}))
	g.dealer = 0
	dealer, pone := g.players[0], g.players[1]
	dealer.AddCards(deck.MustParseCards("Kh,Jd,9c,6d")...)
	pone.AddCards(deck.MustParseCards("Ks,Qs,5h,2c")...)

	require.NoError(t, g.peg())

	// Ks Kh(pair 2) Qs=30, both go: pone 1.
	// 5h Jd(15 for 2) 2c 9c=26, both go: dealer 1.
	// Dealer leads 6d alone; no point for the last card.
	assert.Equal(t, 5, dealer.Score())
	assert.Equal(t, 1, pone.Score())
	assert.Equal(t, 5, dealer.PlayPoints())
	assert.False(t, dealer.HasCards())
	assert.False(t, pone.HasCards())

	var awards []PlayEvent
	for _, e := range mon.plays {
		if e.Points > 0 {
			awards = append(awards, e)
		}
	}
	require.Len(t, awards, 4)
	assert.Equal(t, []string{"pair for 2"}, awards[0].Reasons)
	assert.Equal(t, "Player 2", awards[1].Player)
	assert.Equal(t, []string{"go for 1"}, awards[1].Reasons)
	assert.Equal(t, []string{"15 for 2"}, awards[2].Reasons)
	assert.Equal(t, "Player 1", awards[3].Player)
	assert.Equal(t, 26, awards[3].Count)

	last := mon.plays[len(mon.plays)-1]
	assert.Equal(t, deck.MustParseCard("6d"), last.Card)
	assert.Equal(t, 6, last.Count)
}

func TestPeggingThirtyOneResets(t *testing.T) {
	mon := &eventMonitor{}
	g := newTestGame(t, WithSeed(1), WithMonitor(mon),
		WithPolicies(player.OrderedPolicy{}, player.OrderedPolicy{}))
	g.dealer = 0
	dealer, pone := g.players[0], g.players[1]
	dealer.AddCards(deck.MustParseCards("Qh,6d,3s")...)
	pone.AddCards(deck.MustParseCards("Ks,5c,4h")...)

	require.NoError(t, g.peg())

	// Ks Qh 5c 6d = 31 for 2 to the dealer, then pone leads 4h, dealer 3s.
	assert.Equal(t, 2, dealer.Score())
	assert.Equal(t, 0, pone.Score())

	for _, e := range mon.plays {
		assert.False(t, e.Go, "no go should be said after 31")
	}
	last := mon.plays[len(mon.plays)-1]
	assert.Equal(t, 7, last.Count)
}

func TestPeggingRejectsIllegalPlay(t *testing.T) {
	g := newTestGame(t, WithSeed(1), WithPolicies(cheatPolicy{}, cheatPolicy{}))
	g.dealer = 1
	g.players[0].AddCards(deck.MustParseCards("Ks,Qs,Js,10s")...)
	g.players[1].AddCards(deck.MustParseCards("Kh,Qh,Jh,10h")...)

	err := g.peg()
	assert.ErrorIs(t, err, ErrIllegalPlay)
}

func TestPeggingRejectsGoWithPlayableCard(t *testing.T) {
	g := newTestGame(t, WithSeed(1), WithPolicies(stallPolicy{}, stallPolicy{}))
	g.dealer = 1
	g.players[0].AddCards(deck.MustParseCards("Ks,Qs,Js,10s")...)
	g.players[1].AddCards(deck.MustParseCards("Kh,Qh,Jh,10h")...)

	err := g.peg()
	require.ErrorIs(t, err, ErrIllegalPlay)
	assert.ErrorContains(t, err, "said go at count 0")
}

// stallPolicy always says go.
type stallPolicy struct{ player.OrderedPolicy }

func (stallPolicy) ChoosePlayCard([]deck.Card, int, *rand.Rand) (deck.Card, bool) {
	return deck.Card{}, false
}

// cheatPolicy always plays its first card, legal or not.
type cheatPolicy struct{ player.OrderedPolicy }

func (cheatPolicy) ChoosePlayCard(cards []deck.Card, _ int, _ *rand.Rand) (deck.Card, bool) {
	if len(cards) == 0 {
		return deck.Card{}, false
	}
	return cards[0], true
}

func TestPeggingWinStopsPlay(t *testing.T) {
	g := newTestGame(t, WithSeed(1), WithPolicies(player.OrderedPolicy{}, player.OrderedPolicy{}))
	g.dealer = 0
	dealer, pone := g.players[0], g.players[1]
	dealer.AddScore(119, player.CountPhase)
	dealer.AddCards(deck.MustParseCards("Kh,2d")...)
	pone.AddCards(deck.MustParseCards("Ks,3c")...)

	require.NoError(t, g.peg())
	assert.Equal(t, dealer, g.Winner())
	assert.Equal(t, PhaseWon, g.Phase())
	assert.True(t, dealer.HasCards(), "play stops as soon as the game is won")
}

func TestCutHisHeels(t *testing.T) {
	g := newTestGame(t, WithSeed(1))
	g.dealer = 1

	// An unshuffled deck has the jack of spades eleventh.
	d := deck.New()
	_, err := d.Deal(10)
	require.NoError(t, err)
	g.deck = d

	require.NoError(t, g.cut())
	require.NotNil(t, g.Starter())
	assert.Equal(t, deck.MustParseCard("Js"), *g.Starter())
	assert.True(t, g.hisHeels)
	assert.Equal(t, rules.HisHeelsPoints, g.players[1].Score())
	assert.Equal(t, rules.HisHeelsPoints, g.players[1].PlayPoints())
	assert.Equal(t, 0, g.players[0].Score())
	assert.Nil(t, g.Winner())
}

func TestCutHisHeelsWins(t *testing.T) {
	g := newTestGame(t, WithSeed(1))
	g.dealer = 0
	g.players[0].AddScore(120, player.CountPhase)

	d := deck.New()
	_, err := d.Deal(10)
	require.NoError(t, err)
	g.deck = d

	require.NoError(t, g.cut())
	assert.Equal(t, g.players[0], g.Winner())
	assert.Equal(t, PhaseWon, g.Phase())
}

func setupCount(t *testing.T, g *Game, dealt [2]string, discards [2]string, starter string) {
	t.Helper()
	for i, p := range g.players {
		cards := deck.MustParseCards(dealt[i])
		p.AddCards(cards...)
		g.dealt[i] = cards
		d := deck.MustParseCards(discards[i])
		require.NoError(t, p.DiscardToCrib(d))
		g.discards[i] = d
		g.crib.Add(d...)
	}
	s := deck.MustParseCard(starter)
	g.starter = &s
}

func TestCountingEmitsRecord(t *testing.T) {
	mon := &RecordingMonitor{}
	g := newTestGame(t, WithSeed(1), WithMonitor(mon))
	g.dealer = 1
	g.handNumber = 3
	setupCount(t, g,
		[2]string{"5s,5c,5d,Jh,2c,3c", "3s,4h,6h,Ac,Kd,8s"},
		[2]string{"2c,3c", "Kd,8s"},
		"5h")
	g.players[1].AddScore(10, player.PlayPhase)

	require.NoError(t, g.count())
	require.Len(t, mon.Hands, 1)
	h := mon.Hands[0]

	assert.Equal(t, 3, h.HandNumber)
	assert.Equal(t, names[1], h.Dealer)

	pone := h.Players[0]
	assert.Equal(t, 29, pone.Score)
	assert.Equal(t, 0, pone.ScoreBefore)
	assert.Equal(t, 29, pone.ScoreAfter)

	dealer := h.Players[1]
	assert.Equal(t, 10, dealer.ScoreBefore)
	assert.Equal(t, 10+dealer.Score+h.Crib.Score, dealer.ScoreAfter)
	assert.ElementsMatch(t, deck.MustParseCards("2c,3c,Kd,8s"), h.Crib.Cards)
	assert.Equal(t, deck.MustParseCard("5h"), h.Starter)
	assert.False(t, h.HisHeels)
	assert.Equal(t, 29, g.players[0].CountPoints())
}

func TestCountingNonDealerWinsFirst(t *testing.T) {
	mon := &RecordingMonitor{}
	g := newTestGame(t, WithSeed(1), WithMonitor(mon))
	g.dealer = 1
	setupCount(t, g,
		[2]string{"5s,5c,5d,Jh,2c,3c", "3s,4h,6h,Ac,Kd,8s"},
		[2]string{"2c,3c", "Kd,8s"},
		"5h")
	g.players[0].AddScore(100, player.PlayPhase)
	g.players[1].AddScore(120, player.PlayPhase)

	require.NoError(t, g.count())
	assert.Equal(t, g.players[0], g.Winner())
	assert.Equal(t, 120, g.players[1].Score(), "dealer never counts")
	assert.Empty(t, mon.Hands)
}

func TestCountingDealerHandWinsSkipsCrib(t *testing.T) {
	mon := &RecordingMonitor{}
	g := newTestGame(t, WithSeed(1), WithMonitor(mon))
	g.dealer = 1
	setupCount(t, g,
		[2]string{"3s,4h,6h,Ac,Kd,8s", "5s,5c,5d,Jh,2c,3c"},
		[2]string{"Kd,8s", "2c,3c"},
		"5h")
	g.players[1].AddScore(115, player.PlayPhase)

	require.NoError(t, g.count())
	assert.Equal(t, g.players[1], g.Winner())
	assert.Equal(t, PhaseWon, g.Phase())
	assert.Less(t, g.players[0].Score(), 121)
	assert.Equal(t, 29, g.players[1].CountPoints(), "crib is never counted")
	assert.Equal(t, 115+29, g.players[1].Score())
	assert.Empty(t, mon.Hands)
}

func TestMultiMonitor(t *testing.T) {
	assert.Equal(t, NullMonitor{}, NewMultiMonitor())
	assert.Equal(t, NullMonitor{}, NewMultiMonitor(nil, nil))

	a := &RecordingMonitor{}
	assert.Same(t, a, NewMultiMonitor(nil, a))

	b := &RecordingMonitor{}
	m := NewMultiMonitor(a, b)
	m.OnHandComplete(HandRecord{HandNumber: 9})
	assert.Len(t, a.Hands, 1)
	assert.Len(t, b.Hands, 1)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "pegging", PhasePegging.String())
	assert.Equal(t, "won", PhaseWon.String())
	assert.Equal(t, "Phase(42)", Phase(42).String())
}

func TestGameRecordWinnerIndex(t *testing.T) {
	g := newTestGame(t, WithSeed(3))
	winner, err := g.PlayGame()
	require.NoError(t, err)

	rec := g.Record(time.Now())
	require.GreaterOrEqual(t, rec.WinnerIndex(), 0)
	assert.Equal(t, winner.Name, rec.Players[rec.WinnerIndex()].Name)
	assert.Equal(t, winner.Score(), rec.Players[rec.WinnerIndex()].FinalScore)
	assert.Equal(t, g.HandNumber(), rec.HandsPlayed)

	assert.Equal(t, -1, GameRecord{}.WinnerIndex())
}
