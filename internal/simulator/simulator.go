// Package simulator plays batches of cribbage games in parallel and delivers
// their records in game order.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/internal/player"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations.
type Config struct {
	Games int
	// Seed is the master seed; nil draws one from the operating system.
	Seed       *int64
	TrackSeeds bool
	Workers    int
	Names      [2]string
	Policies   [2]string
	Logger     *log.Logger
	Clock      quartz.Clock
	Observers  []Observer
	// GameLogging passes the logger down to each game so hands and plays
	// are logged as well as game results.
	GameLogging bool
}

// Observer receives each finished game with its counted hands, in game order.
// Returning an error stops the batch.
type Observer interface {
	OnGameComplete(rec game.GameRecord, hands []game.HandRecord) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(rec game.GameRecord, hands []game.HandRecord) error

func (f ObserverFunc) OnGameComplete(rec game.GameRecord, hands []game.HandRecord) error {
	return f(rec, hands)
}

// Result is the outcome of a batch.
type Result struct {
	Stats      *statistics.Statistics
	MasterSeed int64
	Started    time.Time
	Finished   time.Time
}

// Duration is the wall time the batch took.
func (r *Result) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Simulator runs cribbage game simulations.
type Simulator struct {
	config     Config
	masterSeed int64
	logger     *log.Logger
	clock      quartz.Clock
}

// New creates a new simulator with the given configuration.
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be greater than 0, got %d", config.Games)
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	for _, name := range config.Policies {
		if _, err := player.NewPolicy(name); err != nil {
			return nil, err
		}
	}

	s := &Simulator{
		config: config,
		logger: config.Logger,
		clock:  config.Clock,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.clock == nil {
		s.clock = quartz.NewReal()
	}
	if config.Seed != nil {
		s.masterSeed = *config.Seed
	} else {
		s.masterSeed = randutil.RandomSeed()
	}
	return s, nil
}

// MasterSeed returns the seed all per-game seeds derive from.
func (s *Simulator) MasterSeed() int64 {
	return s.masterSeed
}

// GameSeeds derives the per-game seeds for a master seed. Game n uses
// GameSeeds(master, n)[n-1] regardless of worker count.
func GameSeeds(master int64, games int) []int64 {
	stream := randutil.NewSeedStream(master)
	seeds := make([]int64, games)
	for i := range seeds {
		seeds[i] = stream.Next()
	}
	return seeds
}

type outcome struct {
	record game.GameRecord
	hands  []game.HandRecord
}

// Run plays every game and returns aggregate statistics. Games run in
// parallel but observers see them strictly in game order.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		Stats:      &statistics.Statistics{},
		MasterSeed: s.masterSeed,
		Started:    s.clock.Now(),
	}
	seeds := GameSeeds(s.masterSeed, s.config.Games)

	s.logger.Info("Starting simulation", "games", s.config.Games, "workers", s.config.Workers,
		"seed", s.masterSeed, "track_seeds", s.config.TrackSeeds)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	results := make(chan outcome, s.config.Workers)

	var runErr error
	go func() {
		defer close(results)
		for i, seed := range seeds {
			if gctx.Err() != nil {
				break
			}
			number := i + 1
			g.Go(func() error {
				rec, hands, err := s.PlayGame(number, seed)
				if err != nil {
					return err
				}
				select {
				case results <- outcome{record: rec, hands: hands}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
		}
		runErr = g.Wait()
	}()

	pending := make(map[int]outcome)
	next := 1
	var observeErr error
	for out := range results {
		if observeErr != nil {
			continue
		}
		pending[out.record.GameNumber] = out
		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := s.deliver(res.Stats, o); err != nil {
				observeErr = err
				cancel()
				break
			}
		}
	}

	if observeErr != nil {
		return nil, observeErr
	}
	if runErr != nil {
		return nil, runErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Finished = s.clock.Now()
	if err := res.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete", "games", res.Stats.Games,
		"p1_wins", res.Stats.Seats[0].Wins, "p2_wins", res.Stats.Seats[1].Wins,
		"avg_hands", fmt.Sprintf("%.1f", res.Stats.Mean()), "duration", res.Duration())
	return res, nil
}

func (s *Simulator) deliver(stats *statistics.Statistics, o outcome) error {
	stats.Add(statistics.ResultFromRecord(o.record))
	for _, obs := range s.config.Observers {
		if err := obs.OnGameComplete(o.record, o.hands); err != nil {
			return fmt.Errorf("game %d: %w", o.record.GameNumber, err)
		}
	}
	return nil
}

// PlayGame plays a single game with the given number and seed and returns
// its record and counted hands.
func (s *Simulator) PlayGame(number int, seed int64) (game.GameRecord, []game.HandRecord, error) {
	var policies [2]player.Policy
	for i, name := range s.config.Policies {
		p, err := player.NewPolicy(name)
		if err != nil {
			return game.GameRecord{}, nil, err
		}
		policies[i] = p
	}

	hands := &game.RecordingMonitor{}
	opts := []game.Option{
		game.WithSeed(seed),
		game.WithGameNumber(number),
		game.WithPolicies(policies[0], policies[1]),
		game.WithMonitor(hands),
	}
	if s.config.GameLogging {
		opts = append(opts, game.WithLogger(s.logger))
	}

	g, err := game.New(s.names(), opts...)
	if err != nil {
		return game.GameRecord{}, nil, err
	}
	winner, err := g.PlayGame()
	if err != nil {
		return game.GameRecord{}, nil, fmt.Errorf("game %d (seed %d): %w", number, seed, err)
	}

	rec := g.Record(s.clock.Now())
	if !s.config.TrackSeeds {
		rec.Seed = nil
	}

	s.logger.Info("Game complete", "game", number, "winner", winner.Name,
		"score", fmt.Sprintf("%d-%d", rec.Players[0].FinalScore, rec.Players[1].FinalScore),
		"hands", rec.HandsPlayed)
	if s.config.TrackSeeds {
		s.logger.Debug("Game seed", "game", number, "seed", seed)
	}
	return rec, hands.Hands, nil
}

func (s *Simulator) names() [2]string {
	names := s.config.Names
	if names[0] == "" {
		names[0] = "Player 1"
	}
	if names[1] == "" {
		names[1] = "Player 2"
	}
	return names
}
