package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/coder/quartz"
	"github.com/lox/cribbage/internal/config"
	"github.com/lox/cribbage/internal/export"
	"github.com/lox/cribbage/internal/runlog"
	"github.com/lox/cribbage/internal/simulator"
)

// SimulateCmd runs a batch of games and writes the run directory.
type SimulateCmd struct {
	Config       string `kong:"default='cribbage.hcl',help='HCL configuration file (missing file uses defaults)'"`
	Games        *int   `kong:"short='n',help='Number of games to simulate'"`
	Seed         *int64 `kong:"help='Master seed for the whole batch (random if unset)'"`
	NoTrackSeeds bool   `kong:"help='Do not record per-game seeds'"`
	Verbosity    *int   `kong:"short='V',help='Verbosity: 0 progress, 1 per-game, 2 per-play'"`
	Debug        bool   `kong:"help='Enable debug logging with caller information'"`
	Workers      *int   `kong:"short='w',help='Parallel workers (default GOMAXPROCS)'"`
	LogDir       string `kong:"help='Base directory for run logs'"`
	HandHistory  bool   `kong:"help='Write a TOML hand history alongside the CSV files'"`
	Policy1      string `kong:"name='policy1',help='Policy for player 1 (random, ordered)'"`
	Policy2      string `kong:"name='policy2',help='Policy for player 2 (random, ordered)'"`
}

func (c *SimulateCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	settings := cfg.Simulation

	run, err := runlog.Create(settings.LogDir, quartz.NewReal())
	if err != nil {
		return err
	}
	defer func() { _ = run.Close() }()

	logFile, err := run.Create(runlog.LogFile)
	if err != nil {
		return err
	}
	logger := newLogger(io.MultiWriter(os.Stderr, logFile), settings.Verbosity, c.Debug).
		With("run", run.ID.String())
	logger.Info("Starting simulation", "games", settings.Games, "dir", run.Dir)

	sink, err := openSink(run, settings.HandHistory)
	if err != nil {
		return err
	}

	var progress *progressReporter
	observers := []simulator.Observer{sink}
	if settings.Verbosity == 0 && !c.Debug {
		progress = startProgress(os.Stderr, settings.Games)
		observers = append(observers, progress)
	}

	policies := [2]string{cfg.Players[0].Policy, cfg.Players[1].Policy}
	sim, err := simulator.New(simulator.Config{
		Games:       settings.Games,
		Seed:        settings.Seed,
		TrackSeeds:  cfg.TrackSeeds(),
		Workers:     settings.Workers,
		Names:       cfg.PlayerNames(),
		Policies:    policies,
		Logger:      logger,
		Observers:   observers,
		GameLogging: settings.Verbosity >= 1 || c.Debug,
	})
	if err != nil {
		return err
	}
	logger.Info("Master seed", "seed", sim.MasterSeed())

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	res, runErr := sim.Run(ctx)
	if progress != nil {
		progress.Finish()
	}
	if runErr != nil {
		logger.Error("Simulation stopped", "error", runErr)
		return errors.Join(runErr, run.Close())
	}

	workers := settings.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var seats [2]runlog.Seat
	for i, p := range cfg.Players {
		seats[i] = runlog.Seat{Name: p.Name, Policy: p.Policy}
	}
	summary := runlog.NewSummary(run, res, seats, workers, cfg.TrackSeeds())
	if err := run.WriteSummary(summary); err != nil {
		return err
	}
	if err := res.Stats.Validate(); err != nil {
		logger.Warn("Statistics check failed", "error", err)
	}
	logger.Info("Simulation complete", "games", res.Stats.Games, "duration", res.Duration())

	if err := run.Close(); err != nil {
		return fmt.Errorf("failed to close run files: %w", err)
	}
	files := []string{runlog.LogFile, runlog.GamesFile, runlog.HandsFile}
	if settings.HandHistory {
		files = append(files, runlog.HistoryFile)
	}
	files = append(files, runlog.SummaryFile)
	printSummary(os.Stdout, summary, run, files, settings.Verbosity >= 1)
	return nil
}

// loadConfig reads the HCL file and applies flag overrides on top.
func (c *SimulateCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	s := &cfg.Simulation
	if c.Games != nil {
		s.Games = *c.Games
	}
	if c.Seed != nil {
		s.Seed = c.Seed
	}
	if c.NoTrackSeeds {
		track := false
		s.TrackSeeds = &track
	}
	if c.Verbosity != nil {
		s.Verbosity = *c.Verbosity
	}
	if c.Workers != nil {
		s.Workers = *c.Workers
	}
	if c.LogDir != "" {
		s.LogDir = c.LogDir
	}
	if c.HandHistory {
		s.HandHistory = true
	}
	if c.Policy1 != "" {
		cfg.Players[0].Policy = c.Policy1
	}
	if c.Policy2 != "" {
		cfg.Players[1].Policy = c.Policy2
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openSink(run *runlog.Run, history bool) (*export.Sink, error) {
	gamesFile, err := run.Create(runlog.GamesFile)
	if err != nil {
		return nil, err
	}
	games, err := export.NewGameCSV(gamesFile)
	if err != nil {
		return nil, err
	}

	handsFile, err := run.Create(runlog.HandsFile)
	if err != nil {
		return nil, err
	}
	hands, err := export.NewHandCSV(handsFile)
	if err != nil {
		return nil, err
	}

	sink := &export.Sink{Games: games, Hands: hands}
	if history {
		historyFile, err := run.Create(runlog.HistoryFile)
		if err != nil {
			return nil, err
		}
		sink.History = export.NewHistoryWriter(historyFile)
	}
	return sink, nil
}
