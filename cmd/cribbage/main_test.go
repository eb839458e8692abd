package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/cribbage/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	parser, err := kong.New(cli,
		kong.Name("cribbage"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	return parser
}

func TestParseScoreCommand(t *testing.T) {
	var cli CLI
	ctx, err := newParser(t, &cli).Parse([]string{"score", "--hand", "5h,5d,5c,Js", "--starter", "5s", "--crib"})
	require.NoError(t, err)

	assert.Equal(t, "score", ctx.Command())
	assert.Equal(t, "5h,5d,5c,Js", cli.Score.Hand)
	assert.Equal(t, "5s", cli.Score.Starter)
	assert.True(t, cli.Score.Crib)
}

func TestParseSimulateFlags(t *testing.T) {
	var cli CLI
	_, err := newParser(t, &cli).Parse([]string{
		"simulate", "-n", "25", "--seed", "42", "--no-track-seeds", "--policy2", "ordered",
	})
	require.NoError(t, err)

	require.NotNil(t, cli.Simulate.Games)
	assert.Equal(t, 25, *cli.Simulate.Games)
	require.NotNil(t, cli.Simulate.Seed)
	assert.Equal(t, int64(42), *cli.Simulate.Seed)
	assert.True(t, cli.Simulate.NoTrackSeeds)
	assert.Nil(t, cli.Simulate.Workers)
	assert.Equal(t, "ordered", cli.Simulate.Policy2)
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	games := 7
	seed := int64(3)
	cmd := SimulateCmd{
		Config:       filepath.Join(t.TempDir(), "missing.hcl"),
		Games:        &games,
		Seed:         &seed,
		NoTrackSeeds: true,
		LogDir:       "out",
		Policy1:      "ordered",
	}

	cfg, err := cmd.loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Simulation.Games)
	assert.Equal(t, int64(3), *cfg.Simulation.Seed)
	assert.False(t, cfg.TrackSeeds())
	assert.Equal(t, "out", cfg.Simulation.LogDir)
	assert.Equal(t, "ordered", cfg.Players[0].Policy)
	assert.Equal(t, "random", cfg.Players[1].Policy)
}

func TestLoadConfigRejectsInvalidFlags(t *testing.T) {
	verbosity := 5
	cmd := SimulateCmd{
		Config:    filepath.Join(t.TempDir(), "missing.hcl"),
		Verbosity: &verbosity,
	}
	_, err := cmd.loadConfig()
	assert.ErrorContains(t, err, "verbosity")

	cmd = SimulateCmd{
		Config:  filepath.Join(t.TempDir(), "missing.hcl"),
		Policy2: "psychic",
	}
	_, err = cmd.loadConfig()
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestProgressModel(t *testing.T) {
	var m tea.Model = newProgressModel(4)
	m, _ = m.Update(gameDoneMsg{})
	m, _ = m.Update(gameDoneMsg{})
	assert.Contains(t, m.View(), "2/4 games")

	_, cmd := m.Update(finishedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPrintBreakdown(t *testing.T) {
	disableColor()

	var buf bytes.Buffer
	printBreakdown(&buf, "Hand", scoring.Breakdown{Fifteens: 16, Pairs: 12, Nobs: 1})
	out := buf.String()

	assert.Contains(t, out, "Fifteens")
	assert.Contains(t, out, "16")
	assert.Contains(t, out, "29")
}

func TestScoreCommandRejectsDuplicates(t *testing.T) {
	cmd := ScoreCmd{Hand: "5h,5h,5h,5h", Starter: "5h"}
	assert.ErrorIs(t, cmd.Run(), scoring.ErrDuplicateCard)
}
