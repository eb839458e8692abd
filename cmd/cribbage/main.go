package main

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	ShowVersion kong.VersionFlag `name:"version" short:"v" help:"Show version"`
	NoColor     bool             `help:"Disable colored output"`

	Simulate SimulateCmd `cmd:"" help:"Simulate a batch of games and record the results"`
	Replay   ReplayCmd   `cmd:"" help:"Replay a single game from its seed with full logging"`
	Score    ScoreCmd    `cmd:"" help:"Score a hand or crib against a starter card"`
	Version  VersionCmd  `cmd:"" help:"Print the version"`
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println("cribbage", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cribbage"),
		kong.Description("Deterministic two-player cribbage simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		disableColor()
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
