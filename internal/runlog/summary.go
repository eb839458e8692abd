package runlog

import (
	"bytes"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lox/cribbage/internal/simulator"
)

// Summary is the end-of-run record written to summary.toml.
type Summary struct {
	RunID      string          `toml:"run_id"`
	Started    time.Time       `toml:"started"`
	Finished   time.Time       `toml:"finished"`
	Duration   string          `toml:"duration"`
	MasterSeed int64           `toml:"master_seed"`
	Games      int             `toml:"games"`
	Workers    int             `toml:"workers"`
	TrackSeeds bool            `toml:"track_seeds"`
	MeanMargin float64         `toml:"mean_margin"`
	Hands      HandsSummary    `toml:"hands_per_game"`
	Players    []PlayerSummary `toml:"players"`
	Seeds      []int64         `toml:"seeds,omitempty"`
}

// HandsSummary describes the distribution of hands per game.
type HandsSummary struct {
	Mean     float64 `toml:"mean"`
	StdDev   float64 `toml:"stddev"`
	CI95Low  float64 `toml:"ci95_low"`
	CI95High float64 `toml:"ci95_high"`
	Median   float64 `toml:"median"`
	P05      float64 `toml:"p05"`
	P95      float64 `toml:"p95"`
}

// PlayerSummary is one seat's totals for the run.
type PlayerSummary struct {
	Name        string  `toml:"name"`
	Policy      string  `toml:"policy"`
	Wins        int     `toml:"wins"`
	WinRate     float64 `toml:"win_rate"`
	Skunks      int     `toml:"skunks"`
	PlayPoints  int     `toml:"play_points"`
	CountPoints int     `toml:"count_points"`
	PlayShare   float64 `toml:"play_share"`
}

// Seat names a seat and its policy for the summary.
type Seat struct {
	Name   string
	Policy string
}

// NewSummary builds a summary from a finished batch.
func NewSummary(r *Run, res *simulator.Result, seats [2]Seat, workers int, trackSeeds bool) Summary {
	st := res.Stats
	low, high := st.ConfidenceInterval95()
	s := Summary{
		RunID:      r.ID.String(),
		Started:    res.Started,
		Finished:   res.Finished,
		Duration:   res.Duration().String(),
		MasterSeed: res.MasterSeed,
		Games:      st.Games,
		Workers:    workers,
		TrackSeeds: trackSeeds,
		MeanMargin: st.MeanMargin(),
		Hands: HandsSummary{
			Mean:     st.Mean(),
			StdDev:   st.StdDev(),
			CI95Low:  low,
			CI95High: high,
			Median:   st.Median(),
			P05:      st.Percentile(0.05),
			P95:      st.Percentile(0.95),
		},
	}
	for i, seat := range seats {
		ss := st.Seats[i]
		s.Players = append(s.Players, PlayerSummary{
			Name:        seat.Name,
			Policy:      seat.Policy,
			Wins:        ss.Wins,
			WinRate:     st.WinRate(i),
			Skunks:      ss.Skunks,
			PlayPoints:  ss.PlayPoints,
			CountPoints: ss.CountPoints,
			PlayShare:   st.PlayShare(i),
		})
	}
	if trackSeeds {
		s.Seeds = append([]int64(nil), st.Seeds...)
	}
	return s
}

// WriteSummary encodes the summary into the run directory atomically.
func (r *Run) WriteSummary(s Summary) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = "\t"
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return r.writeAtomic(SummaryFile, buf.Bytes())
}

// ReadSummary loads a summary file.
func ReadSummary(path string) (Summary, error) {
	var s Summary
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Summary{}, fmt.Errorf("failed to read summary: %w", err)
	}
	return s, nil
}
