// Package statistics aggregates finished games into win rates and
// hands-per-game distributions.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/cribbage/internal/game"
)

// SkunkLine is the score a loser must reach to avoid being skunked.
const SkunkLine = 91

// GameResult represents the outcome of a single game.
type GameResult struct {
	GameNumber  int
	Winner      int // seat of the winner
	HandsPlayed int
	Scores      [2]int
	PlayPoints  [2]int
	CountPoints [2]int
	Seed        *int64
}

// ResultFromRecord converts a finished game's record.
func ResultFromRecord(rec game.GameRecord) GameResult {
	r := GameResult{
		GameNumber:  rec.GameNumber,
		Winner:      rec.WinnerIndex(),
		HandsPlayed: rec.HandsPlayed,
		Seed:        rec.Seed,
	}
	for i, p := range rec.Players {
		r.Scores[i] = p.FinalScore
		r.PlayPoints[i] = p.PlayPoints
		r.CountPoints[i] = p.CountPoints
	}
	return r
}

// Margin is the winner's lead over the loser.
func (r GameResult) Margin() int {
	if r.Winner < 0 {
		return 0
	}
	return r.Scores[r.Winner] - r.Scores[1-r.Winner]
}

// SeatStats tracks statistics for one seat.
type SeatStats struct {
	Wins        int
	Skunks      int // games won with the loser below SkunkLine
	Points      int
	PlayPoints  int
	CountPoints int
}

// Statistics tracks hands per game and per-seat results across a run.
type Statistics struct {
	Games     int
	SumHands  float64
	SumHands2 float64   // Sum of squares for variance calculation
	Values    []float64 // Hands per game, for median/percentile calculation

	SumMargin float64
	Seats     [2]SeatStats
	Seeds     []int64
}

// Mean returns the mean number of hands per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumHands / float64(s.Games)
}

// Variance returns the sample variance of hands per game.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumHands2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of hands per game.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a finished game.
func (s *Statistics) Add(result GameResult) {
	hands := float64(result.HandsPlayed)
	s.Games++
	s.SumHands += hands
	s.SumHands2 += hands * hands
	s.Values = append(s.Values, hands)
	s.SumMargin += float64(result.Margin())

	for i := range s.Seats {
		seat := &s.Seats[i]
		seat.Points += result.Scores[i]
		seat.PlayPoints += result.PlayPoints[i]
		seat.CountPoints += result.CountPoints[i]
	}
	if w := result.Winner; w == 0 || w == 1 {
		s.Seats[w].Wins++
		if result.Scores[1-w] < SkunkLine {
			s.Seats[w].Skunks++
		}
	}
	if result.Seed != nil {
		s.Seeds = append(s.Seeds, *result.Seed)
	}
}

// Median returns the median number of hands per game.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns hands per game at the given percentile (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// WinRate returns the fraction of games won by a seat.
func (s *Statistics) WinRate(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat > 1 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// MeanMargin returns the average winning margin.
func (s *Statistics) MeanMargin() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// PlayShare returns the fraction of a seat's points earned during play.
func (s *Statistics) PlayShare(seat int) float64 {
	if seat < 0 || seat > 1 || s.Seats[seat].Points == 0 {
		return 0
	}
	return float64(s.Seats[seat].PlayPoints) / float64(s.Seats[seat].Points)
}

// Validate performs consistency checks on the accumulated data.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}
	if wins := s.Seats[0].Wins + s.Seats[1].Wins; wins != s.Games {
		return fmt.Errorf("total wins (%d) does not match games count (%d)", wins, s.Games)
	}
	for i, seat := range s.Seats {
		if seat.PlayPoints+seat.CountPoints != seat.Points {
			return fmt.Errorf("seat %d: play (%d) + count (%d) points do not sum to %d",
				i, seat.PlayPoints, seat.CountPoints, seat.Points)
		}
	}
	return nil
}
