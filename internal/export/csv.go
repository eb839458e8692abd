// Package export writes game and hand records as CSV and TOML.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/internal/scoring"
)

// TimestampFormat is the layout used for game timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// GameFields is the header row of the games file.
var GameFields = []string{
	"game_number",
	"timestamp",
	"winner",
	"player1_final_score",
	"player2_final_score",
	"hands_played",
	"player1_play_points",
	"player1_count_points",
	"player2_play_points",
	"player2_count_points",
	"random_seed",
}

// HandFields is the header row of the hands file.
var HandFields = buildHandFields()

func buildHandFields() []string {
	fields := []string{"game_number", "hand_number", "dealer"}
	for _, p := range []string{"p1", "p2"} {
		for _, f := range []string{
			"dealt_cards", "kept_cards", "discards", "hand_score",
			"hand_fifteens", "hand_pairs", "hand_runs", "hand_flush", "hand_nobs",
			"score_before", "score_after",
		} {
			fields = append(fields, p+"_"+f)
		}
	}
	return append(fields,
		"crib_cards", "crib_score",
		"crib_fifteens", "crib_pairs", "crib_runs", "crib_flush", "crib_nobs",
		"starter_card", "his_heels",
	)
}

// GameCSV writes one row per finished game.
type GameCSV struct {
	w *csv.Writer
}

// NewGameCSV writes the header and returns a writer for game rows.
func NewGameCSV(w io.Writer) (*GameCSV, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(GameFields); err != nil {
		return nil, fmt.Errorf("failed to write games header: %w", err)
	}
	return &GameCSV{w: cw}, nil
}

// Write appends a game row and flushes it.
func (g *GameCSV) Write(rec game.GameRecord) error {
	seed := ""
	if rec.Seed != nil {
		seed = strconv.FormatInt(*rec.Seed, 10)
	}
	row := []string{
		strconv.Itoa(rec.GameNumber),
		rec.Timestamp.Format(TimestampFormat),
		rec.Winner,
		strconv.Itoa(rec.Players[0].FinalScore),
		strconv.Itoa(rec.Players[1].FinalScore),
		strconv.Itoa(rec.HandsPlayed),
		strconv.Itoa(rec.Players[0].PlayPoints),
		strconv.Itoa(rec.Players[0].CountPoints),
		strconv.Itoa(rec.Players[1].PlayPoints),
		strconv.Itoa(rec.Players[1].CountPoints),
		seed,
	}
	if err := g.w.Write(row); err != nil {
		return fmt.Errorf("failed to write game %d: %w", rec.GameNumber, err)
	}
	g.w.Flush()
	return g.w.Error()
}

// HandCSV writes one row per counted hand.
type HandCSV struct {
	w *csv.Writer
}

// NewHandCSV writes the header and returns a writer for hand rows.
func NewHandCSV(w io.Writer) (*HandCSV, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(HandFields); err != nil {
		return nil, fmt.Errorf("failed to write hands header: %w", err)
	}
	return &HandCSV{w: cw}, nil
}

// Write appends hand rows and flushes them.
func (h *HandCSV) Write(recs ...game.HandRecord) error {
	for _, rec := range recs {
		row := []string{
			strconv.Itoa(rec.GameNumber),
			strconv.Itoa(rec.HandNumber),
			rec.Dealer,
		}
		for _, p := range rec.Players {
			row = append(row,
				deck.Join(p.Dealt),
				deck.Join(p.Kept),
				deck.Join(p.Discarded),
				strconv.Itoa(p.Score),
			)
			row = append(row, breakdownFields(p.Breakdown)...)
			row = append(row, strconv.Itoa(p.ScoreBefore), strconv.Itoa(p.ScoreAfter))
		}
		row = append(row, deck.Join(rec.Crib.Cards), strconv.Itoa(rec.Crib.Score))
		row = append(row, breakdownFields(rec.Crib.Breakdown)...)
		row = append(row, rec.Starter.String(), strconv.FormatBool(rec.HisHeels))

		if err := h.w.Write(row); err != nil {
			return fmt.Errorf("failed to write game %d hand %d: %w", rec.GameNumber, rec.HandNumber, err)
		}
	}
	h.w.Flush()
	return h.w.Error()
}

func breakdownFields(b scoring.Breakdown) []string {
	return []string{
		strconv.Itoa(b.Fifteens),
		strconv.Itoa(b.Pairs),
		strconv.Itoa(b.Runs),
		strconv.Itoa(b.Flush),
		strconv.Itoa(b.Nobs),
	}
}
