package export

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lox/cribbage/internal/deck"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/internal/scoring"
)

// HistoryFile is the TOML document layout: one [[hand]] table per hand.
type HistoryFile struct {
	Hands []HistoryHand `toml:"hand"`
}

// HistoryHand is a counted hand in hand-history form.
type HistoryHand struct {
	Game     int             `toml:"game"`
	Hand     int             `toml:"hand"`
	Dealer   string          `toml:"dealer"`
	Starter  string          `toml:"starter"`
	HisHeels bool            `toml:"his_heels"`
	Players  []HistoryPlayer `toml:"players"`
	Crib     HistoryCrib     `toml:"crib"`
}

// HistoryPlayer is one player's side of a hand.
type HistoryPlayer struct {
	Name        string            `toml:"name"`
	Dealt       []string          `toml:"dealt"`
	Kept        []string          `toml:"kept"`
	Discarded   []string          `toml:"discarded"`
	Score       int               `toml:"score"`
	ScoreBefore int               `toml:"score_before"`
	ScoreAfter  int               `toml:"score_after"`
	Breakdown   scoring.Breakdown `toml:"breakdown"`
}

// HistoryCrib is the counted crib.
type HistoryCrib struct {
	Cards     []string          `toml:"cards"`
	Score     int               `toml:"score"`
	Breakdown scoring.Breakdown `toml:"breakdown"`
}

// HistoryFromRecord converts a hand record to its hand-history form.
func HistoryFromRecord(rec game.HandRecord) HistoryHand {
	h := HistoryHand{
		Game:     rec.GameNumber,
		Hand:     rec.HandNumber,
		Dealer:   rec.Dealer,
		Starter:  rec.Starter.String(),
		HisHeels: rec.HisHeels,
		Crib: HistoryCrib{
			Cards:     cardStrings(rec.Crib.Cards),
			Score:     rec.Crib.Score,
			Breakdown: rec.Crib.Breakdown,
		},
	}
	for _, p := range rec.Players {
		h.Players = append(h.Players, HistoryPlayer{
			Name:        p.Name,
			Dealt:       cardStrings(p.Dealt),
			Kept:        cardStrings(p.Kept),
			Discarded:   cardStrings(p.Discarded),
			Score:       p.Score,
			ScoreBefore: p.ScoreBefore,
			ScoreAfter:  p.ScoreAfter,
			Breakdown:   p.Breakdown,
		})
	}
	return h
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// HistoryWriter appends hands to a TOML hand-history stream. Each call emits
// further [[hand]] tables, so the stream stays a single valid document.
type HistoryWriter struct {
	w io.Writer
}

// NewHistoryWriter creates a hand-history writer.
func NewHistoryWriter(w io.Writer) *HistoryWriter {
	return &HistoryWriter{w: w}
}

// Write encodes the given hands.
func (h *HistoryWriter) Write(recs ...game.HandRecord) error {
	if len(recs) == 0 {
		return nil
	}
	file := HistoryFile{Hands: make([]HistoryHand, 0, len(recs))}
	for _, rec := range recs {
		file.Hands = append(file.Hands, HistoryFromRecord(rec))
	}

	enc := toml.NewEncoder(h.w)
	enc.Indent = "\t"
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to encode hand history: %w", err)
	}
	return nil
}

// ReadHistory decodes a hand-history stream.
func ReadHistory(r io.Reader) ([]HistoryHand, error) {
	var file HistoryFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode hand history: %w", err)
	}
	return file.Hands, nil
}
