package export

import "github.com/lox/cribbage/internal/game"

// Sink fans a finished game out to whichever writers are set. It satisfies
// the simulator's observer interface.
type Sink struct {
	Games   *GameCSV
	Hands   *HandCSV
	History *HistoryWriter
}

func (s *Sink) OnGameComplete(rec game.GameRecord, hands []game.HandRecord) error {
	if s.Games != nil {
		if err := s.Games.Write(rec); err != nil {
			return err
		}
	}
	if s.Hands != nil {
		if err := s.Hands.Write(hands...); err != nil {
			return err
		}
	}
	if s.History != nil {
		if err := s.History.Write(hands...); err != nil {
			return err
		}
	}
	return nil
}
