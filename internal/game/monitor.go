package game

import "github.com/lox/cribbage/internal/deck"

// Monitor receives notifications about hand progress and outcomes.
type Monitor interface {
	// OnHandStart is called once the dealer is known, before any card is dealt.
	OnHandStart(start HandStart)

	// OnPlay is called for every card played and every go during pegging.
	OnPlay(event PlayEvent)

	// OnHandComplete is called after the crib has been counted.
	OnHandComplete(record HandRecord)
}

// HandStart identifies a hand about to be dealt.
type HandStart struct {
	GameNumber int
	HandNumber int
	Dealer     string
	Scores     [2]int
}

// PlayEvent describes one step of pegging. Go is set when the player could
// not play; a go event with Points > 0 is the award to the last player to
// have played.
type PlayEvent struct {
	GameNumber int
	HandNumber int
	Player     string
	Card       deck.Card
	Go         bool
	Count      int
	Points     int
	Reasons    []string
}

// NullMonitor is a no-op implementation.
type NullMonitor struct{}

func (NullMonitor) OnHandStart(HandStart)     {}
func (NullMonitor) OnPlay(PlayEvent)          {}
func (NullMonitor) OnHandComplete(HandRecord) {}

// MultiMonitor fans events out to multiple monitors.
type MultiMonitor struct {
	monitors []Monitor
}

// NewMultiMonitor builds a composite monitor, pruning nil entries and returning
// a NullMonitor when no monitors are provided.
func NewMultiMonitor(monitors ...Monitor) Monitor {
	filtered := make([]Monitor, 0, len(monitors))
	for _, monitor := range monitors {
		if monitor != nil {
			filtered = append(filtered, monitor)
		}
	}

	switch len(filtered) {
	case 0:
		return NullMonitor{}
	case 1:
		return filtered[0]
	default:
		return MultiMonitor{monitors: filtered}
	}
}

func (m MultiMonitor) OnHandStart(start HandStart) {
	for _, monitor := range m.monitors {
		monitor.OnHandStart(start)
	}
}

func (m MultiMonitor) OnPlay(event PlayEvent) {
	for _, monitor := range m.monitors {
		monitor.OnPlay(event)
	}
}

func (m MultiMonitor) OnHandComplete(record HandRecord) {
	for _, monitor := range m.monitors {
		monitor.OnHandComplete(record)
	}
}

// RecordingMonitor keeps every completed hand record. It is not safe for
// concurrent use; each game should get its own.
type RecordingMonitor struct {
	NullMonitor
	Hands []HandRecord
}

func (r *RecordingMonitor) OnHandComplete(record HandRecord) {
	r.Hands = append(r.Hands, record)
}
