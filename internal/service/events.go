package service

// EventType identifies what happened in a room.
type EventType string

const (
	EventPlayerJoined     EventType = "player_joined"
	EventGameStarted      EventType = "game_started"
	EventNumberDrawn      EventType = "number_drawn"
	EventGameCompleted    EventType = "game_completed"
	EventWinnersAnnounced EventType = "winners_announced"
)

// Event is pushed to subscribers of a room after a mutating operation.
// Data carries the record the event is about (player, game, draw event or
// winner list).
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Notifier delivers room events to external subscribers. Implementations
// must not block; delivery is best-effort and the delivery mechanism lives
// outside the core.
type Notifier interface {
	Notify(roomCode string, event Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(string, Event) {}

// MultiNotifier fans an event out to several notifiers.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(roomCode string, event Event) {
	for _, n := range m {
		n.Notify(roomCode, event)
	}
}
