package game

import (
	"encoding/json"
	"time"
)

// EventType classifies round log events.
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeSpawn
	EventTypeKill
	EventTypePickup
	EventTypeLevelUp
	EventTypeRoundOver
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeSpawn:
		return "spawn"
	case EventTypeKill:
		return "kill"
	case EventTypePickup:
		return "pickup"
	case EventTypeLevelUp:
		return "level_up"
	case EventTypeRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}

// LogMeta is common to every round log entry: the round clock at the time
// of the event, a message and a wall-clock timestamp.
type LogMeta struct {
	DurationTimer BoundedRange `json:"durationTimer"`
	Message       string       `json:"message"`
	Timestamp     time.Time    `json:"timestamp"`
}

// SpawnEvent records an entity or weapon instance entering the round.
type SpawnEvent struct {
	LogMeta
	Sprite string `json:"sprite"`
	UUID   string `json:"uuid"`
}

// KillEvent records an enemy death and the weapon that landed it.
type KillEvent struct {
	LogMeta
	Enemy  string  `json:"enemy"`
	Weapon string  `json:"weapon"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// PickupEvent records the player collecting a pickup.
type PickupEvent struct {
	LogMeta
	Pickup string  `json:"pickup"`
	Value  float64 `json:"value"`
	XP     float64 `json:"xp"`
}

// LevelUpEvent records the player reaching a new level.
type LevelUpEvent struct {
	LogMeta
	Level int `json:"level"`
}

// Logs is the structured event log a round owns.
type Logs struct {
	Spawns        []SpawnEvent   `json:"spawns"`
	EnemiesKilled []KillEvent    `json:"enemiesKilled"`
	Pickups       []PickupEvent  `json:"pickups"`
	LevelUps      []LevelUpEvent `json:"levelUps"`
}

// Event is the envelope written to the persistent event log.
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Round tick this occurred in
	Source    string    `json:"source"`    // Emitting entity (for rate limiting)
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// RoundOverPayload closes a round in the persistent log.
type RoundOverPayload struct {
	Outcome  string  `json:"outcome"`
	Elapsed  float64 `json:"elapsedMs"`
	Kills    int     `json:"kills"`
	Level    int     `json:"level"`
	PlayerHP float64 `json:"playerHp"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event stamped with at.
func NewEvent(eventType EventType, at time.Time, tickNum uint64, source string, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: at.UnixNano(),
		TickNum:   tickNum,
		Source:    source,
		Payload:   EncodePayload(payload),
	}
}

// EventSink receives every round log entry. *EventLog implements it.
type EventSink interface {
	Emit(event Event) bool
}
