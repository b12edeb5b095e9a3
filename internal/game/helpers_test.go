package game

import (
	"io"
	"log/slog"
	"time"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func square(name string, size float64) GameObject {
	return GameObject{Name: name, Sprite: Sprite{Name: name, Width: size, Height: size}}
}

func testPlayer() Alive {
	return Alive{
		GameObject:      square("player", 48),
		Health:          NewRange(0, 100, 100),
		Speed:           0.5,
		HitCooldown:     NewRange(0, 200, 0),
		CapacityWeapons: 6,
	}
}

func testEnemy(name string, hp float64) Alive {
	return Alive{
		GameObject:  square(name, 48),
		Health:      NewRange(0, hp, hp),
		HitCooldown: NewRange(0, 0, 0),
	}
}

func testWeapon(name string, damage, active, cooldown float64) Weapon {
	return Weapon{
		GameObject: square(name, 48),
		Damage:     damage,
		Active:     NewRange(0, active, 0),
		Cooldown:   NewRange(0, cooldown, 0),
		Level:      1,
		MaxSpawns:  1,
	}
}

func testLevels() []PlayerLevel {
	levels := make([]PlayerLevel, 10)
	for i := range levels {
		levels[i] = PlayerLevel{Level: i + 1, XPToNext: float64(10 * (i + 1))}
	}
	return levels
}

func testConfig() RoundConfig {
	return RoundConfig{
		Map:    "test",
		Timer:  NewRange(0, 60_000, 0),
		Player: testPlayer(),
		Pickup: PickupTemplate{
			GameObject: square("experience-gem", 20),
			Value:      1,
		},
		Levels:      testLevels(),
		PlayerX:     1000,
		PlayerY:     1000,
		SpawnRadius: 300,
	}
}

// recordingSink keeps every emitted event.
type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(e Event) bool {
	s.events = append(s.events, e)
	return true
}

func (s *recordingSink) count(t EventType) int {
	n := 0
	for _, e := range s.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// fataler is satisfied by *testing.T and *rapid.T.
type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func newTestRound(t fataler, cfg RoundConfig) (*GameRound, *MemoryVisuals) {
	t.Helper()
	vis := NewMemoryVisuals()
	r, err := NewRound(cfg, RoundOptions{
		Visuals: vis,
		Logger:  discardLogger(),
		IDs:     SeededIDs(7),
		Clock:   func() time.Time { return testEpoch },
		Seed:    7,
	})
	if err != nil {
		t.Fatalf("NewRound: %v", err)
	}
	return r, vis
}

// placeEnemy adds an enemy with its top-left corner at (x, y).
func placeEnemy(t fataler, r *GameRound, tmpl Alive, x, y float64) *Alive {
	t.Helper()
	e, err := r.AddEnemy(tmpl, x, y)
	if err != nil {
		t.Fatalf("AddEnemy: %v", err)
	}
	return e
}

func mustBounds(t fataler, v Visuals, h Handle) Rect {
	t.Helper()
	b, err := v.Bounds(h)
	if err != nil {
		t.Fatalf("Bounds(%d): %v", h, err)
	}
	return b
}
