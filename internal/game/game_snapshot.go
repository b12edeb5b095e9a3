package game

import (
	"sync/atomic"
	"time"
)

// SnapshotLimits caps how much of the round a snapshot copies.
type SnapshotLimits struct {
	MaxEnemies int
	MaxWeapons int
	MaxPickups int
}

// DefaultSnapshotLimits keeps a frame bounded even with a runaway roster.
var DefaultSnapshotLimits = SnapshotLimits{
	MaxEnemies: 500,
	MaxWeapons: 500,
	MaxPickups: 1000,
}

// EntitySnapshot is an immutable copy of one visual on screen.
type EntitySnapshot struct {
	Name     string  `json:"name"`
	Sprite   Sprite  `json:"sprite"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
	HP       float64 `json:"hp,omitempty"`
	MaxHP    float64 `json:"maxHp,omitempty"`
	Hit      bool    `json:"hit,omitempty"` // struck this tick or inside the hit cooldown window
}

// RoundSnapshot is a complete immutable view of a round for renderers and
// the debug API. Value types only; nothing points back into the round.
type RoundSnapshot struct {
	Sequence  uint64    `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	TickNum   uint64    `json:"tick"`

	Map      string       `json:"map"`
	Timer    BoundedRange `json:"timer"`
	Outcome  string       `json:"outcome"`
	Progress Progress     `json:"progress"`
	Stats    Stats        `json:"stats"`

	Player  EntitySnapshot   `json:"player"`
	Enemies []EntitySnapshot `json:"enemies"`
	Weapons []EntitySnapshot `json:"weapons"`
	Pickups []EntitySnapshot `json:"pickups"`

	WavesRemaining int `json:"wavesRemaining"`
}

// SnapshotPool publishes the latest snapshot for lock-free readers.
// A published snapshot is never written again; readers may hold it freely.
type SnapshotPool struct {
	limits   SnapshotLimits
	latest   atomic.Pointer[RoundSnapshot]
	sequence atomic.Uint64
}

// NewSnapshotPool creates an empty pool.
func NewSnapshotPool(limits SnapshotLimits) *SnapshotPool {
	return &SnapshotPool{limits: limits}
}

// Capture copies the round into a fresh snapshot and publishes it.
// Must be called by the goroutine that owns the round.
func (p *SnapshotPool) Capture(r *GameRound, at time.Time) *RoundSnapshot {
	snap := &RoundSnapshot{
		Sequence:       p.sequence.Add(1),
		Timestamp:      at,
		TickNum:        r.Stats.Ticks,
		Map:            r.Map,
		Timer:          r.Timer,
		Outcome:        r.Outcome().String(),
		Progress:       r.Progress,
		Stats:          r.Stats,
		WavesRemaining: r.WavesRemaining(),
		Enemies:        make([]EntitySnapshot, 0, min(len(r.Enemies), p.limits.MaxEnemies)),
		Pickups:        make([]EntitySnapshot, 0, min(len(r.Pickups), p.limits.MaxPickups)),
	}

	snap.Player = p.alive(r, r.Player)
	snap.Weapons = p.weapons(r, r.Player, snap.Weapons)

	for _, e := range r.Enemies {
		if len(snap.Enemies) >= p.limits.MaxEnemies {
			break
		}
		snap.Enemies = append(snap.Enemies, p.alive(r, e))
		snap.Weapons = p.weapons(r, e, snap.Weapons)
	}

	for _, pk := range r.Pickups {
		if len(snap.Pickups) >= p.limits.MaxPickups {
			break
		}
		x, y := pk.X, pk.Y
		if box, err := r.visuals.Bounds(pk.Visual); err == nil {
			x, y = box.Left, box.Top
		}
		snap.Pickups = append(snap.Pickups, EntitySnapshot{
			Name:     pk.Name,
			Sprite:   pk.Sprite,
			X:        x,
			Y:        y,
			Rotation: pk.Rotation,
		})
	}

	p.latest.Store(snap)
	return snap
}

// Latest returns the most recent snapshot, or nil before the first capture.
func (p *SnapshotPool) Latest() *RoundSnapshot {
	return p.latest.Load()
}

// Limits returns the caps the pool was built with.
func (p *SnapshotPool) Limits() SnapshotLimits {
	return p.limits
}

func (p *SnapshotPool) alive(r *GameRound, a *Alive) EntitySnapshot {
	s := EntitySnapshot{
		Name:   a.Name,
		Sprite: a.Sprite,
		HP:     a.Health.Current,
		MaxHP:  a.Health.Max,
		Hit:    a.Invincible() || a.Struck(),
	}
	if box, err := r.visuals.Bounds(a.Visual); err == nil {
		s.X, s.Y = box.Left, box.Top
	}
	return s
}

func (p *SnapshotPool) weapons(r *GameRound, owner *Alive, dst []EntitySnapshot) []EntitySnapshot {
	for i := range owner.ActiveWeapons {
		if len(dst) >= p.limits.MaxWeapons {
			return dst
		}
		w := &owner.ActiveWeapons[i]
		box, err := r.visuals.Bounds(w.Visual)
		if err != nil {
			continue
		}
		dst = append(dst, EntitySnapshot{Name: w.Name, Sprite: w.Sprite, X: box.Left, Y: box.Top})
	}
	return dst
}
