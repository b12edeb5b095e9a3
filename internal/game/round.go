package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// BodyDamage is what touching an enemy costs the player.
const BodyDamage = 1.0

// RoundConfig is the immutable input a round is built from. Templates are
// cloned on use; the round never writes back into them.
type RoundConfig struct {
	Map         string
	Timer       BoundedRange
	Player      Alive
	Waves       [][]Alive
	Pickup      PickupTemplate
	Levels      []PlayerLevel
	PlayerX     float64
	PlayerY     float64
	SpawnRadius float64 // distance from the player new waves appear at
}

// RoundOptions injects the round's collaborators.
type RoundOptions struct {
	Visuals    Visuals // required
	Logger     *slog.Logger
	IDs        IDGenerator
	Clock      func() time.Time
	Seed       int64
	Sink       EventSink
	MaxEnemies int // 0 = unlimited
}

// Outcome is how a round ended.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeWon                // round timer ran out with the player alive
	OutcomeLost               // player health reached its minimum
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// Progress is the player's experience state.
type Progress struct {
	Level int     `json:"level"`
	XP    float64 `json:"xp"`
}

// Stats are running totals for metrics and the end-of-round summary.
type Stats struct {
	Ticks          uint64  `json:"ticks"`
	Kills          int     `json:"kills"`
	EnemiesSpawned int     `json:"enemiesSpawned"`
	WeaponsSpawned int     `json:"weaponsSpawned"`
	HitsTaken      int     `json:"hitsTaken"`
	DamageTaken    float64 `json:"damageTaken"`
	XPCollected    float64 `json:"xpCollected"`
	Diagnostics    int     `json:"diagnostics"`
}

// TickResult summarises what one tick changed.
type TickResult struct {
	Kills     int
	PlayerHit bool
	Collected int
	GameOver  bool
}

// GameRound owns one timed playthrough: the clock, the player, the enemy
// roster, dropped pickups and the event logs. It is not safe for
// concurrent use; Engine serialises access.
type GameRound struct {
	Map      string
	Timer    BoundedRange
	Player   *Alive
	Enemies  []*Alive
	Pickups  []Pickup
	Logs     Logs
	Progress Progress
	Stats    Stats

	waves       [][]Alive
	levels      []PlayerLevel
	pickup      PickupTemplate
	spawnRadius float64
	originX     float64
	originY     float64
	maxEnemies  int

	visuals Visuals
	logger  *slog.Logger
	ids     IDGenerator
	clock   func() time.Time
	rng     *rand.Rand
	sink    EventSink

	over bool
}

// NewRound clones the configured player, gives it a visual and queues the
// waves. The first wave is not released; see SpawnNextWave.
func NewRound(cfg RoundConfig, opts RoundOptions) (*GameRound, error) {
	if opts.Visuals == nil {
		return nil, errors.New("round: visuals capability is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.IDs == nil {
		opts.IDs = RandomIDs()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Seed == 0 {
		opts.Seed = 1
	}

	waves := make([][]Alive, len(cfg.Waves))
	copy(waves, cfg.Waves)

	r := &GameRound{
		Map:         cfg.Map,
		Timer:       cfg.Timer,
		Progress:    Progress{Level: 1},
		waves:       waves,
		levels:      append([]PlayerLevel(nil), cfg.Levels...),
		pickup:      cfg.Pickup,
		spawnRadius: cfg.SpawnRadius,
		originX:     cfg.PlayerX,
		originY:     cfg.PlayerY,
		maxEnemies:  opts.MaxEnemies,
		visuals:     opts.Visuals,
		logger:      opts.Logger,
		ids:         opts.IDs,
		clock:       opts.Clock,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		sink:        opts.Sink,
	}
	r.Timer.Reset()

	player := cfg.Player.Clone()
	h, err := r.visuals.Create(player.Sprite, Placement{X: cfg.PlayerX, Y: cfg.PlayerY, Layer: LayerActors})
	if err != nil {
		return nil, fmt.Errorf("round: place player: %w", err)
	}
	player.Visual = h
	r.Player = &player
	r.logSpawn(player.Sprite.Name, player.Name)

	return r, nil
}

// Tick advances the round by elapsed milliseconds:
// timer, weapon lifecycles, enemy damage and deaths, player damage,
// pickup collection, then the game-over check.
func (r *GameRound) Tick(elapsed float64) TickResult {
	if r.over {
		return TickResult{GameOver: true}
	}

	r.Stats.Ticks++
	r.Player.struck = false
	for _, enemy := range r.Enemies {
		enemy.struck = false
	}
	r.Timer.Advance(elapsed)

	r.updateWeapons(r.Player, elapsed)
	for _, enemy := range r.Enemies {
		if enemy.IsAlive() {
			r.updateWeapons(enemy, elapsed)
		}
	}

	res := TickResult{}
	res.Kills = r.damageEnemies()
	res.PlayerHit = r.damagePlayer(elapsed)
	r.reapEnemies()
	res.Collected = r.collectPickups()

	if IsGameOver(r, r.Player) {
		r.over = true
		res.GameOver = true
		r.finish()
	}
	return res
}

// IsGameOver reports whether the round has ended: the timer is strictly
// past its maximum, or the player is at or below minimum health.
func IsGameOver(round *GameRound, player *Alive) bool {
	return round.Timer.Expired() || player.Health.Depleted()
}

// Outcome reports the result. A player who dies on the last tick loses.
func (r *GameRound) Outcome() Outcome {
	switch {
	case r.Player.Health.Depleted():
		return OutcomeLost
	case r.Timer.Expired():
		return OutcomeWon
	default:
		return OutcomeInProgress
	}
}

// Over reports whether a tick has observed game over.
func (r *GameRound) Over() bool { return r.over }

// WavesRemaining is the number of queued waves not yet released.
func (r *GameRound) WavesRemaining() int { return len(r.waves) }

// Visuals exposes the capability the round was built with.
func (r *GameRound) Visuals() Visuals { return r.visuals }

func (r *GameRound) finish() {
	outcome := r.Outcome()
	r.logger.Info("🏁 round over",
		"outcome", outcome.String(),
		"elapsed_ms", r.Timer.Current,
		"kills", r.Stats.Kills,
		"level", r.Progress.Level,
		"hp", r.Player.Health.Current)

	r.emit(EventTypeRoundOver, r.Player.Name, RoundOverPayload{
		Outcome:  outcome.String(),
		Elapsed:  r.Timer.Current,
		Kills:    r.Stats.Kills,
		Level:    r.Progress.Level,
		PlayerHP: r.Player.Health.Current,
	})
}

// diagnose reports a non-fatal problem; the caller skips the affected
// entity for this tick.
func (r *GameRound) diagnose(err error, msg string, args ...any) {
	r.Stats.Diagnostics++
	r.logger.Warn("⚠️ "+msg, append(args, "err", err)...)
}

// release removes a visual. A missing handle is reported but bookkeeping
// continues regardless.
func (r *GameRound) release(h Handle, name string) {
	if h == 0 {
		r.diagnose(ErrMissingVisualHandle, "release skipped", "entity", name)
		return
	}
	if err := r.visuals.Remove(h); err != nil {
		r.diagnose(err, "release failed", "entity", name)
	}
}

func (r *GameRound) bounds(obj *GameObject) (Rect, error) {
	if obj.Visual == 0 {
		return Rect{}, fmt.Errorf("%s: %w", obj.Name, ErrMissingVisualHandle)
	}
	return r.visuals.Bounds(obj.Visual)
}

func (r *GameRound) meta(format string, args ...any) LogMeta {
	return LogMeta{
		DurationTimer: r.Timer,
		Message:       fmt.Sprintf(format, args...),
		Timestamp:     r.clock(),
	}
}

func (r *GameRound) emit(t EventType, source string, payload any) {
	if r.sink == nil {
		return
	}
	r.sink.Emit(NewEvent(t, r.clock(), r.Stats.Ticks, source, payload))
}

func (r *GameRound) logSpawn(sprite, owner string) SpawnEvent {
	ev := SpawnEvent{
		LogMeta: r.meta("%s spawned %s", owner, sprite),
		Sprite:  sprite,
		UUID:    r.ids(),
	}
	r.Logs.Spawns = append(r.Logs.Spawns, ev)
	r.emit(EventTypeSpawn, owner, ev)
	return ev
}
