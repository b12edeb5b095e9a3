package game

import (
	"log/slog"
	"math"
	"sync"
	"time"
)

// Mover repositions enemies between ticks. The round itself never moves
// anything; this is the movement collaborator.
type Mover interface {
	Move(r *GameRound, elapsed float64)
}

// ChaseMover walks every living enemy straight at the player's centre at
// its Speed (pixels per millisecond). Live weapon instances travel with
// their owner.
type ChaseMover struct{}

// Move implements Mover.
func (ChaseMover) Move(r *GameRound, elapsed float64) {
	target, err := r.bounds(&r.Player.GameObject)
	if err != nil {
		return
	}
	tx, ty := target.Center()

	for _, e := range r.Enemies {
		if !e.IsAlive() || e.Speed <= 0 {
			continue
		}
		box, err := r.bounds(&e.GameObject)
		if err != nil {
			continue
		}
		cx, cy := box.Center()
		dx, dy := tx-cx, ty-cy
		dist := math.Hypot(dx, dy)
		if dist < 1e-9 {
			continue
		}
		step := math.Min(e.Speed*elapsed, dist)
		mx, my := dx/dist*step, dy/dist*step

		if err := r.visuals.Move(e.Visual, box.Left+mx, box.Top+my); err != nil {
			r.diagnose(err, "enemy move skipped", "enemy", e.Name)
			continue
		}
		for i := range e.ActiveWeapons {
			w := &e.ActiveWeapons[i]
			wbox, err := r.visuals.Bounds(w.Visual)
			if err == nil {
				err = r.visuals.Move(w.Visual, wbox.Left+mx, wbox.Top+my)
			}
			if err != nil {
				r.diagnose(err, "enemy weapon move skipped", "enemy", e.Name, "weapon", w.Name)
			}
		}
	}
}

// TickStats is reported to OnTick after every tick.
type TickStats struct {
	Tick     uint64
	Elapsed  float64 // simulated ms
	Duration time.Duration
	Result   TickResult
	Enemies  int
	Pickups  int
	PlayerHP float64
	Released int // enemies released by a new wave before this tick
}

// EngineOptions configures an Engine.
type EngineOptions struct {
	TickRate  int
	Mover     Mover
	Logger    *slog.Logger
	Clock     func() time.Time
	Snapshots *SnapshotPool
}

// Engine drives a round: wave release, movement, the tick itself and
// snapshot publishing. Every tick runs as one critical section.
type Engine struct {
	mu        sync.Mutex
	round     *GameRound
	mover     Mover
	snapshots *SnapshotPool
	logger    *slog.Logger
	clock     func() time.Time

	tickRate int
	running  bool
	ticker   *time.Ticker
	stopChan chan struct{}
	done     chan struct{}
	finished bool

	// Event callbacks; invoked outside the engine lock.
	OnTick     func(TickStats)
	OnGameOver func(Outcome, Stats)
}

// NewEngine wraps a round. A zero TickRate defaults to 60.
func NewEngine(round *GameRound, opts EngineOptions) *Engine {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Mover == nil {
		opts.Mover = ChaseMover{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Snapshots == nil {
		opts.Snapshots = NewSnapshotPool(DefaultSnapshotLimits)
	}
	return &Engine{
		round:     round,
		mover:     opts.Mover,
		snapshots: opts.Snapshots,
		logger:    opts.Logger,
		clock:     opts.Clock,
		tickRate:  opts.TickRate,
	}
}

// Start begins the game loop. Elapsed time per tick is measured, not
// assumed, so a late tick carries its real duration.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running || e.finished {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.ticker = time.NewTicker(time.Second / time.Duration(e.tickRate))
	e.stopChan = make(chan struct{})
	e.done = make(chan struct{})
	ticker, stop, done := e.ticker, e.stopChan, e.done
	e.mu.Unlock()

	go func() {
		defer close(done)
		last := e.clock()
		for {
			select {
			case <-ticker.C:
				now := e.clock()
				elapsed := float64(now.Sub(last)) / float64(time.Millisecond)
				last = now
				if st := e.Step(elapsed); st.Result.GameOver {
					e.halt()
					return
				}
			case <-stop:
				return
			}
		}
	}()

	e.logger.Info("🎮 engine started", "tps", e.tickRate)
}

// Stop stops the game loop. Safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return
	}
	e.running = false
	e.ticker.Stop()
	close(e.stopChan)
	e.logger.Info("🛑 engine stopped")
}

// Done is closed when the loop started by Start exits.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return e.done
}

// Running reports whether the ticker loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) halt() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		e.running = false
		e.ticker.Stop()
	}
}

// Step advances the round by elapsed milliseconds. Once the round is over
// further steps are no-ops that report GameOver.
func (e *Engine) Step(elapsed float64) TickStats {
	e.mu.Lock()
	r := e.round
	if r.Over() {
		e.mu.Unlock()
		return TickStats{Tick: r.Stats.Ticks, Result: TickResult{GameOver: true}}
	}

	start := time.Now()
	released := 0
	if len(r.Enemies) == 0 && r.WavesRemaining() > 0 {
		released = r.SpawnNextWave()
	}
	e.mover.Move(r, elapsed)
	res := r.Tick(elapsed)

	st := TickStats{
		Tick:     r.Stats.Ticks,
		Elapsed:  elapsed,
		Result:   res,
		Enemies:  len(r.Enemies),
		Pickups:  len(r.Pickups),
		PlayerHP: r.Player.Health.Current,
		Released: released,
	}
	e.snapshots.Capture(r, e.clock())
	st.Duration = time.Since(start)

	fireOver := res.GameOver && !e.finished
	if fireOver {
		e.finished = true
	}
	outcome, stats := r.Outcome(), r.Stats
	onTick, onOver := e.OnTick, e.OnGameOver
	e.mu.Unlock()

	if onTick != nil {
		onTick(st)
	}
	if fireOver && onOver != nil {
		onOver(outcome, stats)
	}
	return st
}

// Snapshot returns the latest published snapshot, or nil before the first
// tick.
func (e *Engine) Snapshot() *RoundSnapshot {
	return e.snapshots.Latest()
}

// Inspect runs fn with exclusive access to the round.
func (e *Engine) Inspect(fn func(*GameRound)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.round)
}
