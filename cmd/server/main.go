package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saitheninja/svampire-svurvivors/internal/api"
	"github.com/saitheninja/svampire-svurvivors/internal/catalog"
	"github.com/saitheninja/svampire-svurvivors/internal/config"
	"github.com/saitheninja/svampire-svurvivors/internal/game"
	"github.com/saitheninja/svampire-svurvivors/internal/render"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🧛 ================================")
	log.Println("🧛  SVAMPIRE SVURVIVORS - ROUND SERVER")
	log.Println("🧛 ================================")

	appConfig := config.Load()
	if err := appConfig.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	simCfg := appConfig.Simulation

	logger := newLogger(appConfig.LogLevel)
	slog.SetDefault(logger)

	cat := catalog.Default()
	if appConfig.CatalogPath != "" {
		loaded, err := catalog.Load(appConfig.CatalogPath)
		if err != nil {
			log.Printf("⚠️ Catalog %s rejected, using built-in tables: %v", appConfig.CatalogPath, err)
		} else {
			cat = loaded
			log.Printf("📚 Catalog: %s", appConfig.CatalogPath)
		}
	}
	if simCfg.RoundDurationMs > 0 {
		cat.Timer = game.NewRange(0, simCfg.RoundDurationMs, 0)
	}

	roundCfg, err := cat.RoundConfig()
	if err != nil {
		log.Fatalf("❌ Round config: %v", err)
	}
	roundCfg.SpawnRadius = simCfg.SpawnRadius

	seed := simCfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("🎲 Seed: %d (set SEED to replay)", seed)
	log.Printf("🎮 Config: %d TPS, %.0fs round, map %s, %d waves",
		simCfg.TickRate, roundCfg.Timer.Max/1000, roundCfg.Map, len(roundCfg.Waves))

	eventLog := game.NewEventLog(game.DefaultEventLogConfig())
	if err := eventLog.Start(appConfig.Output.EventLogPath); err != nil {
		log.Printf("⚠️ Event log file disabled: %v", err)
		_ = eventLog.Start("")
	} else if appConfig.Output.EventLogPath != "" {
		log.Printf("📝 Event log: %s", appConfig.Output.EventLogPath)
	}

	round, err := game.NewRound(roundCfg, game.RoundOptions{
		Visuals:    game.NewMemoryVisuals(),
		Logger:     logger,
		IDs:        game.SeededIDs(seed),
		Seed:       seed,
		Sink:       eventLog,
		MaxEnemies: simCfg.MaxEnemies,
	})
	if err != nil {
		log.Fatalf("❌ Round: %v", err)
	}

	engine := game.NewEngine(round, game.EngineOptions{
		TickRate: simCfg.TickRate,
		Logger:   logger,
	})

	var frames *render.FrameWriter
	if dir := appConfig.Output.FrameDir; dir != "" {
		r := render.NewRenderer(render.Config{
			Width:  appConfig.Output.FrameWidth,
			Height: appConfig.Output.FrameHeight,
		})
		if frames, err = render.NewFrameWriter(r, dir, appConfig.Output.FrameEvery); err != nil {
			log.Printf("⚠️ Frames disabled: %v", err)
		} else {
			log.Printf("🖼️ Frames: every %d ticks to %s", appConfig.Output.FrameEvery, dir)
		}
	}

	engine.OnTick = func(st game.TickStats) {
		api.RecordTick(st)
		if st.Tick%uint64(simCfg.TickRate) == 0 || st.Result.GameOver {
			api.UpdateEventLogStats(eventLog.Stats())
			if snap := engine.Snapshot(); snap != nil {
				api.UpdateDiagnostics(snap.Stats.Diagnostics)
			}
		}
		if frames != nil {
			d, err := frames.Maybe(engine.Snapshot())
			if err != nil {
				log.Printf("⚠️ Frame failed: %v", err)
			} else if d > 0 {
				api.RecordRender(d)
			}
		}
	}
	engine.OnGameOver = func(outcome game.Outcome, stats game.Stats) {
		api.RecordRoundOver(outcome)
		log.Printf("🏁 Round %s: %d kills, %d hits taken, %.0f XP, %d diagnostics",
			outcome, stats.Kills, stats.HitsTaken, stats.XPCollected, stats.Diagnostics)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := api.NewIPRateLimiter(api.DefaultRateLimitConfig)
	router := api.NewRouter(api.RouterConfig{
		Round:       engine,
		Events:      eventLog,
		RateLimiter: limiter,
	})
	debugDone := make(chan struct{})
	go func() {
		defer close(debugDone)
		debugCfg := api.DefaultObservabilityConfig()
		debugCfg.ListenAddr = appConfig.Debug.Addr
		if err := api.StartDebugServer(ctx, debugCfg, router); err != nil {
			log.Printf("⚠️ Debug server error: %v", err)
		}
	}()

	engine.Start()
	log.Println("✅ Server ready! Press Ctrl+C to stop.")

	select {
	case <-ctx.Done():
		log.Println("🛑 Shutting down...")
	case <-engine.Done():
	}

	engine.Stop()
	<-engine.Done()
	eventLog.Stop()
	stop()
	<-debugDone
	limiter.Stop()

	engine.Inspect(func(r *game.GameRound) {
		tally := game.TallyKills(r.Logs.EnemiesKilled)
		for _, e := range tally.Weapons {
			log.Printf("   #%d %-14s %d kills", e.Rank, e.Name, e.Kills)
		}
		if frames != nil {
			log.Printf("🖼️ %d frames written", frames.Written())
		}
	})
	log.Println("👋 Bye")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}
