// Package config provides centralized configuration management.
// Defaults live here; environment variables override them.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// SIMULATION CONFIGURATION
// =============================================================================

// SimulationConfig holds the knobs that shape a round.
type SimulationConfig struct {
	TickRate        int     // Ticks per second when driven by the engine loop
	RoundDurationMs float64 // Overrides the catalog round timer when > 0
	Seed            int64   // RNG and spawn-ID seed; 0 picks one at startup
	MaxEnemies      int     // Hard cap on the live roster, 0 = unlimited
	SpawnRadius     float64 // Distance from the player new waves appear at
}

// DefaultSimulation returns the default simulation configuration.
func DefaultSimulation() SimulationConfig {
	return SimulationConfig{
		TickRate:    60,
		MaxEnemies:  500,
		SpawnRadius: 600,
	}
}

// SimulationFromEnv returns simulation configuration with environment variable overrides.
func SimulationFromEnv() SimulationConfig {
	cfg := DefaultSimulation()

	if tr := getEnvInt("TICK_RATE", 0); tr > 0 {
		cfg.TickRate = tr
	}
	if d := getEnvFloat("ROUND_DURATION_MS", 0); d > 0 {
		cfg.RoundDurationMs = d
	}
	if s := getEnvInt64("SEED", 0); s != 0 {
		cfg.Seed = s
	}
	if me := getEnvInt("MAX_ENEMIES", -1); me >= 0 {
		cfg.MaxEnemies = me
	}
	if r := getEnvFloat("SPAWN_RADIUS", 0); r > 0 {
		cfg.SpawnRadius = r
	}

	return cfg
}

// =============================================================================
// DEBUG SERVER CONFIGURATION
// =============================================================================

// DebugConfig holds the localhost ops server settings.
type DebugConfig struct {
	Addr string // Empty disables the server
}

// DefaultDebug returns the default debug server configuration.
func DefaultDebug() DebugConfig {
	return DebugConfig{Addr: "127.0.0.1:6060"}
}

// DebugFromEnv returns debug configuration with environment variable overrides.
// DEBUG_ADDR=off disables the server.
func DebugFromEnv() DebugConfig {
	cfg := DefaultDebug()

	if v, ok := os.LookupEnv("DEBUG_ADDR"); ok {
		if v == "off" {
			cfg.Addr = ""
		} else if v != "" {
			cfg.Addr = v
		}
	}

	return cfg
}

// =============================================================================
// OUTPUT CONFIGURATION
// =============================================================================

// OutputConfig controls what a run leaves on disk.
type OutputConfig struct {
	EventLogPath string // JSONL event log; empty keeps events in memory only
	FrameDir     string // PNG frames; empty disables rendering
	FrameEvery   int    // Render one frame every N ticks
	FrameWidth   int    // Viewport width in pixels
	FrameHeight  int    // Viewport height in pixels
}

// DefaultOutput returns the default output configuration.
func DefaultOutput() OutputConfig {
	return OutputConfig{
		FrameEvery:  60,
		FrameWidth:  1280,
		FrameHeight: 720,
	}
}

// OutputFromEnv returns output configuration with environment variable overrides.
func OutputFromEnv() OutputConfig {
	cfg := DefaultOutput()

	cfg.EventLogPath = os.Getenv("EVENT_LOG_PATH")
	cfg.FrameDir = os.Getenv("FRAME_DIR")
	if n := getEnvInt("FRAME_EVERY", 0); n > 0 {
		cfg.FrameEvery = n
	}
	if w := getEnvInt("FRAME_WIDTH", 0); w > 0 {
		cfg.FrameWidth = w
	}
	if h := getEnvInt("FRAME_HEIGHT", 0); h > 0 {
		cfg.FrameHeight = h
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Simulation  SimulationConfig
	Debug       DebugConfig
	Output      OutputConfig
	CatalogPath string // JSON stat tables; empty uses the built-in catalog
	LogLevel    slog.Level
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Simulation:  SimulationFromEnv(),
		Debug:       DebugFromEnv(),
		Output:      OutputFromEnv(),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		LogLevel:    parseLevel(os.Getenv("LOG_LEVEL")),
	}
}

// Validate rejects combinations the server cannot run with.
func (c AppConfig) Validate() error {
	if c.Simulation.TickRate <= 0 || c.Simulation.TickRate > 1000 {
		return fmt.Errorf("config: tick rate %d out of range (1-1000)", c.Simulation.TickRate)
	}
	if c.Simulation.MaxEnemies < 0 {
		return fmt.Errorf("config: max enemies %d is negative", c.Simulation.MaxEnemies)
	}
	if c.Output.FrameDir != "" && (c.Output.FrameWidth <= 0 || c.Output.FrameHeight <= 0) {
		return fmt.Errorf("config: frame size %dx%d invalid", c.Output.FrameWidth, c.Output.FrameHeight)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
