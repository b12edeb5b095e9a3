// Package catalog holds the stat tables a round is built from: weapons,
// enemies, the player, waves, levels and the pickup drop.
//
// Default returns the built-in tables. Load overlays a JSON file on top of
// them so a designer can tune numbers without a rebuild.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/saitheninja/svampire-svurvivors/internal/game"
)

var (
	ErrUnknownEnemy  = errors.New("catalog: wave references unknown enemy")
	ErrUnknownWeapon = errors.New("catalog: loadout references unknown weapon")
	ErrInvalid       = errors.New("catalog: invalid table")
)

// Asset is an image the renderer tiles or stamps.
type Asset struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// WorldMap describes the playfield.
type WorldMap struct {
	Name       string `json:"name"`
	Terrain    Asset  `json:"terrain"`
	Background Asset  `json:"background"`
}

// Catalog is every table a round needs. Enemies carry their loadouts by
// weapon name; waves list enemies by name.
type Catalog struct {
	Map           WorldMap               `json:"map"`
	Timer         game.BoundedRange      `json:"durationTimer"`
	Weapons       map[string]game.Weapon `json:"weapons"`
	Player        game.Alive             `json:"player"`
	PlayerLoadout []string               `json:"playerLoadout"`
	Enemies       map[string]EnemyEntry  `json:"enemies"`
	Waves         [][]string             `json:"enemyWaves"`
	Pickup        game.PickupTemplate    `json:"pickup"`
	XPStep        float64                `json:"xpStep"`
	MaxLevel      int                    `json:"maxLevel"`
}

// EnemyEntry is an enemy template plus the names of its weapons.
type EnemyEntry struct {
	game.Alive
	Loadout []string `json:"loadout"`
}

// Load reads a JSON catalog and overlays it on Default. Keys absent from
// the file keep their built-in values; a weapon or enemy entry present in
// the file replaces the built-in one whole.
func Load(path string) (Catalog, error) {
	cat := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("catalog: parse %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks cross-references and the numbers the simulation relies on.
func (c Catalog) Validate() error {
	if c.Timer.Max <= c.Timer.Min {
		return fmt.Errorf("%w: round timer max %v <= min %v", ErrInvalid, c.Timer.Max, c.Timer.Min)
	}
	if c.Player.Sprite.Width <= 0 || c.Player.Sprite.Height <= 0 {
		return fmt.Errorf("%w: player sprite has no size", ErrInvalid)
	}
	if len(c.PlayerLoadout) > c.Player.CapacityWeapons {
		return fmt.Errorf("%w: player loadout %d exceeds capacity %d",
			ErrInvalid, len(c.PlayerLoadout), c.Player.CapacityWeapons)
	}
	for _, name := range c.PlayerLoadout {
		if _, ok := c.Weapons[name]; !ok {
			return fmt.Errorf("%w: player: %q", ErrUnknownWeapon, name)
		}
	}
	for name, e := range c.Enemies {
		for _, w := range e.Loadout {
			if _, ok := c.Weapons[w]; !ok {
				return fmt.Errorf("%w: %s: %q", ErrUnknownWeapon, name, w)
			}
		}
	}
	for i, wave := range c.Waves {
		for _, name := range wave {
			if _, ok := c.Enemies[name]; !ok {
				return fmt.Errorf("%w: wave %d: %q", ErrUnknownEnemy, i, name)
			}
		}
	}
	for name, w := range c.Weapons {
		if w.Active.Max <= 0 || w.Cooldown.Max <= 0 {
			return fmt.Errorf("%w: weapon %q needs positive active and cooldown durations", ErrInvalid, name)
		}
	}
	return nil
}

// Levels expands the XP ladder: level n needs XPStep*n to advance.
func (c Catalog) Levels() []game.PlayerLevel {
	levels := make([]game.PlayerLevel, 0, c.MaxLevel)
	for n := 1; n <= c.MaxLevel; n++ {
		levels = append(levels, game.PlayerLevel{Level: n, XPToNext: c.XPStep * float64(n)})
	}
	return levels
}

// Enemy resolves an enemy template with its weapons equipped.
func (c Catalog) Enemy(name string) (game.Alive, error) {
	e, ok := c.Enemies[name]
	if !ok {
		return game.Alive{}, fmt.Errorf("%w: %q", ErrUnknownEnemy, name)
	}
	a := e.Alive
	weapons, err := c.weapons(e.Loadout)
	if err != nil {
		return game.Alive{}, fmt.Errorf("%s: %w", name, err)
	}
	a.Weapons = weapons
	return a, nil
}

// RoundConfig builds the immutable input for game.NewRound.
func (c Catalog) RoundConfig() (game.RoundConfig, error) {
	if err := c.Validate(); err != nil {
		return game.RoundConfig{}, err
	}

	player := c.Player
	weapons, err := c.weapons(c.PlayerLoadout)
	if err != nil {
		return game.RoundConfig{}, fmt.Errorf("player: %w", err)
	}
	player.Weapons = weapons

	resolved := make(map[string]game.Alive, len(c.Enemies))
	waves := make([][]game.Alive, 0, len(c.Waves))
	for _, names := range c.Waves {
		wave := make([]game.Alive, 0, len(names))
		for _, name := range names {
			e, ok := resolved[name]
			if !ok {
				if e, err = c.Enemy(name); err != nil {
					return game.RoundConfig{}, err
				}
				resolved[name] = e
			}
			wave = append(wave, e)
		}
		waves = append(waves, wave)
	}

	return game.RoundConfig{
		Map:     c.Map.Name,
		Timer:   c.Timer,
		Player:  player,
		Waves:   waves,
		Pickup:  c.Pickup,
		Levels:  c.Levels(),
		PlayerX: (c.Map.Terrain.Width - player.Sprite.Width) / 2,
		PlayerY: (c.Map.Terrain.Height - player.Sprite.Height) / 2,
	}, nil
}

func (c Catalog) weapons(names []string) ([]game.Weapon, error) {
	out := make([]game.Weapon, 0, len(names))
	for _, n := range names {
		w, ok := c.Weapons[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeapon, n)
		}
		out = append(out, w)
	}
	return out, nil
}
